package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/response"
)

// RequireRoles denies the request unless the caller holds one of the listed roles.
// Must run after RequireAuth.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		if !claims.Role.In(roles...) {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}

		c.Next()
	}
}

// Common allow-lists.
var (
	Staff        = []model.Role{model.RoleAdmin, model.RoleTeacher}
	FinanceStaff = []model.Role{model.RoleAdmin, model.RoleAccountant}
	Payers       = []model.Role{model.RoleParent, model.RoleStudent}
)

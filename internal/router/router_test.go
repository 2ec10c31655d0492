package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/educonnect/educonnect-backend/internal/config"
	"github.com/educonnect/educonnect-backend/internal/handler"
	"github.com/educonnect/educonnect-backend/internal/middleware"
	"github.com/educonnect/educonnect-backend/internal/model"
	"github.com/educonnect/educonnect-backend/internal/repository/memory"
	"github.com/educonnect/educonnect-backend/internal/router"
	"github.com/educonnect/educonnect-backend/internal/service"
	"github.com/educonnect/educonnect-backend/internal/validator"
)

type nopEnqueuer struct{}

func (nopEnqueuer) Enqueue(context.Context, model.Notification) error { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, []byte) error { return nil }

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	users  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, nil, nil)
}

func newTestServerWith(t *testing.T, trustedProxies []string, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:        gin.TestMode,
		JWTSecret:      "router-test-secret",
		JWTExpiry:      time.Hour,
		BcryptCost:     bcrypt.MinCost,
		TrustedProxies: trustedProxies,
	}
	log := zerolog.Nop()
	stores := memory.New()

	authService := service.NewAuthService(cfg, stores.Users)
	userService := service.NewUserService(stores.Users, stores.ParentLinks, stores.Classes, authService, log)
	attendanceService := service.NewAttendanceService(stores.Attendance, stores.Users)
	gradeService := service.NewGradeService(stores.Grades, stores.Users)
	financeService := service.NewFinanceService(stores.FeeStructures, stores.Invoices, stores.Users, log)
	transactionService := service.NewTransactionService(stores.Transactions, stores.Invoices, nopEnqueuer{}, "https://pay.test", "", log)

	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Admin:        handler.NewAdminHandler(userService, service.NewDashboardService(stores.Dashboard)),
		Parent:       handler.NewParentHandler(userService, attendanceService, gradeService, financeService),
		Class:        handler.NewClassHandler(service.NewClassService(stores.Classes, stores.Users, stores.Settings)),
		Timetable:    handler.NewTimetableHandler(service.NewTimetableService(stores.Timetables, stores.Classes, stores.Users)),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Grade:        handler.NewGradeHandler(gradeService),
		Finance:      handler.NewFinanceHandler(financeService),
		Transaction:  handler.NewTransactionHandler(transactionService, log),
		Announcement: handler.NewAnnouncementHandler(service.NewAnnouncementService(stores.Announcements, stores.Classes, stores.Users, nopEnqueuer{}, log)),
		Messaging:    handler.NewMessagingHandler(service.NewMessagingService(stores.Conversations, stores.Users, nopPublisher{}, log)),
		Calendar:     handler.NewCalendarHandler(service.NewCalendarService(stores.Calendar)),
		HealthRecord: handler.NewHealthRecordHandler(service.NewHealthService(stores.HealthRecords, stores.Users, stores.ParentLinks)),
		Setting:      handler.NewSettingHandler(service.NewSettingService(stores.Settings, log)),
		System:       handler.NewSystemHandler(nil, log),
		WS:           handler.NewWSHandler(nil, log, nil),
	}

	_, err := userService.Create(context.Background(), model.CreateUserRequest{
		Email: "admin@school.test", Password: "admin-pass", Role: model.RoleAdmin,
		FirstName: "Ada", LastName: "Admin",
	})
	require.NoError(t, err)

	return &testServer{
		t:      t,
		engine: router.SetupRouter(authService, limiter, handlers, cfg, log),
		users:  userService,
	}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data.Token
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, env.Metadata.RequestID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "admin@school.test", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	status, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "email")
}

func loginFrom(s *testServer, remoteAddr, forwardedFor string) int {
	body := bytes.NewBufferString(`{"email":"admin@school.test","password":"wrong-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := newTestServerWith(t, nil, middleware.NewRateLimiter(ctx, 2, time.Minute))

	var limited int
	for i := 0; i < 20; i++ {
		if loginFrom(s, "203.0.113.7:40000", fmt.Sprintf("198.51.100.%d", i+1)) == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 18, limited)
}

func TestLoginRateLimit_HonoursTrustedProxy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := newTestServerWith(t, []string{"10.0.0.0/8"}, middleware.NewRateLimiter(ctx, 2, time.Minute))

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusUnauthorized, loginFrom(s, "10.0.0.5:40000", fmt.Sprintf("198.51.100.%d", i+1)))
	}

	assert.Equal(t, http.StatusUnauthorized, loginFrom(s, "10.0.0.5:40000", "198.51.100.99"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(s, "10.0.0.5:40000", "198.51.100.99"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(s, "10.0.0.5:40000", "198.51.100.99"))
}

func TestRollCallFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@school.test", "admin-pass")

	status, env := s.do(http.MethodPost, "/api/v1/users", adminToken, gin.H{
		"email": "sam@school.test", "password": "student-pass", "role": "student",
		"firstName": "Sam", "lastName": "Pupil",
	})
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		User model.User `json:"user"`
	}
	decode(t, env, &created)
	studentID := created.User.ID.String()

	status, env = s.do(http.MethodPost, "/api/v1/classes", adminToken, gin.H{"name": "JSS1", "academicYear": "2025/2026"})
	require.Equal(t, http.StatusCreated, status)
	var class struct {
		Class model.Class `json:"class"`
	}
	decode(t, env, &class)

	status, _ = s.do(http.MethodPost, "/api/v1/classes/"+class.Class.ID.String()+"/assign", adminToken, gin.H{"userId": studentID})
	require.Equal(t, http.StatusOK, status)

	for _, st := range []string{"present", "absent"} {
		status, env = s.do(http.MethodPost, "/api/v1/attendance", adminToken, gin.H{
			"date":    "2025-09-01",
			"records": []gin.H{{"studentId": studentID, "status": st}},
		})
		require.Equal(t, http.StatusOK, status)
	}

	status, env = s.do(http.MethodGet, "/api/v1/attendance?date=2025-09-01", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	var byDate struct {
		Attendance []model.Attendance `json:"attendance"`
	}
	decode(t, env, &byDate)
	require.Len(t, byDate.Attendance, 1)
	assert.Equal(t, model.AttendanceAbsent, byDate.Attendance[0].Status)

	studentToken := s.login("sam@school.test", "student-pass")

	status, env = s.do(http.MethodGet, "/api/v1/attendance/my", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	var mine struct {
		Attendance []model.Attendance `json:"attendance"`
	}
	decode(t, env, &mine)
	assert.Len(t, mine.Attendance, 1)

	status, env = s.do(http.MethodGet, "/api/v1/classes/my-class", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	var myClass struct {
		Class model.Class `json:"class"`
	}
	decode(t, env, &myClass)
	assert.Equal(t, "JSS1", myClass.Class.Name)

	status, env = s.do(http.MethodGet, "/api/v1/users", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@school.test", "admin-pass")

	body := gin.H{
		"email": "dup@school.test", "password": "secret123", "role": "teacher",
		"firstName": "Dee", "lastName": "Up",
	}
	status, _ := s.do(http.MethodPost, "/api/v1/users", adminToken, body)
	require.Equal(t, http.StatusCreated, status)

	status, env := s.do(http.MethodPost, "/api/v1/users", adminToken, body)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/v1/users/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/v1/users/00000000-0000-0000-0000-000000000001", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	status, env = s.do(http.MethodPost, "/api/v1/calendar", adminToken, gin.H{
		"title": "Bad", "startDate": "2025-10-10", "endDate": "2025-10-01", "type": "other",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "range")
}

func TestWebhook_IsPublic(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/v1/transactions/webhook/paystack", "", gin.H{
		"event": "charge.success", "data": gin.H{"reference": "EDU-unknown"},
	})
	assert.Equal(t, http.StatusOK, status)
	var data struct {
		Status string `json:"status"`
	}
	decode(t, env, &data)
	assert.Equal(t, "ignored", data.Status)

	status, _ = s.do(http.MethodGet, "/api/v1/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthRecords_NoStore(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin@school.test", "admin-pass")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health-records/student/00000000-0000-0000-0000-000000000001", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

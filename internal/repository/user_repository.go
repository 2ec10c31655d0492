package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/educonnect/educonnect-backend/internal/model"
)

const userColumns = `id, email, password_hash, role, first_name, middle_name, last_name, phone, class_id, created_at, updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row rowScanner) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.MiddleName,
		&u.LastName, &u.Phone, &u.ClassID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

func (r *UserRepository) queryUsers(ctx context.Context, sql string, args ...any) ([]model.User, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, role, first_name, middle_name, last_name, phone, class_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.PasswordHash, u.Role, u.FirstName, u.MiddleName, u.LastName, u.Phone, u.ClassID,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return mapError(err)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their (lower-cased) email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// ListByIDs returns the users among ids that exist.
func (r *UserRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
}

// List retrieves users with pagination and an optional role filter.
func (r *UserRepository) List(ctx context.Context, filter model.UserFilter) ([]model.User, int, error) {
	where := ""
	var args []interface{}
	if filter.Role != "" {
		where = ` WHERE role = $1`
		args = append(args, filter.Role)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	argIdx := len(args) + 1
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY last_name, first_name LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, filter.Limit, filter.Offset)

	users, err := r.queryUsers(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Search matches q case-insensitively against email and name parts among users of one role.
func (r *UserRepository) Search(ctx context.Context, role model.Role, q string, limit int) ([]model.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE role = $1
		   AND (email ILIKE $2 OR first_name ILIKE $2 OR middle_name ILIKE $2 OR last_name ILIKE $2)
		 ORDER BY last_name, first_name
		 LIMIT $3`,
		role, likePattern(q), limit)
}

// ListByClass returns the users of a class, optionally restricted to one role.
func (r *UserRepository) ListByClass(ctx context.Context, classID uuid.UUID, role model.Role) ([]model.User, error) {
	if role == "" {
		return r.queryUsers(ctx,
			`SELECT `+userColumns+` FROM users WHERE class_id = $1 ORDER BY last_name, first_name`, classID)
	}
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE class_id = $1 AND role = $2 ORDER BY last_name, first_name`,
		classID, role)
}

// Update writes every mutable column of u.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE users SET email = $1, password_hash = $2, role = $3, first_name = $4, middle_name = $5,
		        last_name = $6, phone = $7, class_id = $8, updated_at = NOW()
		 WHERE id = $9
		 RETURNING updated_at`,
		u.Email, u.PasswordHash, u.Role, u.FirstName, u.MiddleName, u.LastName, u.Phone, u.ClassID, u.ID,
	).Scan(&u.UpdatedAt)
	return mapError(err)
}

// SetClass overwrites a user's class reference.
func (r *UserRepository) SetClass(ctx context.Context, userID, classID uuid.UUID) error {
	return requireAffected(r.pool.Exec(ctx,
		`UPDATE users SET class_id = $1, updated_at = NOW() WHERE id = $2`, classID, userID))
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return requireAffected(r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id))
}

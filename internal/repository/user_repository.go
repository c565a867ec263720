package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/reelhouse/movie-catalog/internal/model"
	"github.com/reelhouse/movie-catalog/internal/utils"
)

// SQL statements are package-level constants so tests can assert against
// the exact query text.
const (
	insertUserSQL       = "INSERT INTO users (username, password_hash, is_admin) VALUES (?,?,?)"
	selectUserSQL       = "SELECT id,username,password_hash,is_admin,created_at FROM users WHERE username=? LIMIT 1"
	selectUserByIDSQL   = "SELECT id,username,password_hash,is_admin,created_at FROM users WHERE id=? LIMIT 1"
	promoteUserAdminSQL = "UPDATE users SET is_admin=1, password_hash=? WHERE username=?"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt hash of the password and returns the
// new ID. Registration never grants admin; the flag exists for seeding.
// A duplicate username maps to ErrUsernameExists via the MySQL 1062 code.
func (r *UserRepo) Create(ctx context.Context, username, password string, isAdmin bool, cost int) (uint64, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, insertUserSQL, username, hash, isAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx, selectUserSQL, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, selectUserByIDSQL, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

// Verify looks up a user by username and checks the password against the
// stored bcrypt hash. It returns the user on success and sql.ErrNoRows for
// both an unknown username and a wrong password so callers cannot
// distinguish the two.
func (r *UserRepo) Verify(ctx context.Context, username, password string) (model.User, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

// EnsureAdmin provisions the bootstrap admin account. If the username does
// not exist it is created with is_admin set; if it exists it is promoted and
// its password hash is reset, so after startup the account always matches
// the configured credentials regardless of prior state. Called at startup
// when ADMIN_USERNAME/ADMIN_PASSWORD are configured.
func (r *UserRepo) EnsureAdmin(ctx context.Context, username, password string, cost int) error {
	_, err := r.Create(ctx, username, password, true, cost)
	if err == nil {
		return nil
	}
	if err != ErrUsernameExists {
		return err
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, promoteUserAdminSQL, hash, strings.TrimSpace(username))
	return err
}

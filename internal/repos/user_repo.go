package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT user_id, name, email, phone, address, role, password_hash, created_at
		FROM users WHERE LOWER(email)=LOWER(?)
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT user_id, name, email, phone, address, role, password_hash, created_at
		FROM users WHERE user_id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after checking email and phone uniqueness.
// The pre-check gives callers a precise duplicate error; the unique
// indexes still back it up under races.
func (r *UserRepo) Create(u *domain.User) (int64, error) {
	var existing struct {
		Email string `db:"email"`
		Phone string `db:"phone"`
	}
	err := r.DB.Get(&existing, `SELECT email, phone FROM users WHERE LOWER(email)=LOWER(?) OR phone=?`, u.Email, u.Phone)
	if err == nil {
		if strings.EqualFold(existing.Email, u.Email) {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, domain.ErrDuplicatePhone
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	res, err := r.DB.Exec(`
		INSERT INTO users(name, email, phone, address, role, password_hash)
		VALUES(?,?,?,?,?,?)
	`, u.Name, u.Email, u.Phone, u.Address, u.Role, u.Hash)
	if err != nil {
		return 0, mapUserConstraintErr(err)
	}
	return res.LastInsertId()
}

// mapUserConstraintErr translates a unique-index violation into the
// same duplicate errors the pre-check reports, for inserts that race
// past it.
func mapUserConstraintErr(err error) error {
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return err
	}
	switch {
	case strings.Contains(msg, "users.email"), strings.Contains(msg, "idx_users_email"):
		return domain.ErrDuplicateEmail
	case strings.Contains(msg, "users.phone"):
		return domain.ErrDuplicatePhone
	}
	return err
}

package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
)

type AuthService struct {
	Users     *repos.UserRepo
	JWTSecret []byte
}

func NewAuthService(users *repos.UserRepo, secret string) *AuthService {
	return &AuthService{Users: users, JWTSecret: []byte(secret)}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Address  string
	Role     string // defaults to "user"
	Password string
}

// Register hashes the credential and creates the account. Email and
// phone must both be unused.
func (s *AuthService) Register(in RegisterInput) (int64, error) {
	if in.Role == "" {
		in.Role = "user"
	}
	h, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.Create(&domain.User{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Role:    in.Role,
		Hash:    string(h),
	})
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Login verifies the password against the stored salted hash and issues
// a signed token carrying email and role.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	signed, err := tok.SignedString(s.JWTSecret)
	if err != nil {
		return nil, "", err
	}
	return u, signed, nil
}

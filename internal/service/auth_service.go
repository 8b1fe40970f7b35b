package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pagepilot/internal/model"
	"pagepilot/pkg/apierror"
)

// bcryptCost is deliberately slow to blunt credential stuffing.
const bcryptCost = 12

const minPasswordLength = 6

type UserStore interface {
	Create(ctx context.Context, u model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(jwtSecret string, tokenTTL time.Duration, users UserStore) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.PublicUser, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if _, err := mail.ParseAddress(email); err != nil {
		return model.PublicUser{}, apierror.Validation("email must be a valid email address", "email")
	}
	if len(req.Password) < minPasswordLength {
		return model.PublicUser{}, apierror.Validation("password must be at least 6 characters", "password")
	}
	if name == "" {
		return model.PublicUser{}, apierror.Validation("name is required", "name")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.PublicUser{}, err
	}
	if exists {
		return model.PublicUser{}, apierror.Conflict("user with this email already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.PublicUser{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.PublicUser{}, err
	}

	return user.Public(), nil
}

// Login responds with the same generic error whether the email is unknown or
// the password is wrong, so callers cannot enumerate accounts. Storage faults
// keep their own identity so they classify as internal errors.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if !isNotFound(err) {
			return model.LoginResult{}, err
		}
		return model.LoginResult{}, apierror.Unauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.LoginResult{}, apierror.Unauthorized("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return model.LoginResult{}, err
	}

	return model.LoginResult{User: user.Public(), AccessToken: token}, nil
}

func (s *AuthService) VerifyToken(tokenString string) (*model.AuthClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apierror.Unauthorized("invalid token signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apierror.Unauthorized("invalid or expired token")
	}

	claimsMap, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apierror.Unauthorized("invalid or expired token")
	}

	claims := &model.AuthClaims{}
	claims.UserID, _ = claimsMap["userId"].(string)
	claims.Email, _ = claimsMap["email"].(string)
	claims.Name, _ = claimsMap["name"].(string)

	if claims.UserID == "" {
		return nil, apierror.Unauthorized("invalid or expired token")
	}

	return claims, nil
}

// GetUserByID reports a missing user as absent rather than as an error, so
// callers decide how a vanished account surfaces on their endpoint.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (model.PublicUser, bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return model.PublicUser{}, false, nil
		}
		return model.PublicUser{}, false, err
	}
	return user.Public(), true, nil
}

func isNotFound(err error) bool {
	var apiErr *apierror.APIError
	return errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND"
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

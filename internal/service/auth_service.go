package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/foc-sab/ctrlroom/internal/config"
	"github.com/foc-sab/ctrlroom/internal/dto"
	"github.com/foc-sab/ctrlroom/internal/mail"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	actionLogin  = "login"
	actionForgot = "forgot_password"
)

type AuthService interface {
	RegisterStudent(ctx context.Context, input dto.RegisterRequest) error
	RegisterAdmin(ctx context.Context, input dto.RegisterRequest) error
	Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout revokes the presented token. Revoking an unknown or already
	// revoked token is a no-op, not an error.
	Logout(ctx context.Context, tokenString string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input dto.ResetPasswordRequest) error
}

type authService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	resets repository.PasswordResetRepository
	mailer mail.Mailer
	rdb    *redis.Client

	secret             string
	tokenTTL           time.Duration
	resetTokenTTL      time.Duration
	studentEmailDomain string
	rateLimitLogin     time.Duration
	rateLimitForgot    time.Duration

	now func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	resets repository.PasswordResetRepository,
	mailer mail.Mailer,
	rdb *redis.Client,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:              users,
		tokens:             tokens,
		resets:             resets,
		mailer:             mailer,
		rdb:                rdb,
		secret:             cfg.JWTSecret,
		tokenTTL:           cfg.TokenTTL,
		resetTokenTTL:      cfg.ResetTokenTTL,
		studentEmailDomain: cfg.StudentEmailDomain,
		rateLimitLogin:     cfg.RateLimitLogin,
		rateLimitForgot:    cfg.RateLimitForgot,
		now:                time.Now,
	}
}

func (s *authService) RegisterStudent(ctx context.Context, input dto.RegisterRequest) error {
	email := strings.ToLower(input.Email)
	if !strings.HasSuffix(email, "@"+s.studentEmailDomain) {
		return apperror.NewValidation("email", "email must be a @"+s.studentEmailDomain+" address")
	}

	return s.register(ctx, input, email, model.RoleStudent)
}

func (s *authService) RegisterAdmin(ctx context.Context, input dto.RegisterRequest) error {
	return s.register(ctx, input, strings.ToLower(input.Email), model.RoleAdmin)
}

func (s *authService) register(ctx context.Context, input dto.RegisterRequest, email, role string) error {
	taken, err := s.users.EmailTaken(ctx, email, uuid.Nil)
	if err != nil {
		return err
	}
	if taken {
		return apperror.NewValidation("email", "email has already been taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	return s.users.Create(ctx, user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(input.Email)

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, email, actionLogin, s.rateLimitLogin)
	if err != nil {
		log.Printf("rate limit check failed: %v", err)
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Identical error for unknown email and wrong password.
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := ClearRateLimit(ctx, s.rdb, email, actionLogin); err != nil {
		log.Printf("failed to clear login rate limit: %v", err)
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		User:    user,
		Role:    user.Role,
		Token:   token,
	}, nil
}

// issueToken inserts a revocable token row and signs a JWT whose jti points
// at it. Middleware rejects any JWT whose row is gone, which is how a logout
// invalidates exactly one device.
func (s *authService) issueToken(ctx context.Context, user *model.User) (string, error) {
	record := &model.AuthToken{ID: uuid.New(), UserID: user.ID}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        record.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := ParseTokenClaims(tokenString, s.secret)
	if err != nil {
		// Unparseable or foreign token: nothing to revoke.
		return nil
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil
	}

	return s.tokens.Delete(ctx, tokenID)
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, email, actionForgot, s.rateLimitForgot)
	if err != nil {
		log.Printf("rate limit check failed: %v", err)
	} else if !allowed {
		return apperror.ErrRateLimitExceeded
	}

	_, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// No account: send the generic notice so the response and the
		// mailbox reveal nothing either way.
		if mailErr := s.mailer.SendPasswordResetGeneric(email); mailErr != nil {
			log.Printf("failed to send generic password-reset mail to %s: %v", email, mailErr)
		}
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		TokenHash: string(hash),
		CreatedAt: s.now(),
	}
	if err := s.resets.Upsert(ctx, reset); err != nil {
		return err
	}

	if mailErr := s.mailer.SendPasswordReset(email, token); mailErr != nil {
		log.Printf("failed to send password-reset mail to %s: %v", email, mailErr)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, input dto.ResetPasswordRequest) error {
	email := strings.ToLower(input.Email)

	reset, err := s.resets.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidToken
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(reset.TokenHash), []byte(input.Token)) != nil {
		return apperror.ErrInvalidToken
	}

	// A record aged exactly the TTL is still redeemable; only strictly
	// older ones are rejected.
	if s.now().Sub(reset.CreatedAt) > s.resetTokenTTL {
		return apperror.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrInvalidToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// Single use: the record is gone after a successful reset.
	return s.resets.Delete(ctx, email)
}

// ParseTokenClaims validates the signature and expiry of a bearer token and
// returns its claims.
func ParseTokenClaims(tokenString, secret string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, apperror.ErrInvalidToken
	}

	return claims, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

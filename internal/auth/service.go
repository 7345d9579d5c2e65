package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/netfibra/backoffice/internal"
	userDatamodel "github.com/netfibra/backoffice/internal/core/datamodel/user"
)

type UserRepository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	GetByID(id uuid.UUID) (*userDatamodel.User, error)
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(cfg apperrors.SecurityConfig) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(cfg.AccessTokenSecret),
		RefreshTokenSecret: []byte(cfg.RefreshTokenSecret),
		AccessTokenTTL:     cfg.AccessTokenDuration,
		RefreshTokenTTL:    cfg.RefreshTokenDuration,
	}
}

// Authenticate validates credentials and issues a token pair. A blocked or
// pending account fails even with the right password; the credential error is
// deliberately indistinguishable from an unknown email.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	user, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return AuthTokens{}, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login rejected", "email", dto.Email)
		return AuthTokens{}, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive || user.Status != userDatamodel.StatusApproved {
		return AuthTokens{}, apperrors.ErrUserInactive
	}

	return s.issueTokens(user)
}

// RefreshTokens exchanges a valid refresh token for a fresh pair. The account
// is re-read so a user blocked after login cannot keep refreshing.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return AuthTokens{}, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return AuthTokens{}, apperrors.ErrInvalidToken
	}
	if !user.IsActive || user.Status != userDatamodel.StatusApproved {
		return AuthTokens{}, apperrors.ErrUserInactive
	}

	return s.issueTokens(user)
}

func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// ActorFor resolves the claims of a validated token into the actor services
// consume. Role and tenant come from the token itself.
func (s *Service) ActorFor(claims *Claims) (*apperrors.Actor, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	actor := &apperrors.Actor{
		UserID: userID,
		Email:  claims.Email,
		Role:   userDatamodel.Role(claims.Role),
	}
	if !actor.Role.Valid() {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.TenantID != "" {
		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			return nil, apperrors.ErrInvalidToken
		}
		actor.TenantID = &tenantID
	}
	return actor, nil
}

// Me returns the caller's current profile straight from storage.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*MeResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.ErrUserNotFound
	}

	resp := &MeResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	}
	if user.TenantID != nil {
		tid := user.TenantID.String()
		resp.TenantID = &tid
	}
	return resp, nil
}

func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) issueTokens(user *userDatamodel.User) (AuthTokens, error) {
	claims := Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	}
	if user.TenantID != nil {
		claims.TenantID = user.TenantID.String()
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(claims)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("failed to sign access token", err)
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(claims)
	if err != nil {
		return AuthTokens{}, apperrors.NewInternalError("failed to sign refresh token", err)
	}

	ttl := int64(0)
	if gen, ok := s.tokenGenerator.(*JWTTokenGenerator); ok {
		ttl = int64(gen.AccessTokenTTL.Seconds())
	}
	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresIn: ttl}, nil
}

func (j *JWTTokenGenerator) GenerateAccessToken(claims Claims) (string, error) {
	return j.sign(claims, j.AccessTokenSecret, j.AccessTokenTTL)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(claims Claims) (string, error) {
	return j.sign(claims, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) sign(claims Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Subject:   claims.UserID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.validate(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) validate(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrInvalidToken
}

// Package service implements the identity provider: credential issuance,
// session tokens, and the admin surface consumed by the account lifecycle
// module (create identity, delete identity, resolve bearer token).
package service

import (
	"context"
	"errors"
	"time"

	"warga_portal_backend/internal/auth/password"
	"warga_portal_backend/internal/auth/repository"
	"warga_portal_backend/internal/auth/token"
	"warga_portal_backend/platform/config"
	"warga_portal_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrEmailTaken = repository.ErrEmailTaken

const accessTokenType = "access"

type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown email")
		return "", "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", "", ErrInvalidCredentials
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", ErrTokenInvalid
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", ErrTokenExpired
	}

	// Rotation: a refresh token is single-use.
	_ = s.repo.RevokeRefreshToken(ctx, hash)
	return s.issueTokens(ctx, userID)
}

func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	hash := token.HashSHA256(refreshToken)
	return s.repo.RevokeRefreshToken(ctx, hash)
}

// GetMe returns the caller's directory profile with role.
func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (repository.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// CreateIdentity provisions a credential identity plus its empty profile row.
// Part of the identity-provider admin surface.
func (s *Service) CreateIdentity(ctx context.Context, email, plainPassword, displayName string) (uuid.UUID, error) {
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := s.repo.CreateUser(ctx, email, hash, displayName)
	if err != nil {
		return uuid.Nil, err
	}

	s.log.AuthEvent("identity_created", email, true, "")
	return user.ID, nil
}

// DeleteIdentity permanently destroys a credential identity and its sessions.
// Part of the identity-provider admin surface.
func (s *Service) DeleteIdentity(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.AuthEvent("identity_deleted", userID.String(), true, "")
	return nil
}

// ResolveToken validates a bearer access token and returns the live identity
// it belongs to. A token for a since-deleted identity is rejected.
func (s *Service) ResolveToken(ctx context.Context, rawToken string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(s.cfg.GetJWTAccessSecret()), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrTokenInvalid
	}
	if tokenType, _ := claims["type"].(string); tokenType != accessTokenType {
		return uuid.Nil, ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}

func (s *Service) issueTokens(ctx context.Context, userID uuid.UUID) (string, string, error) {
	role, err := s.repo.GetUserRole(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", "", err
	}

	accessToken, err := s.signJWT(userID, role, s.cfg.GetAccessTokenTTL())
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": accessTokenType,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}

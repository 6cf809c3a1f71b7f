// Package auth issues and verifies the API auth tokens.
//
// Tokens are HS256 JWTs whose subject is the user id. Every token carries a
// random jti so that logout can revoke it before it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"foodgram/internal/domain/entity"
)

// UserFinder is the part of the user repository Login needs.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// RevocationStore remembers logged-out token ids until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    int64
	JTI       string
	ExpiresAt time.Time
}

// Service handles login, token verification and logout.
type Service struct {
	users  UserFinder
	store  RevocationStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates the auth service. secret must be the JWT signing key.
func NewService(users UserFinder, store RevocationStore, secret []byte, ttl time.Duration) *Service {
	return &Service{
		users:  users,
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// dummyHash keeps Login timing similar for unknown emails.
var dummyHash, _ = HashPassword("foodgram-dummy-password")

// Login checks the credentials and issues a token for the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if u == nil {
		CheckPassword(dummyHash, password)
		return "", nil, ErrInvalidCredentials
	}
	if !CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return token, u, nil
}

// IssueToken signs a new token for userID.
func (s *Service) IssueToken(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, expiry and revocation of tokenString.
func (s *Service) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(tokenString, &rc,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(rc.Subject, 10, 64)
	if err != nil || userID <= 0 || rc.ID == "" {
		return nil, ErrInvalidToken
	}

	revoked, err := s.store.IsRevoked(ctx, rc.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRevocationUnavailable, err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return &Claims{
		UserID:    userID,
		JTI:       rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return errors.New("logout: no claims")
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if err := s.store.Revoke(ctx, claims.JTI, ttl); err != nil {
		return fmt.Errorf("%w: %w", ErrRevocationUnavailable, err)
	}
	return nil
}

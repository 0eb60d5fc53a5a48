package jwt

import (
	"courtbook/config"
	"courtbook/shared/constant"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrBearerFormat = errors.New("authorization header must start with 'Bearer '")
)

const bearerPrefix = "Bearer "

// TokenType represents the type of JWT token
type TokenType string

const (
	AccessToken TokenType = "access"
)

// Claims identifies the member acting on a request. Tokens are issued by the club's
// identity service and only verified here.
type Claims struct {
	MemberID string    `json:"member_id"`
	Email    string    `json:"email"`
	Role     string    `json:"role,omitempty"`
	Type     TokenType `json:"type"`
	jwt.RegisteredClaims
}

type JWT interface {
	GenerateAccessToken(memberID, email, role string, issuedAt time.Time) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

var knownRoles = []string{constant.RoleUser, constant.RoleAdmin, constant.RoleSuperAdmin}

type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

// New verifies HS256 tokens only. When JWT_ISSUER is set the iss claim must match it.
func New(cfg *config.Config) JWT {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Duration(cfg.JWT.LeewaySeconds) * time.Second),
	}

	issuer := cfg.JWT.Issuer
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	} else {
		issuer = cfg.App.Name
	}

	return &Service{
		secret: []byte(cfg.JWT.AccessSecret),
		ttl:    time.Duration(cfg.JWT.AccessExpireMin) * time.Minute,
		issuer: issuer,
		parser: jwt.NewParser(options...),
	}
}

// GenerateAccessToken signs an access token. Used by operational tooling and tests.
func (s *Service) GenerateAccessToken(memberID, email, role string, issuedAt time.Time) (string, error) {
	claims := Claims{
		MemberID: memberID,
		Email:    email,
		Role:     role,
		Type:     AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
			Subject:   memberID,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks signature, lifetime and issuer, then the claims the
// booking rules depend on: a member id and a known role.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return nil, ErrInvalidClaim
	case err != nil:
		return nil, ErrInvalidToken
	}

	if claims.Type != AccessToken || claims.MemberID == "" {
		return nil, ErrInvalidClaim
	}

	if claims.Role != "" && !slices.Contains(knownRoles, claims.Role) {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	token, found := strings.CutPrefix(authHeader, bearerPrefix)
	if !found || token == "" {
		return "", ErrBearerFormat
	}

	return token, nil
}

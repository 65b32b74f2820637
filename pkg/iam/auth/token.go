package auth

import (
	"errors"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity provider claims the service relies on
type Claims struct {
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Picture    string `json:"picture,omitempty"`
	Role       string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ExternalIdentity returns the subject carried in the "sub" claim
func (c *Claims) ExternalIdentity() kernel.ExternalIdentity {
	return kernel.NewExternalIdentity(c.RegisteredClaims.Subject)
}

// TokenService validates bearer tokens
type TokenService interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTService verifies HS256 tokens shared with the identity provider.
// GenerateToken exists for local development and tests.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// GenerateToken signs a token for subject
func (s *JWTService) GenerateToken(subject kernel.ExternalIdentity, claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and verifies tokenString
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrInvalidToken().WithDetail("reason", "expired")
		}
		return nil, ErrInvalidToken().WithCause(err)
	}

	if claims.RegisteredClaims.Subject == "" {
		return nil, ErrInvalidToken().WithDetail("reason", "missing subject")
	}

	return claims, nil
}

var _ TokenService = (*JWTService)(nil)

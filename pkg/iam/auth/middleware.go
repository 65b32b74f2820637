package auth

import (
	"context"
	"strings"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/kernel"
	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext describes the caller of the current request
type AuthContext struct {
	ExternalID kernel.ExternalIdentity
	UserID     *kernel.UserID // nil until the user record exists
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Picture    string
	Role       string
	Scopes     []string
}

// HasScope checks the caller's scopes
func (a *AuthContext) HasScope(scope string) bool {
	return HasScope(a.Scopes, scope)
}

// IsRegistered reports whether the caller has a user record
func (a *AuthContext) IsRegistered() bool {
	return a.UserID != nil && !a.UserID.IsEmpty()
}

// IdentityResolver maps an external identity to the stored user and its role.
// An unknown identity returns an empty UserID and no error.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, ext kernel.ExternalIdentity) (kernel.UserID, string, error)
}

// TokenMiddleware authenticates requests carrying identity provider tokens
type TokenMiddleware struct {
	tokens   TokenService
	resolver IdentityResolver
}

func NewTokenMiddleware(tokens TokenService, resolver IdentityResolver) *TokenMiddleware {
	return &TokenMiddleware{
		tokens:   tokens,
		resolver: resolver,
	}
}

// SetResolver wires the resolver after construction, since the user service
// that implements it is built after the middleware in the container.
func (m *TokenMiddleware) SetResolver(resolver IdentityResolver) {
	m.resolver = resolver
}

// Authenticate rejects requests without a valid bearer token
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearer(c)
		if token == "" {
			return ErrUnauthorized()
		}

		authCtx, err := m.buildContext(c, token)
		if err != nil {
			return err
		}

		c.Locals(authContextKey, authCtx)
		return c.Next()
	}
}

// Optional attaches an AuthContext when a valid token is present and lets
// anonymous requests through
func (m *TokenMiddleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearer(c)
		if token == "" {
			return c.Next()
		}

		authCtx, err := m.buildContext(c, token)
		if err != nil {
			logx.Debugf("ignoring invalid optional token: %v", err)
			return c.Next()
		}

		c.Locals(authContextKey, authCtx)
		return c.Next()
	}
}

// RequireScope must run after Authenticate
func (m *TokenMiddleware) RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authCtx.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required_scope", scope)
		}
		return c.Next()
	}
}

// RequireUser rejects callers whose user record has not been created
func (m *TokenMiddleware) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !authCtx.IsRegistered() {
			return ErrUserNotRegistered()
		}
		return c.Next()
	}
}

func (m *TokenMiddleware) buildContext(c *fiber.Ctx, token string) (*AuthContext, error) {
	claims, err := m.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	authCtx := &AuthContext{
		ExternalID: claims.ExternalIdentity(),
		Email:      claims.Email,
		Name:       claims.Name,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		Picture:    claims.Picture,
		Role:       claims.Role,
	}

	if m.resolver != nil {
		userID, role, err := m.resolver.ResolveIdentity(c.UserContext(), authCtx.ExternalID)
		if err != nil {
			return nil, err
		}
		if !userID.IsEmpty() {
			authCtx.UserID = &userID
			// the stored role wins, except over an admin claim
			if role != "" && authCtx.Role != RoleAdmin {
				authCtx.Role = role
			}
		}
	}

	if authCtx.Role == "" {
		authCtx.Role = RoleCandidate
	}
	authCtx.Scopes = ScopesForRole(authCtx.Role)

	return authCtx, nil
}

// GetAuthContext returns the AuthContext stored by the middleware
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok && authCtx != nil
}

// CurrentUserID returns the stored user ID of the caller
func CurrentUserID(c *fiber.Ctx) (kernel.UserID, error) {
	authCtx, ok := GetAuthContext(c)
	if !ok {
		return "", ErrUnauthorized()
	}
	if !authCtx.IsRegistered() {
		return "", ErrUserNotRegistered()
	}
	return *authCtx.UserID, nil
}

func extractBearer(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Actor converts the caller into the kernel actor used by the services
func Actor(c *fiber.Ctx) (kernel.Actor, error) {
	authCtx, ok := GetAuthContext(c)
	if !ok {
		return kernel.Actor{}, ErrUnauthorized()
	}
	actor := kernel.Actor{
		ExternalID: authCtx.ExternalID,
		Admin:      authCtx.Role == RoleAdmin,
	}
	if authCtx.IsRegistered() {
		actor.UserID = *authCtx.UserID
	}
	return actor, nil
}

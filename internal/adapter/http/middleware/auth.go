package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"servihub/pkg"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	RoleClient       = "client"
	RoleProfessional = "professional"

	// gin context keys set by Auth
	CtxActorID   = "actor_id"
	CtxActorRole = "actor_role"
)

var (
	ErrNoAuthHeader  = errors.New("authorization header missing")
	ErrBadAuthScheme = errors.New("authorization must start with Bearer")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims is the canonical access-token payload. Subject carries the user id.
type Claims struct {
	Role string `json:"role"` // "client" or "professional"
	jwtlib.RegisteredClaims
}

var _ jwtlib.Claims = (*Claims)(nil)

// Manager signs and validates HS256 access tokens.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	s := strings.TrimSpace(secret)
	if s == "" {
		panic("auth: empty secret key")
	}
	return &Manager{secret: []byte(s), accessTTL: accessTTL}
}

// IssueToken returns a signed access token for a marketplace user.
func (m *Manager) IssueToken(userID, role string) (string, error) {
	if role != RoleClient && role != RoleProfessional {
		return "", errors.New("auth: invalid role " + role)
	}

	now := time.Now().UTC()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parseAndValidate(tokenString string) (*Claims, error) {
	parser := jwtlib.NewParser(jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Auth validates the bearer token and stores the actor's id and role in the
// gin context for handlers to read via ActorID / ActorRole.
func (m *Manager) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		claims, err := m.parseAndValidate(raw)
		if err != nil {
			log.Printf("[http][auth] token rejected err=%v", err)
			abortUnauthorized(c, ErrInvalidToken)
			return
		}

		c.Set(CtxActorID, claims.Subject)
		c.Set(CtxActorRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects actors whose role does not match. Mount after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorRole(c) != role {
			appErr := pkg.NewDomainErrorSimple("FORBIDDEN", "role not allowed", http.StatusForbidden)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated user id, or "" when unauthenticated.
func ActorID(c *gin.Context) string {
	return c.GetString(CtxActorID)
}

// ActorRole returns the authenticated user's role, or "" when unauthenticated.
func ActorRole(c *gin.Context) string {
	return c.GetString(CtxActorRole)
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoAuthHeader
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", ErrBadAuthScheme
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return "", ErrInvalidToken
	}
	return raw, nil
}

func abortUnauthorized(c *gin.Context, err error) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", err.Error(), http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

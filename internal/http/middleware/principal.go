package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"campusdocs/internal/model"
)

// PrincipalLocalKey is the key under which the decoded principal is stored in
// Fiber's context locals.
const PrincipalLocalKey = "principal"

// Claims carries the identity attributes the campus SSO embeds in its tokens.
// Subject holds the user ID.
type Claims struct {
	jwt.RegisteredClaims
	DisplayName     string `json:"name"`
	Email           string `json:"email"`
	IsSuperAdmin    bool   `json:"super_admin"`
	ActiveRole      string `json:"role"`
	ActiveFacultyID string `json:"faculty_id,omitempty"`
}

// GenerateToken signs a token asserting p for validity. The service itself
// never issues tokens in production; this exists for tests and local tooling.
func GenerateToken(p model.Principal, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
		},
		DisplayName:     p.DisplayName,
		Email:           p.Email,
		IsSuperAdmin:    p.IsSuperAdmin,
		ActiveRole:      p.ActiveRole,
		ActiveFacultyID: p.ActiveFacultyID,
	})
	return token.SignedString(secret)
}

// Principal authenticates the bearer token and stores the decoded principal
// in context locals. Requests without a valid token never reach the handlers.
func Principal(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(raw, prefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(raw, prefix), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(PrincipalLocalKey, model.Principal{
			UserID:          claims.Subject,
			DisplayName:     claims.DisplayName,
			Email:           claims.Email,
			IsSuperAdmin:    claims.IsSuperAdmin,
			ActiveRole:      claims.ActiveRole,
			ActiveFacultyID: claims.ActiveFacultyID,
		})
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal previously stored by Principal.
func PrincipalFromCtx(c *fiber.Ctx) (model.Principal, bool) {
	p, ok := c.Locals(PrincipalLocalKey).(model.Principal)
	return p, ok
}

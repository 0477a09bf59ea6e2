package client

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	CookieName  = "planova_client"
	LocClientID = "client_id"
)

type IdentityOpts struct {
	Secret string
	// TTL of the issued cookie; defaults to one year.
	TTL    time.Duration
	Secure bool
}

// Identity gives every browser an anonymous, signed client id. A valid token
// (Bearer header or cookie) is reused; anything else gets a fresh id.
func Identity(o IdentityOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("client.Identity: Secret is required")
	}
	ttl := o.TTL
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else {
			raw = strings.TrimSpace(c.Cookies(CookieName))
		}

		if id, ok := parse(raw, secret); ok {
			c.Locals(LocClientID, id)
			return c.Next()
		}

		id := uuid.New()
		token, err := Sign(id, secret, ttl)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "cannot issue client token")
		}
		c.Cookie(&fiber.Cookie{
			Name:     CookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(ttl),
			HTTPOnly: true,
			Secure:   o.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(LocClientID, id)
		return c.Next()
	}
}

func Sign(id uuid.UUID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   id.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parse(raw, secret string) (uuid.UUID, bool) {
	if raw == "" {
		return uuid.Nil, false
	}
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetClientID reads the id set by Identity.
func GetClientID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(LocClientID).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Client id missing")
}

package blog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session"
	// Sessions survive browser restarts until explicit logout ("remember me").
	sessionLifetime = 30 * 24 * time.Hour

	tokenIssuer   = "tastetrip-blog"
	tokenAudience = "tastetrip-web"
)

// issueSessionToken creates a signed session JWT for the given user.
func (s *Server) issueSessionToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(sessionLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// parseSessionToken verifies a session JWT and returns the user id and
// username it identifies.
func (s *Server) parseSessionToken(tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid session claims")
	}
	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != tokenIssuer {
		return 0, "", fmt.Errorf("invalid session issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != tokenAudience {
		return 0, "", fmt.Errorf("invalid session audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("invalid user ID in session token")
	}

	username, _ := claims["username"].(string)
	return uint(userID), username, nil
}

// establishSession issues a token and sets the session cookie on the response.
func (s *Server) establishSession(c *fiber.Ctx, userID uint, username string) error {
	token, err := s.issueSessionToken(userID, username)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return nil
}

// clearSession expires the session cookie.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// CurrentUser returns middleware that resolves the session cookie, if any,
// into an authenticated principal in locals. It never rejects a request: each
// handler decides whether a principal is required.
func (s *Server) CurrentUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(sessionCookie)
		if tokenString == "" {
			return c.Next()
		}

		userID, username, err := s.parseSessionToken(tokenString)
		if err != nil {
			// Stale or tampered cookie; drop it and continue anonymously.
			s.clearSession(c)
			return c.Next()
		}

		c.Locals("userID", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

// LoginRequired returns middleware that redirects anonymous requests to the
// login page. Must run after CurrentUser.
func (s *Server) LoginRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("userID").(uint); !ok {
			return c.Redirect("/login")
		}
		return c.Next()
	}
}

// sessionUserID returns the authenticated user id, or false when anonymous.
func sessionUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

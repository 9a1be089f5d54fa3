package blog

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash is a one-shot, session-scoped notice cleared after being displayed
// once. Category matches the alert styles the templates know about
// ("success", "warning", "danger").
type Flash struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// setFlash stores a flash message in a short-lived cookie for the next render.
func setFlash(c *fiber.Ctx, category, message string) {
	b, err := json.Marshal(Flash{Message: message, Category: category})
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookie)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	return &f
}

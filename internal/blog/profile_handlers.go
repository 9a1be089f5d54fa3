package blog

import (
	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /profile/:username, showing the user's bio, image and
// posts newest first. Public; unknown usernames get the 404 page.
func (s *Server) Profile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userRepo.GetByUsernameWithPosts(c.Context(), username)
	if err != nil {
		return err
	}

	return s.render(c, "profile", fiber.Map{
		"Profile": user,
		"Posts":   user.Posts,
	})
}

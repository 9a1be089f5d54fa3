package blog

import (
	"errors"

	"tastetrip/internal/middleware"
	"tastetrip/internal/models"
	"tastetrip/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// ShowSignup handles GET /signup.
func (s *Server) ShowSignup(c *fiber.Ctx) error {
	if _, ok := sessionUserID(c); ok {
		return c.Redirect("/")
	}
	return s.render(c, "signup", nil)
}

// HandleSignup handles POST /signup. A duplicate email never creates a second
// account and leaves the original untouched.
func (s *Server) HandleSignup(c *fiber.Ctx) error {
	if _, ok := sessionUserID(c); ok {
		return c.Redirect("/")
	}

	var req struct {
		Username string `form:"username"`
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "danger", "Invalid signup request.")
		return c.Redirect("/signup")
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		setFlash(c, "danger", err.Error())
		return c.Redirect("/signup")
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		setFlash(c, "danger", err.Error())
		return c.Redirect("/signup")
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		setFlash(c, "danger", err.Error())
		return c.Redirect("/signup")
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		setFlash(c, "warning", "An account with this email already exists.")
		return c.Redirect("/signup")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user := models.NewUser(req.Username, req.Email, string(hashedPassword))
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		var appErr *models.AppError
		if errors.As(createErr, &appErr) && appErr.Code == "CONFLICT" {
			setFlash(c, "warning", appErr.Message)
			return c.Redirect("/signup")
		}
		return createErr
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up",
		"user_id", user.ID, "username", user.Username)

	if err := s.establishSession(c, user.ID, user.Username); err != nil {
		return models.NewInternalError(err)
	}
	return c.Redirect("/")
}

// ShowLogin handles GET /login.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	if _, ok := sessionUserID(c); ok {
		return c.Redirect("/")
	}
	return s.render(c, "login", nil)
}

// HandleLogin handles POST /login. The failure message is identical for an
// unknown email and a wrong password so accounts cannot be enumerated.
func (s *Server) HandleLogin(c *fiber.Ctx) error {
	if _, ok := sessionUserID(c); ok {
		return c.Redirect("/")
	}

	var req struct {
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "danger", "Login Unsuccessful. Please check email and password")
		return c.Redirect("/login")
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		setFlash(c, "danger", "Login Unsuccessful. Please check email and password")
		return c.Redirect("/login")
	}

	if err := s.establishSession(c, user.ID, user.Username); err != nil {
		return models.NewInternalError(err)
	}
	return c.Redirect("/")
}

// Logout handles GET /logout. Requires an active session.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/")
}

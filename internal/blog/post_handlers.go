package blog

import (
	"strconv"
	"time"

	"tastetrip/internal/models"
	"tastetrip/internal/observability"

	"github.com/gofiber/fiber/v2"
)

type postForm struct {
	Title     string `form:"title"`
	Content   string `form:"content"`
	Tags      string `form:"tags"`
	Thumbnail string `form:"thumbnail"`
}

// Index handles GET /, listing all posts newest first.
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context())
	if err != nil {
		return err
	}
	return s.render(c, "index", fiber.Map{"Posts": posts, "SearchQuery": ""})
}

// Search handles GET /search?q=. An empty query returns an empty result set
// rather than all posts: "no query" is distinct from "no matches".
func (s *Server) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		observability.SearchQueries.WithLabelValues("empty_query").Inc()
		return s.render(c, "index", fiber.Map{
			"Posts":       []*models.Post{},
			"SearchQuery": query,
		})
	}

	posts, err := s.postRepo.Search(c.Context(), query)
	if err != nil {
		return err
	}

	outcome := "hit"
	if len(posts) == 0 {
		outcome = "miss"
	}
	observability.SearchQueries.WithLabelValues(outcome).Inc()

	return s.render(c, "index", fiber.Map{
		"Posts":       posts,
		"SearchQuery": query,
	})
}

// ViewPost handles GET /post/:id.
func (s *Server) ViewPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return err
	}

	userID, _ := sessionUserID(c)
	return s.render(c, "post", fiber.Map{
		"Post":    post,
		"IsOwner": post.UserID == userID,
	})
}

// ShowCreatePost handles GET /create_post.
func (s *Server) ShowCreatePost(c *fiber.Ctx) error {
	return s.render(c, "create_post", fiber.Map{"IsEdit": false})
}

// HandleCreatePost handles POST /create_post. The author is always the
// session's user; an empty thumbnail falls back to the placeholder asset.
func (s *Server) HandleCreatePost(c *fiber.Ctx) error {
	userID, _ := sessionUserID(c)

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "danger", "Invalid post form.")
		return c.Redirect("/create_post")
	}
	if req.Title == "" || req.Content == "" {
		setFlash(c, "danger", "Title and content are required.")
		return c.Redirect("/create_post")
	}
	if req.Thumbnail == "" {
		req.Thumbnail = models.DefaultThumbnail
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Thumbnail:  req.Thumbnail,
		DatePosted: time.Now().UTC(),
		UserID:     userID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return err
	}

	observability.PostsCreated.Inc()
	return c.Redirect("/")
}

// ShowEditPost handles GET /post/:id/edit. Only the author may edit; anyone
// else is bounced back to the post view with a warning.
func (s *Server) ShowEditPost(c *fiber.Ctx) error {
	post, redirected, err := s.loadOwnedPost(c, "edit")
	if err != nil || redirected {
		return err
	}
	return s.render(c, "create_post", fiber.Map{
		"IsEdit": true,
		"Post":   post,
	})
}

// HandleEditPost handles POST /post/:id/edit with the same authorization rule
// as ShowEditPost.
func (s *Server) HandleEditPost(c *fiber.Ctx) error {
	post, redirected, err := s.loadOwnedPost(c, "edit")
	if err != nil || redirected {
		return err
	}

	var req postForm
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "danger", "Invalid post form.")
		return c.Redirect(postPath(post.ID) + "/edit")
	}
	if req.Title == "" || req.Content == "" {
		setFlash(c, "danger", "Title and content are required.")
		return c.Redirect(postPath(post.ID) + "/edit")
	}
	if req.Thumbnail == "" {
		req.Thumbnail = models.DefaultThumbnail
	}

	post.Title = req.Title
	post.Content = req.Content
	post.Tags = req.Tags
	post.Thumbnail = req.Thumbnail

	if err := s.postRepo.Update(c.Context(), post); err != nil {
		return err
	}
	return c.Redirect(postPath(post.ID))
}

// DeletePost handles POST /post/:id/delete. Removes exactly one row; no soft
// delete, no cascading side effects.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post, redirected, err := s.loadOwnedPost(c, "delete")
	if err != nil || redirected {
		return err
	}

	if err := s.postRepo.Delete(c.Context(), post.ID); err != nil {
		return err
	}

	setFlash(c, "success", "Your post has been deleted!")
	return c.Redirect("/")
}

// loadOwnedPost fetches the :id post and enforces that the session user is
// its author. A non-author gets a flash warning and a redirect back to the
// post view (redirected=true) rather than a hard error page.
func (s *Server) loadOwnedPost(c *fiber.Ctx, action string) (*models.Post, bool, error) {
	postID, err := parsePostID(c)
	if err != nil {
		return nil, false, err
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return nil, false, err
	}

	userID, _ := sessionUserID(c)
	if post.UserID != userID {
		setFlash(c, "danger", "You do not have permission to "+action+" this post.")
		return nil, true, c.Redirect(postPath(post.ID))
	}
	return post, false, nil
}

func postPath(id uint) string {
	return "/post/" + strconv.FormatUint(uint64(id), 10)
}

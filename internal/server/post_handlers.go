package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.PostStatus `json:"status"`
	CategoryIDs []uint            `json:"category_ids"`
	ImageURL    string            `json:"image_url"`
}

// GetPublishedPosts handles GET /api/posts
func (s *Server) GetPublishedPosts(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListPublished(c.Context(), service.ListPostsInput{
		Search:        c.Query("search"),
		CategoryTitle: c.Query("category"),
		AuthorID:      uint(c.QueryInt("author")),
		CurrentUserID: userID,
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  pagination.Limit,
		"offset": pagination.Offset,
	})
}

// GetPublishedPost handles GET /api/posts/:id
func (s *Server) GetPublishedPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	post, err := s.postService.GetPublished(c.Context(), postID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	post.Comments, err = s.commentService.AssembleThread(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetPostComments handles GET /api/posts/:id/comments. The thread comes back
// as root comments with their replies nested one level deep.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	if _, err := s.postService.GetPublished(c.Context(), postID, userID); err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.AssembleThread(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// GetMyPosts handles GET /api/user/posts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	var status *models.PostStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := models.ParsePostStatus(raw)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
		status = &parsed
	}

	posts, err := s.postService.ListOwnPosts(c.Context(), currentUserID(c), service.ListPostsInput{
		Search:        c.Query("search"),
		CategoryTitle: c.Query("category"),
		Status:        status,
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  pagination.Limit,
		"offset": pagination.Offset,
	})
}

// GetMyPost handles GET /api/user/posts/:id
func (s *Server) GetMyPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetOwnPost(c.Context(), currentUserID(c), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// CreatePost handles POST /api/user/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/user/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:      currentUserID(c),
		PostID:      postID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CategoryIDs: req.CategoryIDs,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/user/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Post deleted",
	})
}

// LikePost handles POST /api/posts/:id/likes
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.LikePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UnlikePost handles DELETE /api/posts/:id/likes
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.UnlikePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

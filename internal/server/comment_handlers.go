package server

import (
	"encoding/json"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	PostID    uint   `json:"post_id"`
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	ReplyToID *uint  `json:"reply_to"`
}

// commentUpdateRequest keeps reply_to raw so an omitted field can be told
// apart from an explicit null: omitted leaves the stored parent alone, null
// detaches the comment from it.
type commentUpdateRequest struct {
	Title   string          `json:"title"`
	Caption string          `json:"caption"`
	ReplyTo json.RawMessage `json:"reply_to"`
}

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:    currentUserID(c),
		PostID:    req.PostID,
		Title:     req.Title,
		Caption:   req.Caption,
		ReplyToID: req.ReplyToID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComment handles GET /api/comments/:id
func (s *Server) GetComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.Context(), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// GetCommentReplies handles GET /api/comments/:id/replies
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.RepliesOf(c.Context(), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"replies": replies,
	})
}

// UpdateComment handles PUT /api/comments/:id
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Title:     req.Title,
		Caption:   req.Caption,
	}
	if len(req.ReplyTo) > 0 {
		in.ReplyToSet = true
		if string(req.ReplyTo) != "null" {
			var parentID uint
			if err := json.Unmarshal(req.ReplyTo, &parentID); err != nil {
				return models.RespondWithError(c, fiber.StatusBadRequest,
					models.NewValidationError("reply_to must be a comment id or null"))
			}
			in.ReplyToID = &parentID
		}
	}

	comment, err := s.commentService.UpdateComment(c.Context(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), currentUserID(c), commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted",
	})
}

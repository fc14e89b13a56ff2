package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetSocialMediaLinks handles GET /api/social-media
func (s *Server) GetSocialMediaLinks(c *fiber.Ctx) error {
	links, err := s.socialService.ListLinks(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"social_media": links,
	})
}

// GetSocialMediaLink handles GET /api/social-media/:id
func (s *Server) GetSocialMediaLink(c *fiber.Ctx) error {
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	link, err := s.socialService.GetLink(c.Context(), linkID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(link)
}

// CreateSocialMediaLink handles POST /api/admin/social-media
func (s *Server) CreateSocialMediaLink(c *fiber.Ctx) error {
	var req service.SocialMediaInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.socialService.CreateLink(c.Context(), req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// UpdateSocialMediaLink handles PUT /api/admin/social-media/:id
func (s *Server) UpdateSocialMediaLink(c *fiber.Ctx) error {
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.SocialMediaInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	link, err := s.socialService.UpdateLink(c.Context(), linkID, req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(link)
}

// DeleteSocialMediaLink handles DELETE /api/admin/social-media/:id
func (s *Server) DeleteSocialMediaLink(c *fiber.Ctx) error {
	linkID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.socialService.DeleteLink(c.Context(), linkID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Social media link deleted",
	})
}

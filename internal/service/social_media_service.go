package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"
)

// SocialMediaService serves the public footer links and their admin writes.
type SocialMediaService struct {
	socialRepo repository.SocialMediaRepository
}

// SocialMediaInput is the admin create/update payload. IconID indexes into
// the frontend's fixed icon set.
type SocialMediaInput struct {
	Title  string `json:"title" validate:"required,max=64"`
	Text   string `json:"text"`
	Link   string `json:"link" validate:"required,url"`
	Color  string `json:"color" validate:"max=32"`
	IconID uint8  `json:"icon_id" validate:"gte=0,lte=10"`
}

func NewSocialMediaService(socialRepo repository.SocialMediaRepository) *SocialMediaService {
	return &SocialMediaService{socialRepo: socialRepo}
}

func (s *SocialMediaService) ListLinks(ctx context.Context) ([]*models.SocialMedia, error) {
	return s.socialRepo.List(ctx)
}

func (s *SocialMediaService) GetLink(ctx context.Context, id uint) (*models.SocialMedia, error) {
	return s.socialRepo.GetByID(ctx, id)
}

func (s *SocialMediaService) CreateLink(ctx context.Context, in SocialMediaInput) (*models.SocialMedia, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	link := &models.SocialMedia{
		Title:  in.Title,
		Text:   in.Text,
		Link:   in.Link,
		Color:  in.Color,
		IconID: in.IconID,
	}
	if err := s.socialRepo.Create(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *SocialMediaService) UpdateLink(ctx context.Context, id uint, in SocialMediaInput) (*models.SocialMedia, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	link, err := s.socialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	link.Title = in.Title
	link.Text = in.Text
	link.Link = in.Link
	link.Color = in.Color
	link.IconID = in.IconID
	if err := s.socialRepo.Update(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *SocialMediaService) DeleteLink(ctx context.Context, id uint) error {
	if _, err := s.socialRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.socialRepo.Delete(ctx, id)
}

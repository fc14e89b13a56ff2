package service

import (
	"context"
	"net/url"
	"strings"

	"quill/internal/authz"
	"quill/internal/models"
	"quill/internal/repository"
)

// PostService covers both post surfaces: the public published-only read path
// and the owner-only authoring path.
type PostService struct {
	postRepo     repository.PostRepository
	categoryRepo repository.CategoryRepository
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
	Status      models.PostStatus
	CategoryIDs []uint
	ImageURL    string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Description string
	Status      models.PostStatus
	CategoryIDs []uint
	ImageURL    string
}

type ListPostsInput struct {
	Search        string
	CategoryTitle string
	AuthorID      uint
	Status        *models.PostStatus
	CurrentUserID uint
	Limit         int
	Offset        int
}

func NewPostService(
	postRepo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

const (
	maxPostTitleLen       = 64
	maxPostDescriptionLen = 50000
)

func validatePostFields(title, description, imageURL string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxPostTitleLen {
		return models.NewValidationError("Title too long (max 64 characters)")
	}
	if len(description) > maxPostDescriptionLen {
		return models.NewValidationError("Description too long (max 50000 characters)")
	}
	if imageURL != "" {
		u, err := url.Parse(imageURL)
		if err != nil || !strings.HasPrefix(u.Scheme, "http") {
			return models.NewValidationError("Image URL must be a valid http(s) URL")
		}
	}
	return nil
}

// CreatePost creates a post owned by the caller. Category ids must resolve to
// existing categories.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := authz.CanAccessPost(authz.ForUser(in.UserID), nil, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Description, in.ImageURL); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		UserID:      &in.UserID,
		Categories:  categories,
		ImageURL:    in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetOwnPost returns one of the caller's posts in any status.
func (s *PostService) GetOwnPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessPost(authz.ForUser(userID), post, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.attachLikes(ctx, post)
}

// ListOwnPosts lists the caller's posts across all statuses.
func (s *PostService) ListOwnPosts(ctx context.Context, userID uint, in ListPostsInput) ([]*models.Post, error) {
	if err := authz.CanAccessPost(authz.ForUser(userID), nil, authz.ActionCreate); err != nil {
		return nil, err
	}
	return s.postRepo.ListByAuthor(ctx, userID, repository.PostFilter{
		Search:        in.Search,
		CategoryTitle: in.CategoryTitle,
		Status:        in.Status,
		Limit:         normalizeLimit(in.Limit),
		Offset:        in.Offset,
	})
}

// UpdatePost rewrites one of the caller's posts, including its category set.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessPost(authz.ForUser(in.UserID), post, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if err := validatePostFields(in.Title, in.Description, in.ImageURL); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Description = in.Description
	post.Status = in.Status
	post.ImageURL = in.ImageURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if err := s.postRepo.ReplaceCategories(ctx, post, categories); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// DeletePost removes one of the caller's posts along with its comments and
// likes.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if err := authz.CanAccessPost(authz.ForUser(userID), post, authz.ActionDelete); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ListPublished serves the public feed: published posts only, regardless of
// who is asking.
func (s *PostService) ListPublished(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	return s.postRepo.ListPublished(ctx, repository.PostFilter{
		Search:        in.Search,
		CategoryTitle: in.CategoryTitle,
		AuthorID:      in.AuthorID,
		Limit:         normalizeLimit(in.Limit),
		Offset:        in.Offset,
	}, in.CurrentUserID)
}

// GetPublished serves the public detail view with the like roster attached.
// Drafts and archived posts are reported as not found, not as forbidden.
func (s *PostService) GetPublished(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetPublishedByID(ctx, postID, currentUserID)
	if err != nil {
		return nil, err
	}
	return s.attachLikes(ctx, post)
}

// LikePost adds the caller to the post's like set. Liking an already-liked
// post changes nothing and still succeeds.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	if err := authz.CanLike(authz.ForUser(userID)); err != nil {
		return err
	}
	if _, err := s.postRepo.GetPublishedByID(ctx, postID, userID); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, userID, postID)
}

// UnlikePost removes the caller from the post's like set; absent likes are a
// no-op.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if err := authz.CanUnlike(authz.ForUser(userID)); err != nil {
		return err
	}
	if _, err := s.postRepo.GetPublishedByID(ctx, postID, userID); err != nil {
		return err
	}
	return s.postRepo.Unlike(ctx, userID, postID)
}

func (s *PostService) attachLikes(ctx context.Context, post *models.Post) (*models.Post, error) {
	likes, err := s.postRepo.LikingUsers(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Likes = likes
	return post, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

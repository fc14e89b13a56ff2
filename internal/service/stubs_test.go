package service

import (
	"context"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	getWithRepliesFn func(context.Context, uint) (*models.Comment, error)
	listByPostFn     func(context.Context, uint) ([]*models.Comment, error)
	rootsByPostFn    func(context.Context, uint) ([]*models.Comment, error)
	repliesOfFn      func(context.Context, uint) ([]*models.Comment, error)
	replyCountFn     func(context.Context, uint) (int64, error)
	updateFn         func(context.Context, *models.Comment) error
	deleteFn         func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetWithReplies(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getWithRepliesFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) RootsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.rootsByPostFn(ctx, postID)
}
func (s *commentRepoStub) RepliesOf(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	return s.repliesOfFn(ctx, commentID)
}
func (s *commentRepoStub) ReplyCount(ctx context.Context, commentID uint) (int64, error) {
	return s.replyCountFn(ctx, commentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		getWithRepliesFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn:  func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		rootsByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		repliesOfFn:   func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		replyCountFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		updateFn:      func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn            func(context.Context, *models.Post) error
	getByIDFn           func(context.Context, uint, uint) (*models.Post, error)
	getPublishedByIDFn  func(context.Context, uint, uint) (*models.Post, error)
	listPublishedFn     func(context.Context, repository.PostFilter, uint) ([]*models.Post, error)
	listByAuthorFn      func(context.Context, uint, repository.PostFilter) ([]*models.Post, error)
	updateFn            func(context.Context, *models.Post) error
	replaceCategoriesFn func(context.Context, *models.Post, []models.Category) error
	deleteFn            func(context.Context, uint) error
	likeFn              func(context.Context, uint, uint) error
	unlikeFn            func(context.Context, uint, uint) error
	likingUsersFn       func(context.Context, uint) ([]models.UserSummary, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetPublishedByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getPublishedByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) ListPublished(ctx context.Context, f repository.PostFilter, currentUserID uint) ([]*models.Post, error) {
	return s.listPublishedFn(ctx, f, currentUserID)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, f repository.PostFilter) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, f)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	return s.replaceCategoriesFn(ctx, post, categories)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) LikingUsers(ctx context.Context, postID uint) ([]models.UserSummary, error) {
	return s.likingUsersFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	owner := uint(1)
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: &owner}, nil
		},
		getPublishedByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: &owner, Status: models.PostStatusPublished}, nil
		},
		listPublishedFn: func(_ context.Context, _ repository.PostFilter, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint, _ repository.PostFilter) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn:            func(_ context.Context, _ *models.Post) error { return nil },
		replaceCategoriesFn: func(_ context.Context, _ *models.Post, _ []models.Category) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
		likeFn:              func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:            func(_ context.Context, _, _ uint) error { return nil },
		likingUsersFn:       func(_ context.Context, _ uint) ([]models.UserSummary, error) { return nil, nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn     func(context.Context) ([]*models.Category, error)
	getByIDFn  func(context.Context, uint) (*models.Category, error)
	getByIDsFn func(context.Context, []uint) ([]models.Category, error)
	createFn   func(context.Context, *models.Category) error
	updateFn   func(context.Context, *models.Category) error
	deleteFn   func(context.Context, uint) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn: func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id}, nil
		},
		getByIDsFn: func(_ context.Context, ids []uint) ([]models.Category, error) {
			categories := make([]models.Category, 0, len(ids))
			for _, id := range ids {
				categories = append(categories, models.Category{ID: id})
			}
			return categories, nil
		},
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		updateFn: func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, models.CodeValidationError, appErr.Code)
}

func assertAuthorizationDenied(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, models.CodeAuthorizationDenied, appErr.Code)
}

func assertConstraintViolation(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	require.Equal(t, models.CodeConstraintViolation, appErr.Code)
}

package service

import (
	"context"
	"strings"
	"testing"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), noopCategoryRepo())
	ctx := context.Background()

	t.Run("anonymous caller denied", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 0, Title: "hi"})
		assertAuthorizationDenied(t, err)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: strings.Repeat("x", 65)})
		assertValidationError(t, err)
	})

	t.Run("bad image url", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "ok", ImageURL: "not-a-url"})
		assertValidationError(t, err)
	})

	t.Run("unknown category id", func(t *testing.T) {
		t.Parallel()
		categoryRepo := noopCategoryRepo()
		categoryRepo.getByIDsFn = func(_ context.Context, ids []uint) ([]models.Category, error) {
			return nil, models.NewNotFoundError("Category", ids[0])
		}
		svc2 := NewPostService(noopPostRepo(), categoryRepo)
		_, err := svc2.CreatePost(ctx, CreatePostInput{UserID: 1, Title: "ok", CategoryIDs: []uint{99}})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostService_CreatePost_StampsOwner(t *testing.T) {
	t.Parallel()

	var created *models.Post
	postRepo := noopPostRepo()
	postRepo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 10
		created = p
		return nil
	}

	svc := NewPostService(postRepo, noopCategoryRepo())
	_, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:      3,
		Title:       "Draft thoughts",
		Status:      models.PostStatusDraft,
		CategoryIDs: []uint{1, 2},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.UserID)
	assert.Equal(t, uint(3), *created.UserID)
	assert.Equal(t, models.PostStatusDraft, created.Status)
	assert.Len(t, created.Categories, 2)
}

func TestPostService_OwnerIsolation(t *testing.T) {
	t.Parallel()

	owner := uint(1)
	postRepo := noopPostRepo()
	postRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: &owner, Title: "mine"}, nil
	}

	svc := NewPostService(postRepo, noopCategoryRepo())
	ctx := context.Background()

	t.Run("owner reads own post in any status", func(t *testing.T) {
		t.Parallel()
		post, err := svc.GetOwnPost(ctx, 1, 5)
		require.NoError(t, err)
		assert.Equal(t, "mine", post.Title)
	})

	t.Run("other user cannot read", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GetOwnPost(ctx, 2, 5)
		assertAuthorizationDenied(t, err)
	})

	t.Run("other user cannot update", func(t *testing.T) {
		t.Parallel()
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 2, PostID: 5, Title: "stolen"})
		assertAuthorizationDenied(t, err)
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		t.Parallel()
		assertAuthorizationDenied(t, svc.DeletePost(ctx, 2, 5))
	})

	t.Run("ownerless post denies everyone", func(t *testing.T) {
		t.Parallel()
		orphanRepo := noopPostRepo()
		orphanRepo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: nil}, nil
		}
		orphanSvc := NewPostService(orphanRepo, noopCategoryRepo())
		_, err := orphanSvc.GetOwnPost(ctx, 1, 5)
		assertAuthorizationDenied(t, err)
	})
}

func TestPostService_ListPublished_ForcesPublishedFilter(t *testing.T) {
	t.Parallel()

	var gotFilter repository.PostFilter
	postRepo := noopPostRepo()
	postRepo.listPublishedFn = func(_ context.Context, f repository.PostFilter, _ uint) ([]*models.Post, error) {
		gotFilter = f
		return []*models.Post{{ID: 1, Status: models.PostStatusPublished}}, nil
	}

	svc := NewPostService(postRepo, noopCategoryRepo())
	posts, err := svc.ListPublished(context.Background(), ListPostsInput{Search: "go", Limit: 500})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "go", gotFilter.Search)
	assert.Equal(t, maxPageSize, gotFilter.Limit, "oversized limits are clamped")
}

func TestPostService_LikeUnlike(t *testing.T) {
	t.Parallel()

	t.Run("anonymous cannot like", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopCategoryRepo())
		err := svc.LikePost(context.Background(), 0, 1)
		assertAuthorizationDenied(t, err)
	})

	t.Run("like is idempotent at the service boundary", func(t *testing.T) {
		t.Parallel()
		likeCalls := 0
		postRepo := noopPostRepo()
		postRepo.likeFn = func(_ context.Context, _, _ uint) error {
			likeCalls++
			return nil
		}
		svc := NewPostService(postRepo, noopCategoryRepo())

		require.NoError(t, svc.LikePost(context.Background(), 2, 1))
		require.NoError(t, svc.LikePost(context.Background(), 2, 1))
		assert.Equal(t, 2, likeCalls, "repeat likes reach the repo, which absorbs them")
	})

	t.Run("liking a draft reports not found", func(t *testing.T) {
		t.Parallel()
		postRepo := noopPostRepo()
		postRepo.getPublishedByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewPostService(postRepo, noopCategoryRepo())
		err := svc.LikePost(context.Background(), 2, 1)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})

	t.Run("unlike absent like succeeds", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), noopCategoryRepo())
		require.NoError(t, svc.UnlikePost(context.Background(), 2, 1))
	})
}

func TestPostService_GetPublished_AttachesLikeRoster(t *testing.T) {
	t.Parallel()

	postRepo := noopPostRepo()
	postRepo.likingUsersFn = func(_ context.Context, _ uint) ([]models.UserSummary, error) {
		return []models.UserSummary{{ID: 4, Username: "dana"}, {ID: 9, Username: "lee"}}, nil
	}

	svc := NewPostService(postRepo, noopCategoryRepo())
	post, err := svc.GetPublished(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, post.Likes, 2)
	assert.Equal(t, "dana", post.Likes[0].Username)
}

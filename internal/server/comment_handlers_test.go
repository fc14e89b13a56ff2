package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock of the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetWithReplies(ctx context.Context, id uint) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) RootsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) RepliesOf(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ReplyCount(ctx context.Context, commentID uint) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func putJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestUpdateComment_ReplyToPresence(t *testing.T) {
	owner := uint(3)
	parent := uint(7)

	newApp := func(repo *MockCommentRepository) *fiber.App {
		s := &Server{
			config:         &config.Config{JWTSecret: "test_secret"},
			commentService: service.NewCommentService(repo, nil),
		}
		app := fiber.New()
		app.Put("/comments/:id", func(c *fiber.Ctx) error {
			c.Locals("userID", owner)
			return s.UpdateComment(c)
		})
		return app
	}

	stored := func() *models.Comment {
		return &models.Comment{ID: 12, PostID: 5, UserID: &owner, Title: "hi", Caption: "old", ReplyToID: &parent}
	}

	t.Run("omitted reply_to keeps the stored parent", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, uint(12)).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ReplyToID != nil && *c.ReplyToID == parent
		})).Return(nil)
		repo.On("GetWithReplies", mock.Anything, uint(12)).Return(stored(), nil)

		resp := putJSON(t, newApp(repo), "/comments/12", `{"title":"edited","caption":"edited"}`)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("explicit null detaches the reply", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, uint(12)).Return(stored(), nil)
		repo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ReplyToID == nil
		})).Return(nil)
		repo.On("GetWithReplies", mock.Anything, uint(12)).Return(stored(), nil)

		resp := putJSON(t, newApp(repo), "/comments/12", `{"title":"edited","caption":"edited","reply_to":null}`)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		repo.AssertExpectations(t)
	})

	t.Run("non-numeric reply_to is rejected", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, uint(12)).Return(stored(), nil)

		resp := putJSON(t, newApp(repo), "/comments/12", `{"title":"edited","caption":"edited","reply_to":"abc"}`)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

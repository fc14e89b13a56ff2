// Package service holds the application's business rules, sitting between the
// HTTP handlers and the repositories.
package service

import (
	"context"

	"quill/internal/authz"
	"quill/internal/models"
	"quill/internal/repository"
)

// CommentService owns the comment tree: creation and edits go through the
// reply-depth rules, reads come back as root comments with their replies
// attached.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID    uint
	PostID    uint
	Title     string
	Caption   string
	ReplyToID *uint
}

// UpdateCommentInput rewrites a comment. ReplyToID only takes effect when
// ReplyToSet is true; otherwise the stored parent reference is untouched, so
// a title-only edit cannot promote a reply to a root comment.
type UpdateCommentInput struct {
	UserID     uint
	CommentID  uint
	Title      string
	Caption    string
	ReplyToID  *uint
	ReplyToSet bool
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

const (
	maxCommentTitleLen   = 30
	maxCommentCaptionLen = 10000
)

func validateCommentFields(title, caption string) error {
	if title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > maxCommentTitleLen {
		return models.NewValidationError("Title too long (max 30 characters)")
	}
	if caption == "" {
		return models.NewValidationError("Caption is required")
	}
	if len(caption) > maxCommentCaptionLen {
		return models.NewValidationError("Caption too long (max 10000 characters)")
	}
	return nil
}

// CreateComment validates the payload, confirms the post exists, and writes
// the comment. The repository enforces the reply-depth cap transactionally,
// so a stale parent cannot slip a reply under another reply.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := authz.CanAccessComment(authz.ForUser(in.UserID), nil, authz.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateCommentFields(in.Title, in.Caption); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:    in.PostID,
		UserID:    &in.UserID,
		Title:     in.Title,
		Caption:   in.Caption,
		ReplyToID: in.ReplyToID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetComment returns a single comment with its direct replies attached.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetWithReplies(ctx, id)
}

// UpdateComment rewrites a comment's fields. Only the author may edit, and the
// repository re-checks the depth rules because the parent reference can change.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanAccessComment(authz.ForUser(in.UserID), comment, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if err := validateCommentFields(in.Title, in.Caption); err != nil {
		return nil, err
	}

	comment.Title = in.Title
	comment.Caption = in.Caption
	if in.ReplyToSet {
		comment.ReplyToID = in.ReplyToID
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetWithReplies(ctx, comment.ID)
}

// DeleteComment removes a comment and its replies. Only the author may delete.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := authz.CanAccessComment(authz.ForUser(userID), comment, authz.ActionDelete); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, commentID)
}

// AssembleThread builds the two-level comment tree for a post from a single
// fetch: roots ordered oldest-first, each carrying its replies oldest-first.
func (s *CommentService) AssembleThread(ctx context.Context, postID uint) ([]*models.Comment, error) {
	all, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	roots := make([]*models.Comment, 0, len(all))
	byParent := make(map[uint][]*models.Comment)
	for _, c := range all {
		if c.ReplyToID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ReplyToID] = append(byParent[*c.ReplyToID], c)
		}
	}

	// ListByPost orders by created_at asc, so both roots and each reply
	// bucket keep that order without re-sorting.
	for _, root := range roots {
		replies := byParent[root.ID]
		if replies == nil {
			replies = []*models.Comment{}
		}
		root.Replies = replies
		root.ReplyCount = len(replies)
	}
	return roots, nil
}

// RootComments lists a post's root comments, oldest first, without replies.
func (s *CommentService) RootComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.commentRepo.RootsByPost(ctx, postID)
}

// ReplyCount returns the number of direct replies to a comment.
func (s *CommentService) ReplyCount(ctx context.Context, commentID uint) (int64, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return 0, err
	}
	return s.commentRepo.ReplyCount(ctx, commentID)
}

// RepliesOf lists the direct replies of a comment, oldest first.
func (s *CommentService) RepliesOf(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.RepliesOf(ctx, commentID)
}

// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines persistence operations for comments, including
// the transactional reply-depth check on every write.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	GetWithReplies(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	RootsByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	RepliesOf(ctx context.Context, commentID uint) ([]*models.Comment, error)
	ReplyCount(ctx context.Context, commentID uint) (int64, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// checkReplyDepth enforces the two-level reply cap inside the caller's
// transaction. The parent row is locked FOR UPDATE so a concurrent write
// cannot turn it into a reply after the check but before the commit.
func checkReplyDepth(tx *gorm.DB, comment *models.Comment) error {
	if comment.ReplyToID == nil {
		return nil
	}

	var parent models.Comment
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&parent, *comment.ReplyToID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError("Comment", *comment.ReplyToID)
	}
	if err != nil {
		return err
	}

	if parent.ReplyToID != nil {
		middleware.ReplyDepthRejections.Inc()
		return models.NewConstraintViolationError("Cannot reply to a comment that is itself a reply")
	}
	if parent.PostID != comment.PostID {
		return models.NewConstraintViolationError("Reply must target a comment on the same post")
	}
	return nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReplyDepth(tx, comment); err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return err
	}
	// The post detail carries a comment_count subquery result.
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) GetWithReplies(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	replies, err := r.RepliesOf(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Replies = replies
	comment.ReplyCount = len(replies)
	return comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) RootsByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND reply_to_id IS NULL", postID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) RepliesOf(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("reply_to_id = ?", commentID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ReplyCount(ctx context.Context, commentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("reply_to_id = ?", commentID).
		Count(&count).Error
	return count, err
}

// Update re-runs the depth check whenever the comment carries a parent
// reference, and additionally rejects turning a comment that already has
// replies into a reply (its children would exceed the depth cap). Both the
// comment row and the parent row are locked in the same transaction.
func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Comment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, comment.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", comment.ID)
		}
		if err != nil {
			return err
		}

		if comment.ReplyToID != nil {
			var children int64
			if err := tx.Model(&models.Comment{}).
				Where("reply_to_id = ?", comment.ID).
				Count(&children).Error; err != nil {
				return err
			}
			if children > 0 {
				middleware.ReplyDepthRejections.Inc()
				return models.NewConstraintViolationError("Cannot turn a comment with replies into a reply")
			}
			if err := checkReplyDepth(tx, comment); err != nil {
				return err
			}
		}

		return tx.Save(comment).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

// Delete removes a comment together with its replies.
func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var postID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id", "post_id").First(&comment, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Comment", id)
			}
			return err
		}
		postID = comment.PostID

		if err := tx.Where("reply_to_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}

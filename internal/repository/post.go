package repository

import (
	"context"
	"errors"

	"quill/internal/cache"
	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows post listings. Zero values mean "no filter".
type PostFilter struct {
	Search        string
	CategoryTitle string
	AuthorID      uint
	Status        *models.PostStatus
	Limit         int
	Offset        int
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	GetPublishedByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error)
	ListPublished(ctx context.Context, f PostFilter, currentUserID uint) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, f PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error
	Delete(ctx context.Context, id uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	LikingUsers(ctx context.Context, postID uint) ([]models.UserSummary, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.InvalidatePublishedList(ctx)
	return nil
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) as comment_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) as liked", currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applyFilter appends search and filter clauses. Search matches title,
// description and category title (substring) plus exact author username.
// EXISTS subqueries keep the result set free of join duplicates.
func (r *postRepository) applyFilter(db *gorm.DB, f PostFilter) *gorm.DB {
	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where(
			`posts.title ILIKE @like OR posts.description ILIKE @like
			OR EXISTS (
				SELECT 1 FROM post_categories pc
				JOIN categories c ON c.id = pc.category_id
				WHERE pc.post_id = posts.id AND c.title ILIKE @like AND c.deleted_at IS NULL
			)
			OR EXISTS (
				SELECT 1 FROM users u WHERE u.id = posts.user_id AND u.username = @exact
			)`,
			map[string]interface{}{"like": like, "exact": f.Search},
		)
	}
	if f.CategoryTitle != "" {
		db = db.Where(
			`EXISTS (
				SELECT 1 FROM post_categories pc
				JOIN categories c ON c.id = pc.category_id
				WHERE pc.post_id = posts.id AND c.title = ? AND c.deleted_at IS NULL
			)`,
			f.CategoryTitle,
		)
	}
	if f.AuthorID != 0 {
		db = db.Where("posts.user_id = ?", f.AuthorID)
	}
	if f.Status != nil {
		db = db.Where("posts.status = ?", *f.Status)
	}
	return db
}

func (r *postRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User").
		Preload("Categories").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedByID serves the public detail path: only published posts are
// visible, everything else is reported as not found. Anonymous reads go
// through the cache.
func (r *postRepository) GetPublishedByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		err := r.applyPostDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			Preload("Categories").
			Where("posts.status = ?", models.PostStatusPublished).
			First(&post, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return err
	}

	var err error
	if currentUserID == 0 {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// defaultFeedLimit mirrors the default page size handed down by the service;
// only that page is worth keeping in the cache.
const defaultFeedLimit = 20

func (r *postRepository) ListPublished(ctx context.Context, f PostFilter, currentUserID uint) ([]*models.Post, error) {
	var posts []*models.Post
	published := models.PostStatusPublished
	f.Status = &published

	fetch := func() error {
		return r.applyFilter(r.applyPostDetails(r.db.WithContext(ctx), currentUserID), f).
			Preload("User").
			Preload("Categories").
			Order("posts.updated_at DESC").
			Limit(f.Limit).
			Offset(f.Offset).
			Find(&posts).Error
	}

	// Only the anonymous, unfiltered first page goes through the cache;
	// everything else varies per caller and reads straight from the database.
	cacheable := currentUserID == 0 && f.Search == "" && f.CategoryTitle == "" &&
		f.AuthorID == 0 && f.Offset == 0 && f.Limit == defaultFeedLimit

	var err error
	if cacheable {
		err = cache.Aside(ctx, cache.PublishedListKey, &posts, cache.ListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, f PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	f.AuthorID = authorID

	err := r.applyFilter(r.applyPostDetails(r.db.WithContext(ctx), authorID), f).
		Preload("User").
		Preload("Categories").
		Order("posts.updated_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("Categories").Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// ReplaceCategories swaps the post's category set.
func (r *postRepository) ReplaceCategories(ctx context.Context, post *models.Post, categories []models.Category) error {
	if err := r.db.WithContext(ctx).Model(post).Association("Categories").Replace(categories); err != nil {
		return err
	}
	post.Categories = categories
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post and cascades to its comments and likes in one
// transaction. Category rows survive; only the join entries go away.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_categories WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// Like inserts the membership row with ON CONFLICT DO NOTHING so concurrent
// double-likes cannot raise a duplicate key error; liking twice is a no-op.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error == nil {
		middleware.LikeToggles.WithLabelValues("like").Inc()
		cache.InvalidatePost(ctx, postID)
	}
	return result.Error
}

// Unlike removes the membership row; removing an absent like is a no-op.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
	if err == nil {
		middleware.LikeToggles.WithLabelValues("unlike").Inc()
		cache.InvalidatePost(ctx, postID)
	}
	return err
}

// LikingUsers projects the like set into id/username pairs for detail views.
func (r *postRepository) LikingUsers(ctx context.Context, postID uint) ([]models.UserSummary, error) {
	var users []models.UserSummary
	err := r.db.WithContext(ctx).
		Table("likes").
		Select("users.id, users.username").
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at asc").
		Scan(&users).Error
	return users, err
}

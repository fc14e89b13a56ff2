// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var categoryTitles = []string{
	"Technology", "Programming", "Travel", "Food", "Music",
	"Books", "Science", "Gaming", "Fitness", "Art",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := seedUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	categories, err := seedCategories(db)
	if err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	posts, err := seedPosts(db, users, categories, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	if err := seedComments(db, users, posts); err != nil {
		return fmt.Errorf("seeding comments: %w", err)
	}
	if err := seedLikes(db, users, posts); err != nil {
		return fmt.Errorf("seeding likes: %w", err)
	}
	if err := seedSocialMedia(db); err != nil {
		return fmt.Errorf("seeding social media: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	tables := []string{"likes", "comments", "post_categories", "posts", "categories", "social_media", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count+1)

	admin := &models.User{
		Username:  "admin",
		Email:     "admin@quill.dev",
		Password:  string(hashed),
		FirstName: "Site",
		LastName:  "Admin",
		IsAdmin:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < count; i++ {
		user := &models.User{
			Username:  fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Email:     gofakeit.Email(),
			Password:  string(hashed),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func seedCategories(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryTitles))
	for _, title := range categoryTitles {
		category := models.Category{Title: title}
		if err := db.Create(&category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func seedPosts(db *gorm.DB, users []*models.User, categories []models.Category, count int) ([]*models.Post, error) {
	statuses := []models.PostStatus{
		models.PostStatusDraft,
		models.PostStatusPublished,
		models.PostStatusPublished,
		models.PostStatusPublished,
		models.PostStatusArchived,
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		title := gofakeit.Sentence(4)
		if len(title) > 64 {
			title = title[:64]
		}

		picked := make([]models.Category, 0, 2)
		for _, idx := range rand.Perm(len(categories))[:1+rand.Intn(2)] {
			picked = append(picked, categories[idx])
		}

		post := &models.Post{
			Title:       title,
			Description: gofakeit.Paragraph(2, 4, 8, "\n"),
			Status:      statuses[rand.Intn(len(statuses))],
			UserID:      &author.ID,
			Categories:  picked,
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
			CreatedAt:   time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func seedComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		roots := make([]*models.Comment, 0, 4)
		for i := 0; i < rand.Intn(5); i++ {
			author := users[rand.Intn(len(users))]
			title := gofakeit.Sentence(2)
			if len(title) > 30 {
				title = title[:30]
			}
			comment := &models.Comment{
				PostID:  post.ID,
				UserID:  &author.ID,
				Title:   title,
				Caption: gofakeit.Sentence(12),
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
			roots = append(roots, comment)
		}

		// Reply chains stay one level deep.
		for _, root := range roots {
			for i := 0; i < rand.Intn(3); i++ {
				author := users[rand.Intn(len(users))]
				title := gofakeit.Sentence(2)
				if len(title) > 30 {
					title = title[:30]
				}
				reply := &models.Comment{
					PostID:    post.ID,
					UserID:    &author.ID,
					Title:     title,
					Caption:   gofakeit.Sentence(10),
					ReplyToID: &root.ID,
				}
				if err := db.Create(reply).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedLikes(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, idx := range rand.Perm(len(users))[:rand.Intn(len(users))] {
			like := &models.Like{
				UserID: users[idx].ID,
				PostID: post.ID,
			}
			if err := db.Create(like).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedSocialMedia(db *gorm.DB) error {
	links := []models.SocialMedia{
		{Title: "GitHub", Text: "Source code", Link: "https://github.com/quill", Color: "#181717", IconID: 1},
		{Title: "Twitter", Text: "Updates", Link: "https://twitter.com/quill", Color: "#1DA1F2", IconID: 2},
		{Title: "YouTube", Text: "Tutorials", Link: "https://youtube.com/@quill", Color: "#FF0000", IconID: 3},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

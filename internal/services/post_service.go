package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/isdelr/blogit-be/internal/models"
)

// PostServiceProvider defines the interface for post services.
type PostServiceProvider interface {
	GetAllPosts() ([]models.Post, error)
	GetPostByID(id string) (models.Post, error)
	CreatePost(title, content, authorEmail string) (models.Post, error)
	UpdatePost(id, callerEmail string, update models.PostUpdate) (models.Post, error)
	DeletePost(id, callerEmail string) error
}

// PostService provides business logic for post management, including
// the ownership policy: only the author of record may edit or delete a
// post. Reads are public and perform no identity checks.
type PostService struct {
	db *sql.DB
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{db: db}
}

// GetAllPosts retrieves every post, newest first.
func (s *PostService) GetAllPosts() ([]models.Post, error) {
	rows, err := s.db.Query("SELECT id, title, content, author, created_at, updated_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (models.Post, error) {
	var post models.Post
	row := s.db.QueryRow("SELECT id, title, content, author, created_at, updated_at FROM posts WHERE id = ?", id)
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Author, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Post{}, fmt.Errorf("post %s: %w", id, ErrNotFound)
		}
		return models.Post{}, err
	}
	return post, nil
}

// CreatePost creates a new post. The author is always the authenticated
// caller's email; it is never taken from client input.
func (s *PostService) CreatePost(title, content, authorEmail string) (models.Post, error) {
	if title == "" || content == "" {
		return models.Post{}, fmt.Errorf("title and content are required: %w", ErrValidation)
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Author:    authorEmail,
		CreatedAt: now,
		UpdatedAt: now,
	}

	stmt, err := s.db.Prepare("INSERT INTO posts(id, title, content, author, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Post{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(post.ID, post.Title, post.Content, post.Author, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// UpdatePost applies a partial edit to a post after verifying that the
// caller is its author. Unset fields retain their stored values; the
// author field never changes.
func (s *PostService) UpdatePost(id, callerEmail string, update models.PostUpdate) (models.Post, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return models.Post{}, err
	}
	if post.Author != callerEmail {
		return models.Post{}, fmt.Errorf("post %s is owned by another user: %w", id, ErrForbidden)
	}

	if update.Title != nil {
		if *update.Title == "" {
			return models.Post{}, fmt.Errorf("title cannot be empty: %w", ErrValidation)
		}
		post.Title = *update.Title
	}
	if update.Content != nil {
		if *update.Content == "" {
			return models.Post{}, fmt.Errorf("content cannot be empty: %w", ErrValidation)
		}
		post.Content = *update.Content
	}
	post.UpdatedAt = time.Now().UTC()

	_, err = s.db.Exec("UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?",
		post.Title, post.Content, post.UpdatedAt, post.ID)
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes a post after verifying that the caller is its author.
func (s *PostService) DeletePost(id, callerEmail string) error {
	post, err := s.GetPostByID(id)
	if err != nil {
		return err
	}
	if post.Author != callerEmail {
		return fmt.Errorf("post %s is owned by another user: %w", id, ErrForbidden)
	}

	_, err = s.db.Exec("DELETE FROM posts WHERE id = ?", id)
	return err
}

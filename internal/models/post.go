package models

import "time"

// Post represents a published blog entry. Author holds the creating
// user's email and never changes after creation.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostUpdate describes a partial edit of a post. A nil field means
// "leave unchanged"; a non-nil field replaces the stored value.
type PostUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

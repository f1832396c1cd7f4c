package models

import "time"

// PostingHistory records one delivery attempt for a post.
type PostingHistory struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	PostID       int64      `db:"post_id" json:"post_id"`
	Status       PostStatus `db:"status" json:"status"`
	ErrorMessage string     `db:"error_message" json:"error_message"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

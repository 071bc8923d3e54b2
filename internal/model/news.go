// File: internal/model/news.go
package model

import "time"

type NewsItem struct {
	ID        int       `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Date      time.Time `db:"date" json:"date"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	AuthorID  *int      `db:"author_id" json:"author_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewsInput 為新增或更新新聞時的欄位；nil 表示沿用預設值或原值
type NewsInput struct {
	Title    string
	Content  string
	Date     *time.Time
	IsActive *bool
	AuthorID *int
}

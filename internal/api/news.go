// File: internal/api/news.go
package api

import (
	"time"

	"sainik-college/internal/model"
)

// swagger:model api.NewsRequest
type NewsRequest struct {
	Title    string     `json:"title" validate:"required,max=255" example:"Annual Sports Day"`
	Content  string     `json:"content" validate:"required" example:"Sports day will be held on **Friday**."`
	Date     *time.Time `json:"date,omitempty"`
	IsActive *bool      `json:"is_active,omitempty" example:"true"`
}

// Input 轉成 store 使用的輸入，作者為目前登入者
func (r NewsRequest) Input(authorID int) model.NewsInput {
	in := model.NewsInput{Title: r.Title, Content: r.Content, Date: r.Date, IsActive: r.IsActive}
	if authorID > 0 {
		in.AuthorID = &authorID
	}
	return in
}

// swagger:model api.PublicNewsItem
type PublicNewsItem struct {
	ID          int       `json:"id" example:"1"`
	Title       string    `json:"title" example:"Annual Sports Day"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	Date        time.Time `json:"date"`
}

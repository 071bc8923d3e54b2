// File: internal/store/news.go
package store

import (
	"context"

	"sainik-college/internal/database"
	"sainik-college/internal/model"
)

const newsColumns = `id, title, content, date, is_active, author_id, created_at`

func scanNews(row interface{ Scan(...any) error }) (*model.NewsItem, error) {
	n := &model.NewsItem{}
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Content,
		&n.Date,
		&n.IsActive,
		&n.AuthorID,
		&n.CreatedAt,
	); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNews 依 date 由新到舊列出新聞；activeOnly 時只回傳 is_active 的項目
func ListNews(ctx context.Context, db database.DB, activeOnly bool) ([]model.NewsItem, error) {
	rows, err := db.Query(ctx,
		`SELECT `+newsColumns+`
		 FROM news_updates
		 WHERE ($1 = FALSE OR is_active)
		 ORDER BY date DESC, id DESC`,
		activeOnly,
	)
	if err != nil {
		return nil, wrapErr("ListNews", err)
	}
	defer rows.Close()

	items := []model.NewsItem{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, wrapErr("ListNews", err)
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListNews", err)
	}
	return items, nil
}

func GetNewsByID(ctx context.Context, db database.DB, id int) (*model.NewsItem, error) {
	row := db.QueryRow(ctx,
		`SELECT `+newsColumns+` FROM news_updates WHERE id = $1`,
		id,
	)
	n, err := scanNews(row)
	if err != nil {
		return nil, wrapErr("GetNewsByID", err)
	}
	return n, nil
}

func CreateNews(ctx context.Context, db database.DB, in model.NewsInput) (*model.NewsItem, error) {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	row := db.QueryRow(ctx,
		`INSERT INTO news_updates (title, content, date, is_active, author_id)
		 VALUES ($1, $2, COALESCE($3::timestamptz, NOW()), $4, $5)
		 RETURNING `+newsColumns,
		in.Title,
		in.Content,
		in.Date,
		active,
		in.AuthorID,
	)
	n, err := scanNews(row)
	if err != nil {
		return nil, wrapErr("CreateNews", err)
	}
	return n, nil
}

// UpdateNews 更新標題與內容；Date、IsActive 為 nil 時保留原值
func UpdateNews(ctx context.Context, db database.DB, id int, in model.NewsInput) (*model.NewsItem, error) {
	row := db.QueryRow(ctx,
		`UPDATE news_updates
		 SET title = $1,
		     content = $2,
		     date = COALESCE($3::timestamptz, date),
		     is_active = COALESCE($4::boolean, is_active)
		 WHERE id = $5
		 RETURNING `+newsColumns,
		in.Title,
		in.Content,
		in.Date,
		in.IsActive,
		id,
	)
	n, err := scanNews(row)
	if err != nil {
		return nil, wrapErr("UpdateNews", err)
	}
	return n, nil
}

func DeleteNews(ctx context.Context, db database.DB, id int) error {
	tag, err := db.Exec(ctx, `DELETE FROM news_updates WHERE id = $1`, id)
	if err != nil {
		return wrapErr("DeleteNews", err)
	}
	return expectOne("DeleteNews", tag)
}

// News 將新聞函式包成 service.NewsRepository
type News struct {
	DB database.DB
}

func NewNews(db database.DB) *News {
	return &News{DB: db}
}

func (s *News) List(ctx context.Context, activeOnly bool) ([]model.NewsItem, error) {
	return ListNews(ctx, s.DB, activeOnly)
}

func (s *News) Get(ctx context.Context, id int) (*model.NewsItem, error) {
	return GetNewsByID(ctx, s.DB, id)
}

func (s *News) Create(ctx context.Context, in model.NewsInput) (*model.NewsItem, error) {
	return CreateNews(ctx, s.DB, in)
}

func (s *News) Update(ctx context.Context, id int, in model.NewsInput) (*model.NewsItem, error) {
	return UpdateNews(ctx, s.DB, id, in)
}

func (s *News) Delete(ctx context.Context, id int) error {
	return DeleteNews(ctx, s.DB, id)
}

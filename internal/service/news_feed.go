// File: internal/service/news_feed.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sainik-college/internal/cache"
	"sainik-college/internal/model"
	"sainik-college/internal/worker"

	"github.com/redis/go-redis/v9"
)

// 快取清單以世代號分鍵：每次異動遞增 news:gen，
// 讀取端只寫入讀到的世代，舊世代的回填不會被新讀者看到
const newsGenKey = "news:gen"

func activeNewsKey(gen int64) string {
	return fmt.Sprintf("news:active:%d", gen)
}

// NewsRepository 為新聞公告的儲存介面
type NewsRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.NewsItem, error)
	Get(ctx context.Context, id int) (*model.NewsItem, error)
	Create(ctx context.Context, in model.NewsInput) (*model.NewsItem, error)
	Update(ctx context.Context, id int, in model.NewsInput) (*model.NewsItem, error)
	Delete(ctx context.Context, id int) error
}

// Logger 為 echo.Logger 的子集合
type Logger interface {
	Errorf(format string, args ...interface{})
}

// NewsFeed 負責新聞 CRUD，並以 Redis 快取公開的有效新聞清單。
// 後台異動後遞增世代並清除舊鍵，再交給 worker 重新預熱。
type NewsFeed struct {
	repo  NewsRepository
	cache cache.Cache
	pool  worker.Pool
	ttl   time.Duration
	log   Logger
}

func NewNewsFeed(repo NewsRepository, c cache.Cache, pool worker.Pool, ttl time.Duration, log Logger) *NewsFeed {
	return &NewsFeed{repo: repo, cache: c, pool: pool, ttl: ttl, log: log}
}

// Active 回傳 is_active 的新聞，優先讀取快取
func (f *NewsFeed) Active(ctx context.Context) ([]model.NewsItem, error) {
	if f.cache == nil {
		return f.repo.List(ctx, true)
	}
	gen, err := f.generation(ctx)
	if err != nil {
		f.errorf("news cache generation: %v", err)
		return f.repo.List(ctx, true)
	}
	raw, err := f.cache.Get(ctx, activeNewsKey(gen)).Bytes()
	if err == nil {
		var items []model.NewsItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return items, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		f.errorf("news cache get: %v", err)
	}
	return f.load(ctx, gen)
}

func (f *NewsFeed) generation(ctx context.Context) (int64, error) {
	gen, err := f.cache.Get(ctx, newsGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// load 讀取資料庫並寫入 gen 世代的快取
func (f *NewsFeed) load(ctx context.Context, gen int64) ([]model.NewsItem, error) {
	items, err := f.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(items); err == nil {
		if err := f.cache.Set(ctx, activeNewsKey(gen), raw, f.ttl).Err(); err != nil {
			f.errorf("news cache set: %v", err)
		}
	}
	return items, nil
}

// All 回傳全部新聞（含停用），供後台使用，不經快取
func (f *NewsFeed) All(ctx context.Context) ([]model.NewsItem, error) {
	return f.repo.List(ctx, false)
}

func (f *NewsFeed) Get(ctx context.Context, id int) (*model.NewsItem, error) {
	return f.repo.Get(ctx, id)
}

func (f *NewsFeed) Create(ctx context.Context, in model.NewsInput) (*model.NewsItem, error) {
	item, err := f.repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx)
	return item, nil
}

func (f *NewsFeed) Update(ctx context.Context, id int, in model.NewsInput) (*model.NewsItem, error) {
	item, err := f.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	f.invalidate(ctx)
	return item, nil
}

func (f *NewsFeed) Delete(ctx context.Context, id int) error {
	if err := f.repo.Delete(ctx, id); err != nil {
		return err
	}
	f.invalidate(ctx)
	return nil
}

func (f *NewsFeed) invalidate(ctx context.Context) {
	if f.cache == nil {
		return
	}
	gen, err := f.cache.Incr(ctx, newsGenKey).Result()
	if err != nil {
		f.errorf("news cache incr: %v", err)
		return
	}
	if err := f.cache.Del(ctx, activeNewsKey(gen-1)).Err(); err != nil {
		f.errorf("news cache del: %v", err)
	}
	if f.pool == nil {
		return
	}
	f.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		gen, err := f.generation(ctx)
		if err == nil {
			_, err = f.load(ctx, gen)
		}
		if err != nil {
			f.errorf("news cache rewarm: %v", err)
		}
	})
}

func (f *NewsFeed) errorf(format string, args ...interface{}) {
	if f.log != nil {
		f.log.Errorf(format, args...)
	}
}

// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config 為服務啟動時讀取一次的設定，之後以值傳入各元件
type Config struct {
	DatabaseURL   string        `yaml:"database_url"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	Port          string        `yaml:"port"`
	WorkerCount   int           `yaml:"worker_count"`
	StaticDir     string        `yaml:"static_dir"`
	LoginRate     float64       `yaml:"login_rate"`
	LoginBurst    int           `yaml:"login_burst"`
	NewsCacheTTL  time.Duration `yaml:"news_cache_ttl"`
	AdminUsername string        `yaml:"admin_username"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
	Debug         bool          `yaml:"debug"`
}

const minSecretLength = 16

var (
	loadDotenv = godotenv.Load
	readFile   = os.ReadFile
)

func defaults() Config {
	return Config{
		TokenTTL:     24 * time.Hour,
		Port:         "8080",
		WorkerCount:  1,
		StaticDir:    "public",
		LoginRate:    1,
		LoginBurst:   5,
		NewsCacheTTL: 60 * time.Second,
	}
}

// Load 依序套用預設值、CONFIG_FILE 指定的 YAML、環境變數（含 .env），後者覆蓋前者
func Load() (Config, error) {
	// .env 不存在時忽略
	_ = loadDotenv()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := readFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("讀取設定檔失敗: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("解析設定檔失敗: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("REDIS_ADDR", &cfg.RedisAddr)
	str("REDIS_PASSWORD", &cfg.RedisPassword)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("PORT", &cfg.Port)
	str("STATIC_DIR", &cfg.StaticDir)
	str("ADMIN_USERNAME", &cfg.AdminUsername)
	str("ADMIN_EMAIL", &cfg.AdminEmail)
	str("ADMIN_PASSWORD", &cfg.AdminPassword)

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("無效的 REDIS_DB: %q", v)
		}
		cfg.RedisDB = n
	}
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("無效的 WORKER_COUNT: %q", v)
		}
		cfg.WorkerCount = n
	}
	if v := os.Getenv("LOGIN_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("無效的 LOGIN_BURST: %q", v)
		}
		cfg.LoginBurst = n
	}
	if v := os.Getenv("LOGIN_RATE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("無效的 LOGIN_RATE: %q", v)
		}
		cfg.LoginRate = f
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return fmt.Errorf("無效的 TOKEN_TTL: %q", v)
		}
		cfg.TokenTTL = d
	}
	if v := os.Getenv("NEWS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("無效的 NEWS_CACHE_TTL: %q", v)
		}
		cfg.NewsCacheTTL = d
	}
	if v := os.Getenv("DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("無效的 DEBUG: %q", v)
		}
		cfg.Debug = b
	}
	return nil
}

// Validate 檢查必要欄位
func (c Config) Validate() error {
	switch {
	case c.DatabaseURL == "":
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	case c.RedisAddr == "":
		return fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	case c.JWTSecret == "":
		return fmt.Errorf("環境變數 JWT_SECRET 未設定")
	case !c.Debug && len(c.JWTSecret) < minSecretLength:
		return fmt.Errorf("JWT_SECRET 長度至少需 %d 字元", minSecretLength)
	case c.TokenTTL <= 0:
		return fmt.Errorf("TOKEN_TTL 必須大於 0")
	}
	return nil
}

// HasAdminBootstrap 是否設定了預設管理員
func (c Config) HasAdminBootstrap() bool {
	return c.AdminUsername != "" && c.AdminEmail != "" && c.AdminPassword != ""
}

// Addr 回傳 echo 監聽位址
func (c Config) Addr() string {
	return ":" + c.Port
}

// Package config は環境変数からのアプリケーション設定読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Rate Limit
	RateLimitGeneral int // req/min/クライアント

	// View
	EventsPageSize int // イベント一覧の1ページあたり行数

	// Authorization
	AllowedEmails    []string // 許可メールアドレス（小文字化済み）
	AllowedDomains   []string // 許可ドメイン（小文字化済み）
	RequiredTenantID string   // 空の場合はテナント制限なし

	// Seed
	SeedDemoData bool // 初回起動時にデモデータを投入するか
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.EventsPageSize = getEnvInt("EVENTS_PAGE_SIZE", 5)
	cfg.AllowedEmails = splitList(os.Getenv("ALLOWED_EMAILS"))
	cfg.AllowedDomains = splitList(os.Getenv("ALLOWED_DOMAINS"))
	cfg.RequiredTenantID = getEnvString("REQUIRE_TENANT_ID", "")
	cfg.SeedDemoData = getEnvBool("SEED_DEMO_DATA", false)

	return cfg, nil
}

// splitList はカンマ区切りリストをトリム・小文字化して分割する。
// 空要素は除外する。
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

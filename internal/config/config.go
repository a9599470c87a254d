// Package config は環境変数からアプリケーション設定を読み込む
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"FestivalMarket-App/internal/domain/model"
)

const devSecretKey = "dev-secret-key-change-in-production-12345"

// 利用可能なバックエンド
const (
	BackendMemory    = "memory"
	BackendFile      = "file"
	BackendRedis     = "redis"
	BackendPostgres  = "postgres"
	BackendSupabase  = "supabase"
	BackendFirestore = "firestore"
)

// Config はアプリケーション全体の設定を保持する
type Config struct {
	Port      string
	Env       string
	SecretKey string

	MapsAPIKey string
	APILimits  map[string]int

	SearchTerms          []string
	DefaultRadiusKm      float64
	MinRadiusKm          float64
	MaxRadiusKm          float64
	DefaultRouteRadiusKm float64

	HighwayValues       []string
	JunctionLimit       int
	MaxParallelSearches int
	OverpassURL         string
	HTTPTimeout         time.Duration

	SessionLifetime time.Duration
	ResultTTL       time.Duration

	QuotaBackend string
	UsageFile    string
	RedisAddr    string
	RedisDB      int
	DatabaseURL  string

	SessionBackend  string
	SupabaseURL     string
	SupabaseAnonKey string

	ResultBackend      string
	FirestoreProjectID string
}

// Load は .env を読み込んだうえで環境変数から設定を組み立てる
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .envファイルが見つかりません。システムの環境変数を使用します")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		Env:       getEnv("APP_ENV", "development"),
		SecretKey: getEnv("SECRET_KEY", ""),

		MapsAPIKey: getEnv("MAPS_API", ""),
		APILimits: map[string]int{
			model.APIPlaces:    getIntEnv("PLACES_API_LIMIT", 1000),
			model.APIGeocoding: getIntEnv("GEOCODING_API_LIMIT", 10000),
		},

		SearchTerms: getListEnv("SEARCH_TERMS", []string{
			"Rewe", "EDEKA", "Markant", "Kaufland",
			"Getränkemarkt", "Globus", "Trinkgut", "Marktkauf",
		}),
		DefaultRadiusKm:      getFloatEnv("DEFAULT_RADIUS_KM", 40),
		MinRadiusKm:          getFloatEnv("MIN_RADIUS_KM", 5),
		MaxRadiusKm:          getFloatEnv("MAX_RADIUS_KM", 100),
		DefaultRouteRadiusKm: getFloatEnv("DEFAULT_ROUTE_RADIUS_KM", 2),

		HighwayValues:       getListEnv("HIGHWAY_VALUES", []string{"motorway_link", "trunk_link"}),
		JunctionLimit:       getIntEnv("JUNCTION_LIMIT", 20),
		MaxParallelSearches: getIntEnv("PLACES_MAX_PARALLEL", 1),
		OverpassURL:         getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		HTTPTimeout:         time.Duration(getIntEnv("HTTP_TIMEOUT_SECONDS", 180)) * time.Second,

		SessionLifetime: time.Duration(getIntEnv("SESSION_LIFETIME_HOURS", 2)) * time.Hour,
		ResultTTL:       time.Duration(getIntEnv("RESULT_TTL_HOURS", 2)) * time.Hour,

		QuotaBackend: getEnv("QUOTA_BACKEND", BackendFile),
		UsageFile:    getEnv("USAGE_FILE", "api_usage.json"),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisDB:      getIntEnv("REDIS_DB", 0),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		SessionBackend:  getEnv("SESSION_BACKEND", BackendMemory),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),

		ResultBackend:      getEnv("RESULT_BACKEND", BackendMemory),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
	}

	if cfg.SecretKey == "" {
		log.Println("⚠️ SECRET_KEYが設定されていません。開発用キーを使用します")
		cfg.SecretKey = devSecretKey
	}

	return cfg
}

// IsProduction は本番モードかどうかを返す
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasMapsAPIKey はGoogle Maps APIキーが設定されているかを返す
func (c *Config) HasMapsAPIKey() bool {
	return c.MapsAPIKey != ""
}

// Validate は設定値の整合性をチェックする
func (c *Config) Validate() error {
	if c.MinRadiusKm <= 0 || c.MinRadiusKm > c.MaxRadiusKm {
		return fmt.Errorf("半径の範囲が不正です: min=%.1f max=%.1f", c.MinRadiusKm, c.MaxRadiusKm)
	}
	if c.DefaultRadiusKm < c.MinRadiusKm || c.DefaultRadiusKm > c.MaxRadiusKm {
		return fmt.Errorf("DEFAULT_RADIUS_KMが範囲外です: %.1f", c.DefaultRadiusKm)
	}
	if c.DefaultRouteRadiusKm <= 0 {
		return fmt.Errorf("DEFAULT_ROUTE_RADIUS_KMは正の値が必要です: %.1f", c.DefaultRouteRadiusKm)
	}
	if len(c.HighwayValues) == 0 {
		return fmt.Errorf("HIGHWAY_VALUESが空です")
	}

	switch c.QuotaBackend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("QUOTA_BACKEND=redis にはREDIS_ADDRが必要です")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("QUOTA_BACKEND=postgres にはDATABASE_URLが必要です")
		}
	default:
		return fmt.Errorf("未対応のQUOTA_BACKENDです: %s", c.QuotaBackend)
	}

	switch c.SessionBackend {
	case BackendMemory:
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseAnonKey == "" {
			return fmt.Errorf("SESSION_BACKEND=supabase にはSUPABASE_URLとSUPABASE_ANON_KEYが必要です")
		}
	default:
		return fmt.Errorf("未対応のSESSION_BACKENDです: %s", c.SessionBackend)
	}

	switch c.ResultBackend {
	case BackendMemory:
	case BackendFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("RESULT_BACKEND=firestore にはFIRESTORE_PROJECT_IDが必要です")
		}
	default:
		return fmt.Errorf("未対応のRESULT_BACKENDです: %s", c.ResultBackend)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("⚠️ %sの値が不正です (%s)。デフォルト値%dを使用します", key, value, defaultValue)
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("⚠️ %sの値が不正です (%s)。デフォルト値%.1fを使用します", key, value, defaultValue)
	}
	return defaultValue
}

// getListEnv はカンマ区切りの環境変数をスライスとして読み込む
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

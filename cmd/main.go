package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/config"
	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/domain/service"
	"FestivalMarket-App/internal/handler"
	"FestivalMarket-App/internal/infrastructure/cache"
	"FestivalMarket-App/internal/infrastructure/database"
	"FestivalMarket-App/internal/infrastructure/export"
	"FestivalMarket-App/internal/infrastructure/firestore"
	"FestivalMarket-App/internal/infrastructure/maps"
	"FestivalMarket-App/internal/infrastructure/osm"
	"FestivalMarket-App/internal/infrastructure/render"
	repoImpl "FestivalMarket-App/internal/repository"
	"FestivalMarket-App/internal/usecase"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ 設定が不正です: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if !cfg.HasMapsAPIKey() {
		log.Println("⚠️ MAPS_APIが設定されていません。ジオコーディングと地図生成は利用できません")
	}

	ctx := context.Background()

	quotaRepo, closeQuota, err := newQuotaRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ 利用回数ストアの初期化に失敗: %v", err)
	}
	defer closeQuota()

	sessionRepo, err := newSessionRepository(cfg)
	if err != nil {
		log.Fatalf("❌ セッションストアの初期化に失敗: %v", err)
	}

	resultRepo, closeResults, err := newMapResultRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ 結果ストアの初期化に失敗: %v", err)
	}
	defer closeResults()

	// 外部API
	roads := repoImpl.NewOverpassRoadNetworkRepository(osm.NewClient(cfg.OverpassURL, cfg.HTTPTimeout))
	places := maps.NewGooglePlacesProvider(cfg.MapsAPIKey)
	geocoder := maps.NewGoogleGeocodingProvider(cfg.MapsAPIKey)

	// ドメインサービス
	quota := service.NewQuotaService(quotaRepo, cfg.APILimits)
	generator := service.NewMapGenerationService(roads, places, quota, service.MapGenerationOptions{
		HighwayValues:       cfg.HighwayValues,
		JunctionLimit:       cfg.JunctionLimit,
		HasAPIKey:           cfg.HasMapsAPIKey(),
		MaxParallelSearches: cfg.MaxParallelSearches,
	})

	// ユースケース
	mapUseCase := usecase.NewMapGenerationUseCase(generator, render.NewLeafletRenderer(), resultRepo, sessionRepo, usecase.MapRequestLimits{
		DefaultTerms:         cfg.SearchTerms,
		DefaultRadiusKm:      cfg.DefaultRadiusKm,
		MinRadiusKm:          cfg.MinRadiusKm,
		MaxRadiusKm:          cfg.MaxRadiusKm,
		DefaultRouteRadiusKm: cfg.DefaultRouteRadiusKm,
	})
	exportUseCase := usecase.NewExportUseCase(resultRepo, sessionRepo, export.NewExcelExporter())

	r := gin.Default()
	handler.RegisterRoutes(r, &handler.Handlers{
		Session:     handler.NewSessionMiddleware(cfg.SecretKey, cfg.SessionLifetime, cfg.IsProduction()),
		Geocode:     handler.NewGeocodeHandler(usecase.NewGeocodeUseCase(geocoder, quota, cfg.HasMapsAPIKey())),
		Map:         handler.NewMapHandler(mapUseCase, exportUseCase),
		SearchTerms: handler.NewSearchTermsHandler(usecase.NewSearchTermsUseCase(sessionRepo, cfg.SearchTerms)),
		Stats:       handler.NewStatsHandler(usecase.NewStatsUseCase(quota)),
	})

	log.Printf("🚀 FestivalMarket-App サーバー起動 :%s (env=%s, quota=%s, session=%s, result=%s)",
		cfg.Port, cfg.Env, cfg.QuotaBackend, cfg.SessionBackend, cfg.ResultBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ サーバーの起動に失敗: %v", err)
	}
}

func newQuotaRepository(ctx context.Context, cfg *config.Config) (repository.QuotaRepository, func(), error) {
	switch cfg.QuotaBackend {
	case config.BackendRedis:
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return repoImpl.NewRedisQuotaRepository(client), func() { client.Close() }, nil
	case config.BackendPostgres:
		client, err := database.NewPostgreSQLClientWithRetry(cfg.DatabaseURL, 5, 2*time.Second)
		if err != nil {
			return nil, nil, err
		}
		repo, err := repoImpl.NewPostgresQuotaRepository(ctx, client)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		return repo, func() { client.Close() }, nil
	case config.BackendMemory:
		return repoImpl.NewMemoryQuotaRepository(), func() {}, nil
	case config.BackendFile:
		return repoImpl.NewFileQuotaRepository(cfg.UsageFile), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("未対応のQUOTA_BACKENDです: %s", cfg.QuotaBackend)
	}
}

func newSessionRepository(cfg *config.Config) (repository.SessionRepository, error) {
	switch cfg.SessionBackend {
	case config.BackendSupabase:
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
		if err != nil {
			return nil, err
		}
		if err := client.HealthCheck(); err != nil {
			log.Printf("⚠️ Supabaseヘルスチェック失敗: %v", err)
		}
		return repoImpl.NewSupabaseSessionRepository(client), nil
	case config.BackendMemory:
		return repoImpl.NewMemorySessionRepository(cfg.SessionLifetime), nil
	default:
		return nil, fmt.Errorf("未対応のSESSION_BACKENDです: %s", cfg.SessionBackend)
	}
}

func newMapResultRepository(ctx context.Context, cfg *config.Config) (repository.MapResultRepository, func(), error) {
	switch cfg.ResultBackend {
	case config.BackendFirestore:
		client, err := firestore.NewFirestoreClient(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, nil, err
		}
		return repoImpl.NewFirestoreMapResultRepository(client.GetClient(), cfg.ResultTTL), func() { client.Close() }, nil
	case config.BackendMemory:
		return repoImpl.NewMemoryMapResultRepository(cfg.ResultTTL), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("未対応のRESULT_BACKENDです: %s", cfg.ResultBackend)
	}
}

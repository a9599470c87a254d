package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

const monthLayout = "2006-01"

// QuotaService 外部APIの月間利用回数を管理する
type QuotaService struct {
	repo   repository.QuotaRepository
	limits map[string]int
	now    func() time.Time
}

// NewQuotaService 新しいQuotaServiceを作成
func NewQuotaService(repo repository.QuotaRepository, limits map[string]int) *QuotaService {
	return &QuotaService{repo: repo, limits: limits, now: time.Now}
}

// WithClock テスト用に現在時刻の取得方法を差し替える
func (s *QuotaService) WithClock(now func() time.Time) *QuotaService {
	s.now = now
	return s
}

// CurrentMonth "YYYY-MM"形式の今月
func (s *QuotaService) CurrentMonth() string {
	return s.now().Format(monthLayout)
}

// Check increment回の呼び出しが今月の上限内に収まるかを確認する
// 上限が設定されていないAPI種別は常に拒否する
func (s *QuotaService) Check(ctx context.Context, apiType string, increment int) (*model.QuotaStatus, error) {
	limit, ok := s.limits[apiType]
	if !ok {
		return &model.QuotaStatus{Allowed: false}, nil
	}

	current, err := s.repo.GetUsage(ctx, s.CurrentMonth(), apiType)
	if err != nil {
		return nil, fmt.Errorf("API利用回数の取得に失敗: %w", err)
	}

	return &model.QuotaStatus{
		Allowed:      current+increment <= limit,
		CurrentUsage: current,
		Remaining:    limit - current,
	}, nil
}

// Ensure 上限を超える場合は model.ErrQuotaExceeded を返す
func (s *QuotaService) Ensure(ctx context.Context, apiType string, increment int) error {
	status, err := s.Check(ctx, apiType, increment)
	if err != nil {
		return err
	}
	if !status.Allowed {
		return fmt.Errorf("%w: %s (%d/%d)", model.ErrQuotaExceeded, apiType, status.CurrentUsage, s.limits[apiType])
	}
	return nil
}

// Record 利用回数を加算する（上限が設定されていないAPI種別は記録しない）
func (s *QuotaService) Record(ctx context.Context, apiType string, count int) error {
	if _, ok := s.limits[apiType]; !ok {
		return nil
	}
	if _, err := s.repo.Increment(ctx, s.CurrentMonth(), apiType, count); err != nil {
		return fmt.Errorf("API利用回数の記録に失敗: %w", err)
	}
	return nil
}

// Stats 今月の利用状況
func (s *QuotaService) Stats(ctx context.Context) (*model.UsageStats, error) {
	month := s.CurrentMonth()
	stats := &model.UsageStats{
		CurrentMonth: month,
		APIs:         make(map[string]model.APIUsage, len(s.limits)),
	}

	apiTypes := make([]string, 0, len(s.limits))
	for apiType := range s.limits {
		apiTypes = append(apiTypes, apiType)
	}
	sort.Strings(apiTypes)

	for _, apiType := range apiTypes {
		maxRequests := s.limits[apiType]
		current, err := s.repo.GetUsage(ctx, month, apiType)
		if err != nil {
			return nil, fmt.Errorf("API利用回数の取得に失敗 (%s): %w", apiType, err)
		}
		percent := 0.0
		if maxRequests > 0 {
			percent = math.Round(float64(current)/float64(maxRequests)*1000) / 10
		}
		stats.APIs[apiType] = model.APIUsage{
			CurrentUsage: current,
			MaxRequests:  maxRequests,
			Remaining:    maxRequests - current,
			UsagePercent: percent,
		}
	}
	return stats, nil
}

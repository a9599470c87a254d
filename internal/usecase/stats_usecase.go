package usecase

import (
	"context"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/service"
)

// StatsUseCase 今月のAPI利用状況
type StatsUseCase interface {
	Stats(ctx context.Context) (*model.UsageStats, error)
}

type statsUseCaseImpl struct {
	quota *service.QuotaService
}

func NewStatsUseCase(quota *service.QuotaService) StatsUseCase {
	return &statsUseCaseImpl{quota: quota}
}

func (u *statsUseCaseImpl) Stats(ctx context.Context) (*model.UsageStats, error) {
	return u.quota.Stats(ctx)
}

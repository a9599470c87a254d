package usecase

import (
	"context"
	"log"
	"strings"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/domain/service"
)

// GeocodeUseCase 住所から会場の座標を求める
type GeocodeUseCase interface {
	Geocode(ctx context.Context, address string) (*model.GeocodeResult, error)
}

type geocodeUseCaseImpl struct {
	geocoder  repository.GeocodingRepository
	quota     *service.QuotaService
	hasAPIKey bool
}

// NewGeocodeUseCase 新しいGeocodeUseCaseを作成
func NewGeocodeUseCase(geocoder repository.GeocodingRepository, quota *service.QuotaService, hasAPIKey bool) GeocodeUseCase {
	return &geocodeUseCaseImpl{
		geocoder:  geocoder,
		quota:     quota,
		hasAPIKey: hasAPIKey,
	}
}

// Geocode 利用回数はステータスOKの場合のみ記録する
// 通信エラーはエラーにせず、ステータス"ERROR"の結果として返す
func (u *geocodeUseCaseImpl) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	if !u.hasAPIKey {
		return nil, model.ErrNoAPIKey
	}
	if strings.TrimSpace(address) == "" {
		return nil, &model.ValidationError{Field: "address", Message: "Adresse erforderlich"}
	}
	if err := u.quota.Ensure(ctx, model.APIGeocoding, 1); err != nil {
		return nil, err
	}

	result, err := u.geocoder.Geocode(ctx, address)
	if err != nil {
		log.Printf("❌ ジオコーディング失敗: %v", err)
		return &model.GeocodeResult{Status: "ERROR", Error: err.Error()}, nil
	}

	if result.IsOK() {
		if err := u.quota.Record(ctx, model.APIGeocoding, 1); err != nil {
			log.Printf("⚠️ ジオコーディングの利用回数を記録できませんでした: %v", err)
		}
		log.Printf("📍 ジオコーディング成功: %s -> (%.5f, %.5f)", address, *result.Lat, *result.Lng)
	} else {
		log.Printf("⚠️ ジオコーディング結果なし: %s (status=%s)", address, result.Status)
	}
	return result, nil
}

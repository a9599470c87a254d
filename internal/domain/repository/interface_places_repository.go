package repository

import (
	"context"

	"FestivalMarket-App/internal/domain/model"
)

// PlacesRepository キーワードによる周辺スーパーマーケット検索
type PlacesRepository interface {
	// SearchNearby 各POIのSearchKeywordにはkeywordが入る
	SearchNearby(ctx context.Context, center model.LatLng, radiusM int, keyword string) ([]model.POI, error)
}

// GeocodingRepository 住所から座標への変換
type GeocodingRepository interface {
	// Geocode 通信・パースの失敗はerror、それ以外のステータスはGeocodeResult.Statusで返す
	Geocode(ctx context.Context, address string) (*model.GeocodeResult, error)
}

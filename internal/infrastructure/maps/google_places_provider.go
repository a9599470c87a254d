package maps

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"FestivalMarket-App/internal/domain/model"
)

const placesServiceName = "Google Places"

// GooglePlacesProvider はGoogle Places Nearby Searchを使用したマーケット検索の実装
type GooglePlacesProvider struct {
	client googleClient
}

// NewGooglePlacesProvider は新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string) *GooglePlacesProvider {
	return &GooglePlacesProvider{client: newGoogleClient(apiKey)}
}

// WithBaseURL APIのベースURLを差し替える（テスト用）
func (g *GooglePlacesProvider) WithBaseURL(baseURL string) *GooglePlacesProvider {
	g.client.baseURL = baseURL
	return g
}

// SearchNearby はtype=supermarketでkeywordに一致する店舗を検索する
func (g *GooglePlacesProvider) SearchNearby(ctx context.Context, center model.LatLng, radiusM int, keyword string) ([]model.POI, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Lat, center.Lng))
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("keyword", keyword)
	params.Set("type", "supermarket")

	var apiResp placesResponse
	if err := g.client.getJSON(ctx, "/place/nearbysearch/json", params, &apiResp); err != nil {
		return nil, model.NewExternalServiceError(placesServiceName, err)
	}

	switch apiResp.Status {
	case statusOK:
	case statusZeroResults:
		return nil, nil
	default:
		return nil, &model.ExternalServiceError{Service: placesServiceName, Status: apiResp.Status}
	}

	// ドメインモデルに変換して返す
	pois := make([]model.POI, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		pois = append(pois, model.POI{
			Name:          r.Name,
			Vicinity:      r.Vicinity,
			Rating:        r.Rating,
			Location:      model.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			SearchKeyword: keyword,
		})
	}
	return pois, nil
}

type placesResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Rating   *float64 `json:"rating"`
	Geometry geometry `json:"geometry"`
}

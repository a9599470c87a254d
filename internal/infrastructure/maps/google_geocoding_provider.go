package maps

import (
	"context"
	"net/url"

	"FestivalMarket-App/internal/domain/model"
)

const geocodingServiceName = "Google Geocoding"

// GoogleGeocodingProvider はGoogle Geocoding APIを使用した住所検索の実装
type GoogleGeocodingProvider struct {
	client   googleClient
	language string
}

// NewGoogleGeocodingProvider は新しいプロバイダを生成する
func NewGoogleGeocodingProvider(apiKey string) *GoogleGeocodingProvider {
	return &GoogleGeocodingProvider{client: newGoogleClient(apiKey), language: "de"}
}

// WithBaseURL APIのベースURLを差し替える（テスト用）
func (g *GoogleGeocodingProvider) WithBaseURL(baseURL string) *GoogleGeocodingProvider {
	g.client.baseURL = baseURL
	return g
}

// Geocode は住所を座標に変換する
// OK以外のステータスは座標なしの結果として返す
func (g *GoogleGeocodingProvider) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("language", g.language)

	var apiResp geocodeResponse
	if err := g.client.getJSON(ctx, "/geocode/json", params, &apiResp); err != nil {
		return nil, model.NewExternalServiceError(geocodingServiceName, err)
	}

	if apiResp.Status != statusOK || len(apiResp.Results) == 0 {
		return &model.GeocodeResult{Status: apiResp.Status}, nil
	}

	first := apiResp.Results[0]
	lat, lng := first.Geometry.Location.Lat, first.Geometry.Location.Lng
	formatted := first.FormattedAddress
	return &model.GeocodeResult{
		Lat:              &lat,
		Lng:              &lng,
		FormattedAddress: &formatted,
		Status:           statusOK,
	}, nil
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
	Status  string          `json:"status"`
}

type geocodeResult struct {
	FormattedAddress string   `json:"formatted_address"`
	Geometry         geometry `json:"geometry"`
}

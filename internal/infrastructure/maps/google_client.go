// Package maps はGoogle Maps Platform (Places / Geocoding) のHTTPクライアントを提供する
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://maps.googleapis.com/maps/api"
	defaultTimeout = 10 * time.Second

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// googleClient Places / Geocodingで共通のリクエスト処理
type googleClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newGoogleClient(apiKey string) googleClient {
	return googleClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// getJSON path にクエリを付けてGETし、レスポンスをoutにデコードする
func (c *googleClient) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("JSONのパースに失敗: %w", err)
	}
	return nil
}

// --- Google Maps APIのレスポンスをパースするための構造体 ---

type geometry struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}

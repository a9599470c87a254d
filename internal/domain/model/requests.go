package model

// MapRequest POST /api/generate_map のリクエスト
type MapRequest struct {
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	Radius        *float64 `json:"radius"`         // km
	RouteRadius   *float64 `json:"route_radius"`   // km
	SelectedTerms []string `json:"selected_terms"` // nullの場合はセッションの検索語を使う
}

// MapResponse POST /api/generate_map のレスポンス
type MapResponse struct {
	Map          string           `json:"map"`
	ResultID     string           `json:"result_id"`
	Directions   []Direction      `json:"directions"`
	Skipped      []RoutingSkipped `json:"skipped"`
	MarketsCount int              `json:"markets_count"`
}

// GeocodeRequest POST /api/geocode のリクエスト
type GeocodeRequest struct {
	Address string `json:"address"`
}

// GeocodeResult ジオコーディング結果（失敗時は座標がnil）
type GeocodeResult struct {
	Lat              *float64 `json:"lat"`
	Lng              *float64 `json:"lng"`
	FormattedAddress *string  `json:"formatted_address"`
	Status           string   `json:"status"`
	Error            string   `json:"error,omitempty"`
}

// IsOK ジオコーディングが成功したかどうか
func (g *GeocodeResult) IsOK() bool {
	return g != nil && g.Status == "OK" && g.Lat != nil && g.Lng != nil
}

// SearchTermRequest POST /api/search_terms のリクエスト
type SearchTermRequest struct {
	Term *string `json:"term"`
}

// SearchTermsResponse 検索語操作のレスポンス
type SearchTermsResponse struct {
	Success     bool     `json:"success,omitempty"`
	Message     string   `json:"message,omitempty"`
	SearchTerms []string `json:"search_terms"`
}

// Session セッションごとの状態
type Session struct {
	ID           string   `json:"session_id"`
	SearchTerms  []string `json:"search_terms"`
	LastResultID string   `json:"last_result_id"`
}

// APIUsage 1つのAPI種別の今月の利用状況
type APIUsage struct {
	CurrentUsage int     `json:"current_usage"`
	MaxRequests  int     `json:"max_requests"`
	Remaining    int     `json:"remaining"`
	UsagePercent float64 `json:"usage_percent"`
}

// UsageStats GET /api/stats のレスポンス
type UsageStats struct {
	CurrentMonth string              `json:"current_month"`
	APIs         map[string]APIUsage `json:"apis"`
}

// QuotaStatus クォータ確認の結果
type QuotaStatus struct {
	Allowed      bool
	CurrentUsage int
	Remaining    int
}

package model

import (
	"time"

	"github.com/paulmach/orb"
)

// SearchArea 会場を中心とした検索円（WGS84のポリゴン）
type SearchArea struct {
	Venue    LatLng
	RadiusKm float64
	Disk     orb.Polygon
}

// EntryCandidate 高速道路の出入口候補
type EntryCandidate struct {
	Location   LatLng    `json:"location"`
	ConnType   string    `json:"conn_type"`        // motorway_link / trunk_link / network_junction
	DistanceKm float64   `json:"festival_dist_km"` // メルカトル図法上の会場からの直線距離
	Bearing    float64   `json:"bearing"`          // 0〜360度、北=0で時計回り
	Direction  Direction `json:"direction"`
}

// RouteCorridor 会場から出入口までの最短経路と、それをバッファしたコリドー
type RouteCorridor struct {
	Direction Direction
	Entry     EntryCandidate
	Route     orb.LineString   // WGS84の経路線（会場側から順）
	Polygon   orb.MultiPolygon // WGS84のコリドーポリゴン
	RadiusM   float64
	LengthM   float64 // 経路の道路距離

	// RouteMercator は包含判定に使うメルカトル座標の経路線
	RouteMercator orb.LineString `json:"-"`
}

// CorridorMatch コリドーとその内側にあるPOI
type CorridorMatch struct {
	Corridor RouteCorridor
	Markets  []POI
}

// RoutingSkipped 経路探索に失敗して省略された方位（致命的ではない）
type RoutingSkipped struct {
	Direction Direction `json:"direction" firestore:"direction"`
	Reason    string    `json:"reason" firestore:"reason"`
}

func (r RoutingSkipped) Error() string {
	return "Route " + string(r.Direction) + " übersprungen: " + r.Reason
}

// MapGenerationInput 地図生成パイプラインの入力
type MapGenerationInput struct {
	Venue         LatLng
	RadiusKm      float64
	RouteRadiusKm float64
	SearchTerms   []string
}

// MapResult 1回の地図生成リクエストの結果（リクエストごとに新規作成）
type MapResult struct {
	Input      MapGenerationInput
	Area       SearchArea
	Candidates []EntryCandidate // 全出入口候補
	Selected   []EntryCandidate // 方位ごとに1件
	Corridors  []CorridorMatch
	Skipped    []RoutingSkipped
	CreatedAt  time.Time
}

// Directions 経路が得られた方位の一覧
func (r *MapResult) Directions() []Direction {
	dirs := make([]Direction, 0, len(r.Corridors))
	for _, match := range r.Corridors {
		dirs = append(dirs, match.Corridor.Direction)
	}
	return dirs
}

// ExportRows 全コリドーの一致POIを出力行として返す（重複はそのまま）
func (r *MapResult) ExportRows() []ExportRow {
	var rows []ExportRow
	for _, match := range r.Corridors {
		for i := range match.Markets {
			rows = append(rows, match.Markets[i].ToExportRow())
		}
	}
	return rows
}

// MarketsCount 表示されるマーカー数（コリドー重複分も数える）
func (r *MapResult) MarketsCount() int {
	count := 0
	for _, match := range r.Corridors {
		count += len(match.Markets)
	}
	return count
}

// MapResultSnapshot エクスポートのために保存する結果
type MapResultSnapshot struct {
	ID            string           `json:"id"`
	SessionID     string           `json:"session_id"`
	Venue         LatLng           `json:"venue"`
	RadiusKm      float64          `json:"radius_km"`
	RouteRadiusKm float64          `json:"route_radius_km"`
	Directions    []Direction      `json:"directions"`
	Skipped       []RoutingSkipped `json:"skipped"`
	Markets       []ExportRow      `json:"markets"`
	GeoJSON       string           `json:"geojson"`
	CreatedAt     time.Time        `json:"created_at"`
}

// FirestoreMapResult Firestoreに保存するための構造体
type FirestoreMapResult struct {
	SessionID     string           `firestore:"session_id"`
	Venue         LatLng           `firestore:"venue"`
	RadiusKm      float64          `firestore:"radius_km"`
	RouteRadiusKm float64          `firestore:"route_radius_km"`
	Directions    []string         `firestore:"directions"`
	Skipped       []RoutingSkipped `firestore:"skipped"`
	Markets       []ExportRow      `firestore:"markets"`
	GeoJSON       string           `firestore:"geojson"`
	CreatedAt     time.Time        `firestore:"created_at"`
	ExpireAt      time.Time        `firestore:"expireAt"`
}

// ToFirestoreMapResult TTL付きのFirestore用構造体に変換
func (s *MapResultSnapshot) ToFirestoreMapResult(ttl time.Duration) *FirestoreMapResult {
	dirs := make([]string, len(s.Directions))
	for i, d := range s.Directions {
		dirs[i] = string(d)
	}
	return &FirestoreMapResult{
		SessionID:     s.SessionID,
		Venue:         s.Venue,
		RadiusKm:      s.RadiusKm,
		RouteRadiusKm: s.RouteRadiusKm,
		Directions:    dirs,
		Skipped:       s.Skipped,
		Markets:       s.Markets,
		GeoJSON:       s.GeoJSON,
		CreatedAt:     s.CreatedAt,
		ExpireAt:      s.CreatedAt.Add(ttl),
	}
}

// ToSnapshot Firestoreのデータをスナップショットに戻す
func (f *FirestoreMapResult) ToSnapshot(id string) *MapResultSnapshot {
	dirs := make([]Direction, len(f.Directions))
	for i, d := range f.Directions {
		dirs[i] = Direction(d)
	}
	return &MapResultSnapshot{
		ID:            id,
		SessionID:     f.SessionID,
		Venue:         f.Venue,
		RadiusKm:      f.RadiusKm,
		RouteRadiusKm: f.RouteRadiusKm,
		Directions:    dirs,
		Skipped:       f.Skipped,
		Markets:       f.Markets,
		GeoJSON:       f.GeoJSON,
		CreatedAt:     f.CreatedAt,
	}
}

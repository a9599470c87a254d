package model

import "github.com/paulmach/orb"

// LatLng 緯度経度を表す基本的な型
type LatLng struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

// Point LatLngをorb.Point ([lng, lat]) に変換
func (l LatLng) Point() orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// LatLngFromPoint orb.Point ([lng, lat]) からLatLngを作成
func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}

// POI Places検索で見つかったスーパーマーケット
type POI struct {
	Name          string   `json:"name"`
	Vicinity      string   `json:"vicinity"`
	Rating        *float64 `json:"rating,omitempty"` // 評価なしの場合はnil
	Location      LatLng   `json:"location"`
	SearchKeyword string   `json:"search_keyword"` // このPOIを見つけた検索語
}

// RatingText ポップアップ表示用の評価文字列
func (p *POI) RatingText() string {
	if p.Rating == nil {
		return "N/A"
	}
	return formatRating(*p.Rating)
}

// ExportRow Excel出力用に平坦化したPOI
type ExportRow struct {
	Name          string  `json:"name" firestore:"name"`
	Vicinity      string  `json:"vicinity" firestore:"vicinity"`
	SearchKeyword string  `json:"search_keyword" firestore:"search_keyword"`
	Lat           float64 `json:"lat" firestore:"lat"`
	Lng           float64 `json:"lng" firestore:"lng"`
}

const (
	unknownName     = "Unbekannt"
	unknownVicinity = "Keine Adresse verfügbar"
	unknownKeyword  = "Unbekannt"
)

// ToExportRow POIを出力行に変換する（欠損値はデフォルト文字列で埋める）
func (p *POI) ToExportRow() ExportRow {
	row := ExportRow{
		Name:          p.Name,
		Vicinity:      p.Vicinity,
		SearchKeyword: p.SearchKeyword,
		Lat:           p.Location.Lat,
		Lng:           p.Location.Lng,
	}
	if row.Name == "" {
		row.Name = unknownName
	}
	if row.Vicinity == "" {
		row.Vicinity = unknownVicinity
	}
	if row.SearchKeyword == "" {
		row.SearchKeyword = unknownKeyword
	}
	return row
}

// DedupKey (name, vicinity) の組で重複判定するためのキー
func (r ExportRow) DedupKey() [2]string {
	return [2]string{r.Name, r.Vicinity}
}

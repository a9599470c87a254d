package model

import "strconv"

// Direction 8方位のいずれか
type Direction string

// 方位の定数
const (
	DirectionN  Direction = "N"
	DirectionNE Direction = "NE"
	DirectionE  Direction = "E"
	DirectionSE Direction = "SE"
	DirectionS  Direction = "S"
	DirectionSW Direction = "SW"
	DirectionW  Direction = "W"
	DirectionNW Direction = "NW"
)

// API種別（利用回数管理のキー）
const (
	APIPlaces    = "places"
	APIGeocoding = "geocoding"
)

// ConnTypeNetworkJunction 高速道路ランプが見つからない場合の交差点ノード
const ConnTypeNetworkJunction = "network_junction"

// AllDirections 北から時計回りの8方位（出力順もこの順）
var AllDirections = []Direction{
	DirectionN,
	DirectionNE,
	DirectionE,
	DirectionSE,
	DirectionS,
	DirectionSW,
	DirectionW,
	DirectionNW,
}

// DirectionColorMap 方位ごとの地図表示色
var DirectionColorMap = map[Direction]string{
	DirectionN:  "darkblue",
	DirectionNE: "blue",
	DirectionE:  "cadetblue",
	DirectionSE: "green",
	DirectionS:  "darkgreen",
	DirectionSW: "orange",
	DirectionW:  "red",
	DirectionNW: "darkred",
}

// Color 方位に対応する色を取得する
func (d Direction) Color() string {
	if color, ok := DirectionColorMap[d]; ok {
		return color
	}
	return "gray" // 未知の方位
}

// Index AllDirections内の位置を返す（未知の方位は-1）
func (d Direction) Index() int {
	for i, dir := range AllDirections {
		if dir == d {
			return i
		}
	}
	return -1
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

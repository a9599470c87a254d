package helper

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"FestivalMarket-App/internal/domain/model"
)

// 円を近似する頂点数
const (
	circleSegments = 64
	arcSegments    = circleSegments / 2
	octantWidthDeg = 45.0
)

// Bearing は2地点間の初期方位角を [0, 360) の度で返す
func Bearing(from, to model.LatLng) float64 {
	b := math.Mod(geo.Bearing(from.Point(), to.Point())+360, 360)
	if b >= 360 {
		return 0
	}
	return b
}

// BearingToDirection は方位角を8方位に変換する
// 各方位は中心±22.5度の半開区間 [下限, 上限) をとる
func BearingToDirection(bearing float64) model.Direction {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	for i, dir := range model.AllDirections[1:] {
		lower := octantWidthDeg/2 + float64(i)*octantWidthDeg
		if b >= lower && b < lower+octantWidthDeg {
			return dir
		}
	}
	// 337.5度以上と22.5度未満は北
	return model.DirectionN
}

// ToMercator はWGS84の点をWebメルカトル (EPSG:3857, メートル) に投影する
func ToMercator(p orb.Point) orb.Point {
	return project.WGS84.ToMercator(p)
}

// ToWGS84 はWebメルカトルの点をWGS84に戻す
func ToWGS84(p orb.Point) orb.Point {
	return project.Mercator.ToWGS84(p)
}

// LineStringToMercator は線を投影する（元の線は変更しない）
func LineStringToMercator(ls orb.LineString) orb.LineString {
	return project.LineString(ls.Clone(), project.WGS84.ToMercator)
}

// PolygonToWGS84 はメルカトルのポリゴンをWGS84に戻す（元のポリゴンは変更しない）
func PolygonToWGS84(p orb.Polygon) orb.Polygon {
	return project.Polygon(p.Clone(), project.Mercator.ToWGS84)
}

// MultiPolygonToWGS84 はメルカトルのマルチポリゴンをWGS84に戻す
func MultiPolygonToWGS84(mp orb.MultiPolygon) orb.MultiPolygon {
	return project.MultiPolygon(mp.Clone(), project.Mercator.ToWGS84)
}

// MercatorDistanceKm はメルカトル座標上の直線距離 (km)
// バッファ処理と同じ座標系で測るため大圏距離は使わない
func MercatorDistanceKm(a, b model.LatLng) float64 {
	return planar.Distance(ToMercator(a.Point()), ToMercator(b.Point())) / 1000.0
}

// DiskPolygon は会場を中心とした半径radiusKmの円をメルカトル上で作り、WGS84で返す
func DiskPolygon(venue model.LatLng, radiusKm float64) orb.Polygon {
	center := ToMercator(venue.Point())
	ring := circleRing(center, radiusKm*1000, circleSegments)
	return PolygonToWGS84(orb.Polygon{ring})
}

// BufferLineString はメルカトル座標の線を半径radiusMでバッファする
// 各区間のカプセル形状の集合として返す（和集合は取らない）
func BufferLineString(line orb.LineString, radiusM float64) orb.MultiPolygon {
	if len(line) == 0 {
		return nil
	}
	if len(line) == 1 {
		return orb.MultiPolygon{{circleRing(line[0], radiusM, circleSegments)}}
	}

	mp := make(orb.MultiPolygon, 0, len(line)-1)
	for i := 0; i < len(line)-1; i++ {
		mp = append(mp, orb.Polygon{segmentCapsule(line[i], line[i+1], radiusM)})
	}
	return mp
}

// CorridorContains はPOIがコリドー内（境界を含む）にあるかを判定する
// 経路線からのメルカトル距離がバッファ半径以下なら内側とみなす
func CorridorContains(corridor *model.RouteCorridor, p model.LatLng) bool {
	if len(corridor.RouteMercator) == 0 {
		return false
	}
	return planar.DistanceFrom(corridor.RouteMercator, ToMercator(p.Point())) <= corridor.RadiusM
}

// RepresentativePoint はジオメトリの代表点を返す（点以外は重心）
func RepresentativePoint(g orb.Geometry) (orb.Point, bool) {
	switch v := g.(type) {
	case nil:
		return orb.Point{}, false
	case orb.Point:
		return v, true
	case orb.LineString:
		if len(v) == 0 {
			return orb.Point{}, false
		}
	case orb.Polygon:
		if len(v) == 0 || len(v[0]) == 0 {
			return orb.Point{}, false
		}
	}
	centroid, _ := planar.CentroidArea(g)
	return centroid, true
}

func circleRing(center orb.Point, radius float64, segments int) orb.Ring {
	ring := make(orb.Ring, 0, segments+1)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		ring = append(ring, orb.Point{
			center[0] + radius*math.Cos(angle),
			center[1] + radius*math.Sin(angle),
		})
	}
	return append(ring, ring[0])
}

// segmentCapsule は区間a-bの周囲radius以内を近似するリングを作る
func segmentCapsule(a, b orb.Point, radius float64) orb.Ring {
	if a.Equal(b) {
		return circleRing(a, radius, circleSegments)
	}

	theta := math.Atan2(b[1]-a[1], b[0]-a[0])
	ring := make(orb.Ring, 0, 2*arcSegments+3)
	// b側の半円
	for i := 0; i <= arcSegments; i++ {
		angle := theta - math.Pi/2 + math.Pi*float64(i)/float64(arcSegments)
		ring = append(ring, orb.Point{b[0] + radius*math.Cos(angle), b[1] + radius*math.Sin(angle)})
	}
	// a側の半円
	for i := 0; i <= arcSegments; i++ {
		angle := theta + math.Pi/2 + math.Pi*float64(i)/float64(arcSegments)
		ring = append(ring, orb.Point{a[0] + radius*math.Cos(angle), a[1] + radius*math.Sin(angle)})
	}
	return append(ring, ring[0])
}

package helper

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/model"
)

var venue = model.LatLng{Lat: 50.0, Lng: 8.0}

func TestBearingToDirection_Boundaries(t *testing.T) {
	tests := []struct {
		bearing float64
		want    model.Direction
	}{
		{0, model.DirectionN},
		{22.4999, model.DirectionN},
		{22.5, model.DirectionNE},
		{67.5, model.DirectionE},
		{112.5, model.DirectionSE},
		{157.5, model.DirectionS},
		{202.5, model.DirectionSW},
		{247.5, model.DirectionW},
		{292.5, model.DirectionNW},
		{337.4999, model.DirectionNW},
		{337.5, model.DirectionN},
		{359.9999, model.DirectionN},
		{360, model.DirectionN},
		{-45, model.DirectionNW},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BearingToDirection(tt.bearing), "bearing %.4f", tt.bearing)
	}
}

func TestBearingToDirection_PartitionsCircle(t *testing.T) {
	// 0.1度刻みで走査し、各方位が連続した45度を占めることを確認
	counts := make(map[model.Direction]int)
	prev := BearingToDirection(0)
	changes := 0
	for i := 0; i < 3600; i++ {
		d := BearingToDirection(float64(i) / 10)
		counts[d]++
		if d != prev {
			changes++
			prev = d
		}
	}

	assert.Len(t, counts, 8)
	for _, dir := range model.AllDirections {
		assert.Equal(t, 450, counts[dir], "direction %s", dir)
	}
	// N区間は0度をまたぐので変化点は8回
	assert.Equal(t, 8, changes)
}

func TestBearingToDirection_JustBelowLowerEdge(t *testing.T) {
	// 各方位の下限の直前の値は1つ前の方位に入る
	for i, dir := range model.AllDirections {
		lower := math.Mod(float64(i)*45-22.5+360, 360)
		prev := model.AllDirections[(i+len(model.AllDirections)-1)%len(model.AllDirections)]

		assert.Equal(t, dir, BearingToDirection(lower), "bearing %v", lower)
		below := math.Nextafter(lower, 0)
		assert.Equal(t, prev, BearingToDirection(below), "bearing %v", below)
	}
	assert.Equal(t, model.DirectionN, BearingToDirection(math.Nextafter(360, 0)))
	assert.Equal(t, model.DirectionN, BearingToDirection(-1e-300))
}

func TestBearing(t *testing.T) {
	north := model.LatLng{Lat: 50.5, Lng: 8.0}
	east := model.LatLng{Lat: 50.0, Lng: 8.5}
	south := model.LatLng{Lat: 49.5, Lng: 8.0}
	west := model.LatLng{Lat: 50.0, Lng: 7.5}

	assert.InDelta(t, 0, Bearing(venue, north), 1e-9)
	assert.InDelta(t, 90, Bearing(venue, east), 0.5)
	assert.InDelta(t, 180, Bearing(venue, south), 1e-9)
	assert.InDelta(t, 270, Bearing(venue, west), 0.5)

	for _, p := range []model.LatLng{north, east, south, west} {
		b := Bearing(venue, p)
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestMercatorDistanceKm(t *testing.T) {
	assert.Zero(t, MercatorDistanceKm(venue, venue))

	// メルカトル距離は緯度50度で約1/cos(50°)倍に拡大される
	north := model.LatLng{Lat: 50.0 + 10.0/111.32, Lng: 8.0}
	d := MercatorDistanceKm(venue, north)
	assert.InDelta(t, 10/math.Cos(50*math.Pi/180), d, 0.3)
}

func TestDiskPolygon_ContainsVenue(t *testing.T) {
	for _, radius := range []float64{0.5, 5, 40, 100} {
		disk := DiskPolygon(venue, radius)
		require.Len(t, disk, 1)
		assert.True(t, disk[0].Closed())
		assert.True(t, planar.PolygonContains(disk, venue.Point()), "radius %.1f", radius)

		centroid, _ := planar.CentroidArea(disk)
		assert.True(t, planar.PolygonContains(disk, centroid))
	}
}

func TestDiskPolygon_RadiusInMercatorMeters(t *testing.T) {
	disk := DiskPolygon(venue, 40)
	center := ToMercator(venue.Point())
	for _, p := range disk[0] {
		assert.InDelta(t, 40000, planar.Distance(center, ToMercator(p)), 1e-3)
	}
}

func TestBufferLineString_ContainsLine(t *testing.T) {
	route := orb.LineString{
		{8.0, 50.0},
		{8.05, 50.02},
		{8.05, 50.02},
		{8.10, 49.99},
		{8.20, 50.10},
	}
	merc := LineStringToMercator(route)
	buffer := BufferLineString(merc, 2000)
	require.Len(t, buffer, len(route)-1)

	for i := 0; i < len(merc)-1; i++ {
		for step := 0; step <= 10; step++ {
			f := float64(step) / 10
			p := orb.Point{
				merc[i][0] + f*(merc[i+1][0]-merc[i][0]),
				merc[i][1] + f*(merc[i+1][1]-merc[i][1]),
			}
			assert.True(t, planar.MultiPolygonContains(buffer, p), "segment %d fraction %.1f", i, f)
		}
	}

	// 元の線は変更されない
	assert.Equal(t, orb.Point{8.0, 50.0}, route[0])

	wgs := MultiPolygonToWGS84(buffer)
	for _, p := range route {
		assert.True(t, planar.MultiPolygonContains(wgs, p))
	}
}

func TestBufferLineString_SinglePoint(t *testing.T) {
	buffer := BufferLineString(orb.LineString{{0, 0}}, 100)
	require.Len(t, buffer, 1)
	assert.True(t, planar.MultiPolygonContains(buffer, orb.Point{50, 50}))
	assert.False(t, planar.MultiPolygonContains(buffer, orb.Point{100, 100}))
	assert.Nil(t, BufferLineString(nil, 100))
}

func TestCorridorContains_BoundaryInclusive(t *testing.T) {
	start := ToMercator(venue.Point())
	end := orb.Point{start[0] + 10000, start[1]}
	corridor := &model.RouteCorridor{
		RouteMercator: orb.LineString{start, end},
		RadiusM:       2000,
	}

	onBoundary := model.LatLngFromPoint(ToWGS84(orb.Point{start[0] + 5000, start[1] + 2000}))
	justOutside := model.LatLngFromPoint(ToWGS84(orb.Point{start[0] + 5000, start[1] + 2001}))
	inside := model.LatLngFromPoint(ToWGS84(orb.Point{start[0] + 5000, start[1] + 1500}))

	assert.True(t, CorridorContains(corridor, inside))
	assert.True(t, planar.DistanceFrom(corridor.RouteMercator, ToMercator(onBoundary.Point())) <= 2000+1e-6)
	assert.False(t, CorridorContains(corridor, justOutside))
	assert.False(t, CorridorContains(&model.RouteCorridor{RadiusM: 10}, venue))
}

func TestRepresentativePoint(t *testing.T) {
	p, ok := RepresentativePoint(orb.Point{1, 2})
	require.True(t, ok)
	assert.Equal(t, orb.Point{1, 2}, p)

	p, ok = RepresentativePoint(orb.LineString{{0, 0}, {2, 0}})
	require.True(t, ok)
	assert.InDelta(t, 1, p[0], 1e-9)
	assert.InDelta(t, 0, p[1], 1e-9)

	p, ok = RepresentativePoint(orb.Polygon{{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}})
	require.True(t, ok)
	assert.InDelta(t, 1, p[0], 1e-9)
	assert.InDelta(t, 1, p[1], 1e-9)

	_, ok = RepresentativePoint(orb.LineString{})
	assert.False(t, ok)
	_, ok = RepresentativePoint(nil)
	assert.False(t, ok)
}

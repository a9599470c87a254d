package service

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/paulmach/orb"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
)

var (
	testVenue   = model.LatLng{Lat: 50.0, Lng: 8.0}
	errUpstream = errors.New("upstream unavailable")
)

// offsetMerc 会場からメルカトル座標上で方位bearing・距離distanceMの地点
func offsetMerc(bearing, distanceM float64) model.LatLng {
	center := helper.ToMercator(testVenue.Point())
	rad := bearing * math.Pi / 180
	p := orb.Point{center[0] + distanceM*math.Sin(rad), center[1] + distanceM*math.Cos(rad)}
	return model.LatLngFromPoint(helper.ToWGS84(p))
}

// fakeRoadNetwork テスト用の道路ネットワーク
type fakeRoadNetwork struct {
	mu sync.Mutex

	graph      *graph.RoadGraph
	pointGraph *graph.RoadGraph
	polygonErr error
	pointErr   error
	features   map[string][]orb.Geometry
	featureErr map[string]error

	polygonCalls int
	pointCalls   int
	pointDistM   float64
}

func (f *fakeRoadNetwork) FetchGraphByPolygon(ctx context.Context, polygon orb.Polygon) (*graph.RoadGraph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polygonCalls++
	if f.polygonErr != nil {
		return nil, f.polygonErr
	}
	return f.graph, nil
}

func (f *fakeRoadNetwork) FetchGraphByPoint(ctx context.Context, center model.LatLng, distanceM float64) (*graph.RoadGraph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pointCalls++
	f.pointDistM = distanceM
	if f.pointErr != nil {
		return nil, f.pointErr
	}
	if f.pointGraph != nil {
		return f.pointGraph, nil
	}
	return f.graph, nil
}

func (f *fakeRoadNetwork) FetchHighwayFeatures(ctx context.Context, polygon orb.Polygon, highwayValue string) ([]orb.Geometry, error) {
	if err := f.featureErr[highwayValue]; err != nil {
		return nil, err
	}
	return f.features[highwayValue], nil
}

// eightDirectionNetwork 8方位それぞれにランプ2件（近い trunk_link と遠い motorway_link）を置いた道路網
//
// ノードID: 1=会場, 100+i=中間点, 200+i=近いランプ, 300+i=遠いランプ
// isolated に含まれる方位は会場側と接続しない
func eightDirectionNetwork(isolated ...model.Direction) *fakeRoadNetwork {
	skip := make(map[model.Direction]bool)
	for _, d := range isolated {
		skip[d] = true
	}

	g := graph.NewRoadGraph()
	g.AddNode(1, testVenue.Lat, testVenue.Lng)

	features := map[string][]orb.Geometry{}
	for i, dir := range model.AllDirections {
		bearing := float64(i) * 45
		mid := offsetMerc(bearing, 3000)
		near := offsetMerc(bearing, 6000+float64(i)*500)
		far := offsetMerc(bearing+5, 14000)

		midID, nearID, farID := int64(100+i), int64(200+i), int64(300+i)
		g.AddNode(midID, mid.Lat, mid.Lng)
		g.AddNode(nearID, near.Lat, near.Lng)
		g.AddNode(farID, far.Lat, far.Lng)
		if !skip[dir] {
			_ = g.AddRoad(1, midID, false)
			_ = g.AddRoad(midID, nearID, false)
		}
		_ = g.AddRoad(nearID, farID, false)

		features["motorway_link"] = append(features["motorway_link"], far.Point())
		features["trunk_link"] = append(features["trunk_link"], orb.LineString{
			{near.Lng - 0.0005, near.Lat},
			{near.Lng + 0.0005, near.Lat},
		})
	}

	return &fakeRoadNetwork{graph: g, features: features}
}

// fakePlaces 検索語ごとに固定の結果を返す
type fakePlaces struct {
	mu      sync.Mutex
	results map[string][]model.POI
	errs    map[string]error
	calls   []string
	radiusM int
}

func (f *fakePlaces) SearchNearby(ctx context.Context, center model.LatLng, radiusM int, keyword string) ([]model.POI, error) {
	f.mu.Lock()
	f.calls = append(f.calls, keyword)
	f.radiusM = radiusM
	f.mu.Unlock()

	if err := f.errs[keyword]; err != nil {
		return nil, err
	}
	pois := make([]model.POI, len(f.results[keyword]))
	copy(pois, f.results[keyword])
	for i := range pois {
		pois[i].SearchKeyword = keyword
	}
	return pois, nil
}

// fakeQuota メモリ上のカウンタ
type fakeQuota struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newFakeQuota() *fakeQuota {
	return &fakeQuota{counts: make(map[string]int)}
}

func (f *fakeQuota) GetUsage(ctx context.Context, month, apiType string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[month+"/"+apiType], nil
}

func (f *fakeQuota) Increment(ctx context.Context, month, apiType string, n int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.counts[month+"/"+apiType] += n
	return f.counts[month+"/"+apiType], nil
}

// roadsWithoutJunctions 交差点（次数3以上）を含まない一本道
func roadsWithoutJunctions() *graph.RoadGraph {
	g := graph.NewRoadGraph()
	g.AddNode(1, testVenue.Lat, testVenue.Lng)
	g.AddNode(2, testVenue.Lat+0.01, testVenue.Lng)
	g.AddNode(3, testVenue.Lat+0.02, testVenue.Lng)
	_ = g.AddRoad(1, 2, false)
	_ = g.AddRoad(2, 3, false)
	return g
}

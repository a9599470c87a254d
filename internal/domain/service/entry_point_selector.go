package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/paulmach/orb/planar"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// junctionMinDegree 交差点とみなす隣接ノード数
const junctionMinDegree = 3

// EntryPointSelector 高速道路の出入口候補を探し、方位ごとに1件選ぶ
type EntryPointSelector struct {
	roads         repository.RoadNetworkRepository
	highwayValues []string
	junctionLimit int
}

// NewEntryPointSelector 新しいEntryPointSelectorを作成
func NewEntryPointSelector(roads repository.RoadNetworkRepository, highwayValues []string, junctionLimit int) *EntryPointSelector {
	return &EntryPointSelector{
		roads:         roads,
		highwayValues: highwayValues,
		junctionLimit: junctionLimit,
	}
}

// FindCandidates 検索円内の出入口候補を返す
// ランプが1件も無ければ道路グラフの交差点で代用する
func (s *EntryPointSelector) FindCandidates(ctx context.Context, area *model.SearchArea, g *graph.RoadGraph) ([]model.EntryCandidate, error) {
	var candidates []model.EntryCandidate

	for _, value := range s.highwayValues {
		features, err := s.roads.FetchHighwayFeatures(ctx, area.Disk, value)
		if err != nil {
			log.Printf("⚠️ highway=%s の取得に失敗: %v", value, err)
			continue
		}
		for _, feature := range features {
			point, ok := helper.RepresentativePoint(feature)
			if !ok {
				continue
			}
			candidates = append(candidates, newEntryCandidate(area.Venue, model.LatLngFromPoint(point), value))
		}
	}

	if len(candidates) == 0 && g != nil {
		candidates = s.junctionCandidates(area, g)
		if len(candidates) > 0 {
			log.Printf("⚠️ ランプが見つからないため交差点%d件を候補にします", len(candidates))
		}
	}

	if len(candidates) == 0 {
		return nil, model.ErrNoEntryPoints
	}
	log.Printf("✅ 出入口候補: %d件", len(candidates))
	return candidates, nil
}

func (s *EntryPointSelector) junctionCandidates(area *model.SearchArea, g *graph.RoadGraph) []model.EntryCandidate {
	var candidates []model.EntryCandidate
	for _, node := range g.Nodes() {
		if s.junctionLimit > 0 && len(candidates) >= s.junctionLimit {
			break
		}
		if g.Degree(node.ID) < junctionMinDegree {
			continue
		}
		loc := node.LatLng()
		if !planar.PolygonContains(area.Disk, loc.Point()) {
			continue
		}
		candidates = append(candidates, newEntryCandidate(area.Venue, loc, model.ConnTypeNetworkJunction))
	}
	return candidates
}

func newEntryCandidate(venue, loc model.LatLng, connType string) model.EntryCandidate {
	bearing := helper.Bearing(venue, loc)
	return model.EntryCandidate{
		Location:   loc,
		ConnType:   connType,
		DistanceKm: helper.MercatorDistanceKm(venue, loc),
		Bearing:    bearing,
		Direction:  helper.BearingToDirection(bearing),
	}
}

// SelectPerDirection 方位ごとに会場から最も近い候補を選ぶ（N, NE, ..., NWの順）
func SelectPerDirection(candidates []model.EntryCandidate) []model.EntryCandidate {
	groups := helper.GroupByDirection(candidates)
	selected := make([]model.EntryCandidate, 0, len(model.AllDirections))
	for _, dir := range model.AllDirections {
		if nearest, ok := helper.NearestByDistance(groups[dir]); ok {
			selected = append(selected, nearest)
		}
	}
	return selected
}

// Select 候補の探索と方位ごとの選択をまとめて行う
func (s *EntryPointSelector) Select(ctx context.Context, area *model.SearchArea, g *graph.RoadGraph) ([]model.EntryCandidate, []model.EntryCandidate, error) {
	candidates, err := s.FindCandidates(ctx, area, g)
	if err != nil {
		return nil, nil, err
	}
	selected := SelectPerDirection(candidates)
	if len(selected) == 0 {
		return nil, nil, model.ErrNoEntryInDirections
	}
	log.Printf("✅ 方位ごとの出入口: %d方位 %s", len(selected), directionsOf(selected))
	return candidates, selected, nil
}

// directionsOf ログ出力用
func directionsOf(entries []model.EntryCandidate) string {
	dirs := make([]string, len(entries))
	for i, e := range entries {
		dirs[i] = string(e.Direction)
	}
	return fmt.Sprintf("[%s]", strings.Join(dirs, ","))
}

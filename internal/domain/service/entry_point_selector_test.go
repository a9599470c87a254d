package service

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
)

var testHighwayValues = []string{"motorway_link", "trunk_link"}

func testArea(radiusKm float64) *model.SearchArea {
	return &model.SearchArea{
		Venue:    testVenue,
		RadiusKm: radiusKm,
		Disk:     helper.DiskPolygon(testVenue, radiusKm),
	}
}

func TestEntryPointSelector_EightDirections(t *testing.T) {
	roads := eightDirectionNetwork()
	s := NewEntryPointSelector(roads, testHighwayValues, 20)

	candidates, selected, err := s.Select(context.Background(), testArea(40), roads.graph)
	require.NoError(t, err)

	assert.Len(t, candidates, 16)
	require.Len(t, selected, 8)
	for i, entry := range selected {
		assert.Equal(t, model.AllDirections[i], entry.Direction)
		assert.Equal(t, "trunk_link", entry.ConnType, "方位%sは近い方のランプを選ぶ", entry.Direction)
		assert.InDelta(t, 6.0+float64(i)*0.5, entry.DistanceKm, 0.01)
	}
}

func TestEntryPointSelector_Idempotent(t *testing.T) {
	roads := eightDirectionNetwork()
	s := NewEntryPointSelector(roads, testHighwayValues, 20)
	area := testArea(40)

	_, first, err := s.Select(context.Background(), area, roads.graph)
	require.NoError(t, err)
	_, second, err := s.Select(context.Background(), area, roads.graph)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSelectPerDirection_SkipsEmptyOctants(t *testing.T) {
	candidates := []model.EntryCandidate{
		{ConnType: "a", Direction: model.DirectionS, DistanceKm: 5},
		{ConnType: "b", Direction: model.DirectionN, DistanceKm: 9},
		{ConnType: "c", Direction: model.DirectionS, DistanceKm: 3},
		{ConnType: "d", Direction: model.DirectionS, DistanceKm: 3},
	}

	selected := SelectPerDirection(candidates)

	require.Len(t, selected, 2)
	assert.Equal(t, "b", selected[0].ConnType)
	assert.Equal(t, "c", selected[1].ConnType)
}

func TestEntryPointSelector_FeatureErrorsAreSkipped(t *testing.T) {
	roads := eightDirectionNetwork()
	roads.featureErr = map[string]error{"trunk_link": errUpstream}
	s := NewEntryPointSelector(roads, testHighwayValues, 20)

	candidates, selected, err := s.Select(context.Background(), testArea(40), roads.graph)
	require.NoError(t, err)

	assert.Len(t, candidates, 8)
	require.Len(t, selected, 8)
	assert.Equal(t, "motorway_link", selected[0].ConnType)
}

func TestEntryPointSelector_JunctionFallback(t *testing.T) {
	g := graph.NewRoadGraph()
	// 3本の道路が交わる交差点を5つ作る
	for i := 0; i < 5; i++ {
		center := offsetMerc(float64(i)*72, 5000)
		hub := int64(10 * (i + 1))
		g.AddNode(hub, center.Lat, center.Lng)
		for j := int64(1); j <= 3; j++ {
			g.AddNode(hub+j, center.Lat+0.001*float64(j), center.Lng)
			require.NoError(t, g.AddRoad(hub, hub+j, false))
		}
	}
	// 円の外の交差点は対象外
	outside := offsetMerc(90, 60000)
	g.AddNode(900, outside.Lat, outside.Lng)
	for j := int64(1); j <= 3; j++ {
		g.AddNode(900+j, outside.Lat+0.001*float64(j), outside.Lng)
		require.NoError(t, g.AddRoad(900, 900+j, false))
	}

	roads := &fakeRoadNetwork{graph: g}
	s := NewEntryPointSelector(roads, testHighwayValues, 3)

	candidates, err := s.FindCandidates(context.Background(), testArea(40), g)
	require.NoError(t, err)

	require.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.Equal(t, model.ConnTypeNetworkJunction, c.ConnType)
	}
	assert.Equal(t, model.DirectionN, candidates[0].Direction)
}

func TestEntryPointSelector_NoEntryPoints(t *testing.T) {
	g := graph.NewRoadGraph()
	g.AddNode(1, 50.0, 8.0)
	g.AddNode(2, 50.01, 8.0)
	require.NoError(t, g.AddRoad(1, 2, false))

	roads := &fakeRoadNetwork{
		graph:    g,
		features: map[string][]orb.Geometry{"motorway_link": {}},
	}
	s := NewEntryPointSelector(roads, testHighwayValues, 20)

	_, _, err := s.Select(context.Background(), testArea(40), g)
	assert.ErrorIs(t, err, model.ErrNoEntryPoints)
}

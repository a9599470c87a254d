package service

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
)

func selectedEntries(t *testing.T, roads *fakeRoadNetwork) []model.EntryCandidate {
	t.Helper()
	s := NewEntryPointSelector(roads, testHighwayValues, 20)
	_, selected, err := s.Select(context.Background(), testArea(40), roads.graph)
	require.NoError(t, err)
	return selected
}

func TestRouteCorridorBuilder_AllDirections(t *testing.T) {
	roads := eightDirectionNetwork()
	entries := selectedEntries(t, roads)

	corridors, skipped, err := NewRouteCorridorBuilder().Build(roads.graph, testVenue, entries, 2)
	require.NoError(t, err)

	assert.Empty(t, skipped)
	require.Len(t, corridors, 8)
	for i, c := range corridors {
		assert.Equal(t, model.AllDirections[i], c.Direction)
		assert.Len(t, c.Route, 3, "会場 → 中間点 → ランプ")
		assert.Equal(t, 2000.0, c.RadiusM)
		assert.Greater(t, c.LengthM, 0.0)

		// コリドーは自身の経路線を含む
		for _, p := range c.Route {
			assert.True(t, planar.MultiPolygonContains(c.Polygon, p), "方位%s", c.Direction)
			assert.True(t, helper.CorridorContains(&corridors[i], model.LatLngFromPoint(p)))
		}
	}
}

func TestRouteCorridorBuilder_RoutingFailureIsSkipped(t *testing.T) {
	roads := eightDirectionNetwork(model.DirectionE)
	entries := selectedEntries(t, roads)
	require.Len(t, entries, 8)

	corridors, skipped, err := NewRouteCorridorBuilder().Build(roads.graph, testVenue, entries, 2)
	require.NoError(t, err)

	require.Len(t, corridors, 7)
	for _, c := range corridors {
		assert.NotEqual(t, model.DirectionE, c.Direction)
	}
	require.Len(t, skipped, 1)
	assert.Equal(t, model.DirectionE, skipped[0].Direction)
	assert.NotEmpty(t, skipped[0].Reason)
}

func TestRouteCorridorBuilder_SingleNodePathIsSkipped(t *testing.T) {
	g := graph.NewRoadGraph()
	g.AddNode(1, testVenue.Lat, testVenue.Lng)
	g.AddNode(2, 50.05, 8.0)
	require.NoError(t, g.AddRoad(1, 2, false))

	// 会場と同じノードに吸着する出入口
	entry := model.EntryCandidate{Location: model.LatLng{Lat: 50.0001, Lng: 8.0}, Direction: model.DirectionN}

	corridors, skipped, err := NewRouteCorridorBuilder().Build(g, testVenue, []model.EntryCandidate{entry}, 2)
	require.NoError(t, err)

	assert.Empty(t, corridors)
	require.Len(t, skipped, 1)
	assert.Equal(t, model.DirectionN, skipped[0].Direction)
}

func TestRouteCorridorBuilder_Errors(t *testing.T) {
	b := NewRouteCorridorBuilder()

	_, _, err := b.Build(graph.NewRoadGraph(), testVenue, nil, 2)
	assert.ErrorIs(t, err, graph.ErrEmptyGraph)

	_, _, err = b.Build(eightDirectionNetwork().graph, testVenue, nil, 0)
	var vErr *model.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

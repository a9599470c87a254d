package render

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"FestivalMarket-App/internal/domain/model"
)

// 地物の種類 (properties.kind)
const (
	kindVenue      = "venue"
	kindSearchArea = "search_area"
	kindConnection = "connection"
	kindCorridor   = "corridor"
	kindRoute      = "route"
	kindEntry      = "entry"
	kindMarket     = "market"
)

// RenderGeoJSON 地図生成結果をFeatureCollectionとして返す
func (r *LeafletRenderer) RenderGeoJSON(result *model.MapResult) ([]byte, error) {
	fc := BuildFeatureCollection(result)
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("GeoJSONの生成に失敗: %w", err)
	}
	return data, nil
}

// BuildFeatureCollection 会場・検索円・出入口・コリドー・経路・マーケットの地物
func BuildFeatureCollection(result *model.MapResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	venue := geojson.NewFeature(result.Input.Venue.Point())
	venue.Properties["kind"] = kindVenue
	fc.Append(venue)

	if len(result.Area.Disk) > 0 {
		disk := geojson.NewFeature(result.Area.Disk)
		disk.Properties["kind"] = kindSearchArea
		disk.Properties["radius_km"] = result.Area.RadiusKm
		fc.Append(disk)
	}

	for _, c := range result.Candidates {
		f := geojson.NewFeature(c.Location.Point())
		f.Properties["kind"] = kindConnection
		f.Properties["conn_type"] = c.ConnType
		f.Properties["direction"] = string(c.Direction)
		f.Properties["bearing"] = c.Bearing
		f.Properties["festival_dist_km"] = c.DistanceKm
		fc.Append(f)
	}

	for _, match := range result.Corridors {
		corridor := match.Corridor
		dir := string(corridor.Direction)
		color := corridor.Direction.Color()

		// カプセル同士は重なるのでMultiPolygonにせず1区間1地物で出す
		for i, capsule := range corridor.Polygon {
			poly := geojson.NewFeature(capsule)
			poly.Properties["kind"] = kindCorridor
			poly.Properties["direction"] = dir
			poly.Properties["color"] = color
			poly.Properties["radius_m"] = corridor.RadiusM
			poly.Properties["markets_count"] = len(match.Markets)
			poly.Properties["part"] = i
			fc.Append(poly)
		}

		route := geojson.NewFeature(corridor.Route)
		route.Properties["kind"] = kindRoute
		route.Properties["direction"] = dir
		route.Properties["color"] = color
		route.Properties["length_m"] = corridor.LengthM
		fc.Append(route)

		entry := geojson.NewFeature(corridor.Entry.Location.Point())
		entry.Properties["kind"] = kindEntry
		entry.Properties["direction"] = dir
		entry.Properties["conn_type"] = corridor.Entry.ConnType
		fc.Append(entry)

		for _, poi := range match.Markets {
			market := geojson.NewFeature(poi.Location.Point())
			market.Properties["kind"] = kindMarket
			market.Properties["direction"] = dir
			market.Properties["name"] = poi.Name
			market.Properties["vicinity"] = poi.Vicinity
			market.Properties["search_keyword"] = poi.SearchKeyword
			if poi.Rating != nil {
				market.Properties["rating"] = *poi.Rating
			}
			fc.Append(market)
		}
	}

	return fc
}

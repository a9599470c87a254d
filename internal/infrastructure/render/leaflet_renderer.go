// Package render は地図生成結果をLeafletのHTMLとGeoJSONに変換する
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"

	"FestivalMarket-App/internal/domain/model"
)

const defaultZoom = 9

// LeafletRenderer Leaflet + Leaflet.awesome-markers で地図HTMLを描画する
type LeafletRenderer struct {
	tmpl *template.Template
	zoom int
}

// NewLeafletRenderer 新しいレンダラーを作成
func NewLeafletRenderer() *LeafletRenderer {
	return &LeafletRenderer{
		tmpl: template.Must(template.New("map").Parse(mapTemplate)),
		zoom: defaultZoom,
	}
}

// 地図に渡すデータ（テンプレート内でJSONとして埋め込まれる）
type mapData struct {
	Center      [2]float64   `json:"center"`
	Zoom        int          `json:"zoom"`
	Venue       markerData   `json:"venue"`
	Radius      circleData   `json:"radius"`
	Connections []markerData `json:"connections"`
	Routes      []routeLayer `json:"routes"`
}

type markerData struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Popup string  `json:"popup"`
	Color string  `json:"color,omitempty"`
	Icon  string  `json:"icon,omitempty"`
}

type circleData struct {
	RadiusM float64 `json:"radius_m"`
	Tooltip string  `json:"tooltip"`
}

type routeLayer struct {
	Direction string       `json:"direction"`
	Color     string       `json:"color"`
	Coords    [][2]float64 `json:"coords"`
	Tooltip   string       `json:"tooltip"`
	Entry     markerData   `json:"entry"`
	Markets   []markerData `json:"markets"`
}

// RenderHTML 会場・検索円・全出入口・方位ごとの経路とマーケットを描いたHTML
func (r *LeafletRenderer) RenderHTML(result *model.MapResult) (string, error) {
	venue := result.Input.Venue
	data := mapData{
		Center: [2]float64{venue.Lat, venue.Lng},
		Zoom:   r.zoom,
		Venue: markerData{
			Lat: venue.Lat, Lng: venue.Lng,
			Popup: "Festivalort", Color: "purple", Icon: "star",
		},
		Radius: circleData{
			RadiusM: result.Input.RadiusKm * 1000,
			Tooltip: fmt.Sprintf("%s km Umkreis", formatNumber(result.Input.RadiusKm)),
		},
		Connections: make([]markerData, 0, len(result.Candidates)),
		Routes:      make([]routeLayer, 0, len(result.Corridors)),
	}

	for _, c := range result.Candidates {
		connType := c.ConnType
		if connType == "" {
			connType = "unknown"
		}
		data.Connections = append(data.Connections, markerData{
			Lat: c.Location.Lat, Lng: c.Location.Lng,
			Popup: "Anschlussstelle: " + html.EscapeString(connType),
		})
	}

	for _, match := range result.Corridors {
		data.Routes = append(data.Routes, newRouteLayer(match))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("地図HTMLの描画に失敗: %w", err)
	}
	return buf.String(), nil
}

func newRouteLayer(match model.CorridorMatch) routeLayer {
	corridor := match.Corridor
	dir := string(corridor.Direction)
	color := corridor.Direction.Color()
	count := len(match.Markets)

	layer := routeLayer{
		Direction: dir,
		Color:     color,
		Coords:    make([][2]float64, 0, len(corridor.Route)),
		Tooltip:   fmt.Sprintf("Route Richtung %s (%d Märkte)", dir, count),
		Entry: markerData{
			Lat: corridor.Entry.Location.Lat, Lng: corridor.Entry.Location.Lng,
			Popup: fmt.Sprintf("%s-Anschlussstelle<br>Märkte: %d", dir, count),
			Color: color, Icon: "flag",
		},
		Markets: make([]markerData, 0, count),
	}
	for _, p := range corridor.Route {
		layer.Coords = append(layer.Coords, [2]float64{p.Lat(), p.Lon()})
	}
	for i := range match.Markets {
		layer.Markets = append(layer.Markets, marketMarker(&match.Markets[i], dir, color))
	}
	return layer
}

func marketMarker(poi *model.POI, dir, color string) markerData {
	name := poi.Name
	if name == "" {
		name = "Markt"
	}
	popup := fmt.Sprintf("<b>%s</b><br>Richtung: %s<br>Adresse: %s<br>Bewertung: %s",
		html.EscapeString(name), dir, html.EscapeString(poi.Vicinity), poi.RatingText())
	return markerData{
		Lat: poi.Location.Lat, Lng: poi.Location.Lng,
		Popup: popup, Color: color, Icon: "shopping-cart",
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

const mapTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://maxcdn.bootstrapcdn.com/bootstrap/3.4.1/css/bootstrap.min.css">
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://cdnjs.cloudflare.com/ajax/libs/Leaflet.awesome-markers/2.0.2/leaflet.awesome-markers.js"></script>
<style>html, body, #map { width: 100%; height: 100%; margin: 0; padding: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
(function () {
  var data = {{.}};
  var map = L.map("map").setView(data.center, data.zoom);
  L.tileLayer("https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png", {
    maxZoom: 19,
    attribution: "&copy; OpenStreetMap contributors"
  }).addTo(map);

  function icon(color, name) {
    return L.AwesomeMarkers.icon({ icon: name, markerColor: color, prefix: "glyphicon" });
  }
  function marker(m) {
    return L.marker([m.lat, m.lng], { icon: icon(m.color, m.icon) }).bindPopup(m.popup);
  }

  marker(data.venue).addTo(map);
  L.circle(data.center, {
    radius: data.radius.radius_m, color: "black", fill: false, dashArray: "5,5"
  }).bindTooltip(data.radius.tooltip).addTo(map);

  data.connections.forEach(function (c) {
    L.circleMarker([c.lat, c.lng], {
      radius: 2, color: "gray", fill: true, fillOpacity: 0.6
    }).bindPopup(c.popup).addTo(map);
  });

  data.routes.forEach(function (r) {
    marker(r.entry).addTo(map);
    L.polyline(r.coords, { color: r.color, weight: 4, opacity: 0.7 }).bindTooltip(r.tooltip).addTo(map);
    r.markets.forEach(function (m) { marker(m).addTo(map); });
  });
})();
</script>
</body>
</html>
`

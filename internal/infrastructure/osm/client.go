// Package osm はOverpass APIでOpenStreetMapの道路データを取得する
package osm

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/serjvanilla/go-overpass"

	"FestivalMarket-App/internal/domain/model"
)

// DefaultEndpoint 公開Overpassインスタンス
const DefaultEndpoint = "https://overpass-api.de/api/interpreter"

const defaultTimeout = 180 * time.Second

// driveFilter 車で通行できる道路のタグ条件
const driveFilter = `["highway"]["area"!~"yes"]` +
	`["highway"!~"abandoned|bridleway|bus_guideway|construction|corridor|cycleway|elevator|escalator|footway|no|path|pedestrian|planned|platform|proposed|raceway|razed|service|steps|track"]` +
	`["motor_vehicle"!~"no"]["motorcar"!~"no"]` +
	`["service"!~"alley|driveway|emergency_access|parking|parking_aisle|private"]`

// Client Overpass APIクライアント
type Client struct {
	client  overpass.Client
	timeout time.Duration
}

// NewClient 新しいOverpassクライアントを作成
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}
	return &Client{
		client:  overpass.NewWithSettings(endpoint, 1, httpClient),
		timeout: timeout,
	}
}

// Query Overpass QLを実行する
// ライブラリがcontextに対応していないため、キャンセル時は結果を待たずに戻る
func (c *Client) Query(ctx context.Context, query string) (overpass.Result, error) {
	type response struct {
		result overpass.Result
		err    error
	}
	done := make(chan response, 1)

	start := time.Now()
	go func() {
		result, err := c.client.Query(query)
		done <- response{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return overpass.Result{}, ctx.Err()
	case resp := <-done:
		if resp.err != nil {
			return overpass.Result{}, fmt.Errorf("Overpassクエリに失敗: %w", resp.err)
		}
		log.Printf("🗺️ Overpass応答: ノード%d件, ウェイ%d件 (%v)", len(resp.result.Nodes), len(resp.result.Ways), time.Since(start))
		return resp.result, nil
	}
}

// header 出力形式とタイムアウト
func (c *Client) header() string {
	return fmt.Sprintf("[out:json][timeout:%d];", int(c.timeout.Seconds()))
}

// DriveNetworkByPolygonQuery ポリゴン内の車道とその構成ノード
func (c *Client) DriveNetworkByPolygonQuery(polygon orb.Polygon) string {
	return c.header() + fmt.Sprintf(`(way%s(%s););(._;>;);out body;`, driveFilter, PolyFilter(polygon))
}

// DriveNetworkAroundQuery 地点から半径distanceM以内の車道とその構成ノード
func (c *Client) DriveNetworkAroundQuery(center model.LatLng, distanceM float64) string {
	return c.header() + fmt.Sprintf(`(way%s(around:%.0f,%f,%f););(._;>;);out body;`, driveFilter, distanceM, center.Lat, center.Lng)
}

// HighwayFeatureQuery ポリゴン内で highway=<value> のノードとウェイ
func (c *Client) HighwayFeatureQuery(polygon orb.Polygon, highwayValue string) string {
	poly := PolyFilter(polygon)
	tag := fmt.Sprintf(`["highway"="%s"]`, highwayValue)
	return c.header() + fmt.Sprintf(`(node%s(%s);way%s(%s););(._;>;);out body;`, tag, poly, tag, poly)
}

// PolyFilter ポリゴンの外周を Overpass の poly フィルタ ("lat lon lat lon ...") に変換する
func PolyFilter(polygon orb.Polygon) string {
	if len(polygon) == 0 {
		return `poly:""`
	}
	ring := polygon[0]
	if len(ring) > 1 && ring[0].Equal(ring[len(ring)-1]) {
		ring = ring[:len(ring)-1]
	}
	coords := make([]string, 0, len(ring))
	for _, p := range ring {
		coords = append(coords, fmt.Sprintf("%.6f %.6f", p.Lat(), p.Lon()))
	}
	return fmt.Sprintf(`poly:"%s"`, strings.Join(coords, " "))
}

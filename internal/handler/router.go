package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers ルーティングに必要なハンドラー一式
type Handlers struct {
	Session     *SessionMiddleware
	Geocode     *GeocodeHandler
	Map         *MapHandler
	SearchTerms *SearchTermsHandler
	Stats       *StatsHandler
}

// RegisterRoutes 全エンドポイントを登録する
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/api/health", GetHealth)

	app := r.Group("/")
	app.Use(h.Session.Handle())
	{
		app.GET("/", GetIndex)

		api := app.Group("/api")
		api.POST("/geocode", h.Geocode.PostGeocode)
		api.POST("/generate_map", h.Map.PostGenerateMap)
		api.GET("/export_markets", h.Map.GetExportMarkets)
		api.GET("/results/:id/geojson", h.Map.GetResultGeoJSON)
		api.GET("/stats", h.Stats.GetStats)

		api.GET("/search_terms", h.SearchTerms.GetSearchTerms)
		api.POST("/search_terms", h.SearchTerms.PostSearchTerm)
		api.POST("/search_terms/reset", h.SearchTerms.PostResetSearchTerms)
		api.DELETE("/search_terms/:index", h.SearchTerms.DeleteSearchTerm)
	}
}

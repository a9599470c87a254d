package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/usecase"
)

// MapHandler 地図生成APIのハンドラー
type MapHandler struct {
	mapUseCase    usecase.MapGenerationUseCase
	exportUseCase usecase.ExportUseCase
}

// NewMapHandler 新しいMapHandlerインスタンスを作成
func NewMapHandler(mapUseCase usecase.MapGenerationUseCase, exportUseCase usecase.ExportUseCase) *MapHandler {
	return &MapHandler{
		mapUseCase:    mapUseCase,
		exportUseCase: exportUseCase,
	}
}

// PostGenerateMap POST /api/generate_map
func (h *MapHandler) PostGenerateMap(c *gin.Context) {
	var req model.MapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithStatus(c, http.StatusBadRequest, "Fehlende Koordinaten", err)
		return
	}

	response, err := h.mapUseCase.GenerateMap(c.Request.Context(), SessionID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetExportMarkets GET /api/export_markets?result_id=
func (h *MapHandler) GetExportMarkets(c *gin.Context) {
	file, err := h.exportUseCase.ExportMarkets(c.Request.Context(), SessionID(c), c.Query("result_id"))
	if err != nil {
		// エクスポート対象が無いのはクライアント側の操作順の問題として400を返す
		status, message := classifyError(err)
		if status == http.StatusNotFound {
			status = http.StatusBadRequest
		}
		respondErrorWithStatus(c, status, message, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// GetResultGeoJSON GET /api/results/:id/geojson
func (h *MapHandler) GetResultGeoJSON(c *gin.Context) {
	data, err := h.exportUseCase.GeoJSON(c.Request.Context(), SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

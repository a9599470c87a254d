package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/usecase"
)

// GeocodeHandler 住所検索APIのハンドラー
type GeocodeHandler struct {
	geocodeUseCase usecase.GeocodeUseCase
}

func NewGeocodeHandler(geocodeUseCase usecase.GeocodeUseCase) *GeocodeHandler {
	return &GeocodeHandler{geocodeUseCase: geocodeUseCase}
}

// PostGeocode POST /api/geocode
func (h *GeocodeHandler) PostGeocode(c *gin.Context) {
	var req model.GeocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithStatus(c, http.StatusBadRequest, "Adresse erforderlich", err)
		return
	}

	result, err := h.geocodeUseCase.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

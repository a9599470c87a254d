package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/usecase"
)

// SearchTermsHandler 検索語管理APIのハンドラー
type SearchTermsHandler struct {
	termsUseCase usecase.SearchTermsUseCase
}

func NewSearchTermsHandler(termsUseCase usecase.SearchTermsUseCase) *SearchTermsHandler {
	return &SearchTermsHandler{termsUseCase: termsUseCase}
}

// GetSearchTerms GET /api/search_terms
func (h *SearchTermsHandler) GetSearchTerms(c *gin.Context) {
	h.respond(c)(h.termsUseCase.List(c.Request.Context(), SessionID(c)))
}

// PostSearchTerm POST /api/search_terms
func (h *SearchTermsHandler) PostSearchTerm(c *gin.Context) {
	var req model.SearchTermRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Term == nil {
		respondErrorWithStatus(c, http.StatusBadRequest, "Suchbegriff erforderlich", errMissingTerm(err))
		return
	}
	h.respond(c)(h.termsUseCase.Add(c.Request.Context(), SessionID(c), *req.Term))
}

// DeleteSearchTerm DELETE /api/search_terms/:index
func (h *SearchTermsHandler) DeleteSearchTerm(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondErrorWithStatus(c, http.StatusBadRequest, "Ungültiger Index", err)
		return
	}
	h.respond(c)(h.termsUseCase.Remove(c.Request.Context(), SessionID(c), index))
}

// PostResetSearchTerms POST /api/search_terms/reset
func (h *SearchTermsHandler) PostResetSearchTerms(c *gin.Context) {
	h.respond(c)(h.termsUseCase.Reset(c.Request.Context(), SessionID(c)))
}

func (h *SearchTermsHandler) respond(c *gin.Context) func(*model.SearchTermsResponse, error) {
	return func(res *model.SearchTermsResponse, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func errMissingTerm(err error) error {
	if err != nil {
		return err
	}
	return &model.ValidationError{Field: "term", Message: "Suchbegriff erforderlich"}
}

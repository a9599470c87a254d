package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"FestivalMarket-App/internal/domain/model"
)

// errorStatuses エラー種別とHTTPステータスの対応（上から順に判定）
var errorStatuses = []struct {
	err    error
	status int
}{
	{model.ErrQuotaExceeded, http.StatusTooManyRequests},
	{model.ErrNoAPIKey, http.StatusBadRequest},
	{model.ErrNoSearchTerms, http.StatusBadRequest},
	{model.ErrResultNotFound, http.StatusNotFound},
	{model.ErrSessionNotFound, http.StatusNotFound},
	{model.ErrAreaBuild, http.StatusInternalServerError},
	{model.ErrNoEntryPoints, http.StatusInternalServerError},
	{model.ErrNoEntryInDirections, http.StatusInternalServerError},
}

// classifyError ユーザー向けメッセージとステータスを決める
func classifyError(err error) (int, string) {
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, "Interner Fehler"
}

// respondError {"error": ..., "details": ...} を返す
func respondError(c *gin.Context, err error) {
	status, message := classifyError(err)
	respondErrorWithStatus(c, status, message, err)
}

func respondErrorWithStatus(c *gin.Context, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

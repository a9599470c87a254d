package model

import (
	"errors"
	"fmt"
)

// パイプライン全体を中断するエラー（ユーザー向けメッセージ）
var (
	ErrAreaBuild           = errors.New("Straßennetz konnte nicht geladen werden")
	ErrNoEntryPoints       = errors.New("Keine Anschlussstellen gefunden")
	ErrNoEntryInDirections = errors.New("Keine Anschlussstellen in den Hauptrichtungen gefunden")
	ErrNoAPIKey            = errors.New("Kein API-Key verfügbar")
	ErrQuotaExceeded       = errors.New("API-Limit erreicht")
	ErrNoSearchTerms       = errors.New("Keine Suchbegriffe ausgewählt")
	ErrResultNotFound      = errors.New("Keine Märkte zum Exportieren verfügbar. Erstellen Sie zuerst eine Karte.")
	ErrSessionNotFound     = errors.New("Sitzung nicht gefunden")
)

// ExternalServiceError 外部API呼び出し（通信・パース・ステータス）の失敗
type ExternalServiceError struct {
	Service string
	Status  string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: Status %s", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError 外部サービスエラーを作成
func NewExternalServiceError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

// ValidationError リクエストの検証エラー
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

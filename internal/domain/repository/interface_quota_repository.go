package repository

import "context"

// QuotaRepository 月ごと・API種別ごとの利用回数カウンタ
type QuotaRepository interface {
	GetUsage(ctx context.Context, month, apiType string) (int, error)
	// Increment はカウンタをアトミックに加算し、加算後の値を返す
	Increment(ctx context.Context, month, apiType string, n int) (int, error)
}

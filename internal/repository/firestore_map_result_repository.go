package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

const mapResultsCollection = "mapResults"

// FirestoreMapResultRepository Firestoreを使用した地図生成結果のTTL付きストア
// 期限切れドキュメントの削除はFirestoreのTTLポリシー (expireAt) に任せる
type FirestoreMapResultRepository struct {
	client *firestore.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewFirestoreMapResultRepository 新しいFirestoreMapResultRepositoryインスタンスを作成
func NewFirestoreMapResultRepository(client *firestore.Client, ttl time.Duration) repository.MapResultRepository {
	return &FirestoreMapResultRepository{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Save は地図生成結果を result.ID をドキュメントIDとして保存する
func (r *FirestoreMapResultRepository) Save(ctx context.Context, result *model.MapResultSnapshot) error {
	data := result.ToFirestoreMapResult(r.ttl)

	if _, err := r.client.Collection(mapResultsCollection).Doc(result.ID).Set(ctx, data); err != nil {
		log.Printf("❌ 地図生成結果の保存に失敗 %s: %v", result.ID, err)
		return fmt.Errorf("地図生成結果の保存に失敗しました: %w", err)
	}

	log.Printf("✅ 地図生成結果を保存: %s (有効期限 %v)", result.ID, r.ttl)
	return nil
}

// FindByID は指定IDの地図生成結果を取得する
func (r *FirestoreMapResultRepository) FindByID(ctx context.Context, id string) (*model.MapResultSnapshot, error) {
	doc, err := r.client.Collection(mapResultsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %s", model.ErrResultNotFound, id)
		}
		return nil, fmt.Errorf("地図生成結果の取得に失敗しました: %w", err)
	}

	var data model.FirestoreMapResult
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	// TTLによる削除は即時ではないため、期限は読み出し時にも確認する
	if !data.ExpireAt.IsZero() && r.now().After(data.ExpireAt) {
		return nil, fmt.Errorf("%w: %s (期限切れ)", model.ErrResultNotFound, id)
	}

	return data.ToSnapshot(id), nil
}

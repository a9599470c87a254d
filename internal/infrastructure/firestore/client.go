package firestore

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreClient 地図生成結果の保存に使うFirestoreクライアント
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient 新しいFirestoreクライアントを作成
// Cloud Run上ではデフォルト認証、ローカルではGOOGLE_APPLICATION_CREDENTIALSの鍵ファイルを使う
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	if projectID == "" {
		return nil, fmt.Errorf("FirestoreのプロジェクトIDが設定されていません")
	}

	var opts []option.ClientOption
	if os.Getenv("K_SERVICE") != "" {
		log.Printf("☁️ Cloud Run環境: デフォルト認証を使用")
	} else if credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentialsFile != "" {
		if _, err := os.Stat(credentialsFile); err != nil {
			log.Printf("⚠️ 認証ファイルが見つかりません: %s。デフォルト認証を試します", credentialsFile)
		} else {
			log.Printf("📄 認証ファイルを使用: %s", credentialsFile)
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}
	log.Printf("✅ Firestoreクライアント初期化完了: %s", projectID)

	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"FestivalMarket-App/internal/domain/repository"
)

// FileQuotaRepository JSONファイル ({"YYYY-MM": {"places": n}}) でAPI利用回数を管理する
// 読み書きはミューテックスで直列化する（単一プロセス前提）
type FileQuotaRepository struct {
	mu   sync.Mutex
	path string
}

// NewFileQuotaRepository 新しいFileQuotaRepositoryを作成
func NewFileQuotaRepository(path string) repository.QuotaRepository {
	return &FileQuotaRepository{path: path}
}

type usageFile map[string]map[string]int

func (r *FileQuotaRepository) GetUsage(ctx context.Context, month, apiType string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load()
	return data[month][apiType], nil
}

func (r *FileQuotaRepository) Increment(ctx context.Context, month, apiType string, n int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := r.load()
	if data[month] == nil {
		data[month] = make(map[string]int)
	}
	data[month][apiType] += n

	if err := r.save(data); err != nil {
		return 0, err
	}
	return data[month][apiType], nil
}

// load 壊れたファイルや存在しないファイルは空として扱う
func (r *FileQuotaRepository) load() usageFile {
	data := usageFile{}
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ 利用回数ファイルの読み込みに失敗: %v", err)
		}
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("⚠️ 利用回数ファイルの形式が不正です: %v", err)
		return usageFile{}
	}
	return data
}

// save 一時ファイルに書いてからリネームする
func (r *FileQuotaRepository) save(data usageFile) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("利用回数のJSON変換に失敗: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".api_usage_*.json")
	if err != nil {
		return fmt.Errorf("利用回数ファイルの作成に失敗: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("利用回数ファイルの書き込みに失敗: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("利用回数ファイルの書き込みに失敗: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("利用回数ファイルの保存に失敗: %w", err)
	}
	return nil
}

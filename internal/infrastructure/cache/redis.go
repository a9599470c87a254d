// Package cache はRedisクライアントを提供する
package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient API利用回数カウンタに使うRedisクライアント
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient 新しいRedisクライアントを作成し、疎通を確認する
func NewRedisClient(ctx context.Context, addr string, db int) (*RedisClient, error) {
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDRが設定されていません")
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗: %w", err)
	}
	log.Printf("✅ Redis接続完了: %s (db=%d)", addr, db)

	return &RedisClient{client: client}, nil
}

// NewRedisClientFrom 既存のredis.Clientを包む（テスト用）
func NewRedisClientFrom(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (rc *RedisClient) GetClient() *redis.Client {
	return rc.client
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/tienda/pkg/errors"
)

// pendingMarker 请求处理中的占位值
const pendingMarker = "pending"

// StoredResponse 已完成请求的响应快照
type StoredResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyStore 基于Redis的幂等键存储
// 设计说明：
// 1. Key设计：idempotency:{scope}:{key}
// 2. 第一次请求用SETNX写入pending占位，处理成功后覆盖为响应快照
// 3. 处理失败时删除占位，客户端可以用同一个键重试
// 4. 所有Key带TTL，过期后同一个键视为新请求
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore 创建幂等键存储
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func redisKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}

// Begin 尝试占用幂等键
// 返回值：
//   - (nil, nil)：首次请求，已占用，调用方继续处理
//   - (resp, nil)：已完成过的请求，直接重放resp
//   - (nil, ErrRequestInProgress)：同一个键的请求正在处理
func (s *IdempotencyStore) Begin(ctx context.Context, key string) (*StoredResponse, error) {
	k := redisKey(key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "写入幂等键失败")
	}
	if ok {
		return nil, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// 刚好过期：重新占用
		return s.Begin(ctx, key)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "读取幂等键失败")
	}
	if val == pendingMarker {
		return nil, apperrors.ErrRequestInProgress
	}

	var resp StoredResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, apperrors.Wrap(err, "解析幂等响应失败")
	}
	return &resp, nil
}

// Complete 保存成功响应，之后同一个键的请求直接重放
func (s *IdempotencyStore) Complete(ctx context.Context, key string, status int, body []byte) error {
	data, err := json.Marshal(StoredResponse{Status: status, Body: body})
	if err != nil {
		return apperrors.Wrap(err, "序列化幂等响应失败")
	}
	if err := s.client.Set(ctx, redisKey(key), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存幂等响应失败")
	}
	return nil
}

// Release 释放占位（请求失败时调用）
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return apperrors.Wrap(err, "删除幂等键失败")
	}
	return nil
}

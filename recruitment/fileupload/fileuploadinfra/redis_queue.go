package fileuploadinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Brainstorm-collab/CareerFlow-sub002/recruitment/fileupload"
	"github.com/redis/go-redis/v9"
)

// RedisCleanupQueue implements fileupload.CleanupQueue with a Redis list for
// ready tasks and a sorted set (scored by due time) for delayed ones.
type RedisCleanupQueue struct {
	client    *redis.Client
	queueName string
}

func NewRedisCleanupQueue(client *redis.Client, queueName string) *RedisCleanupQueue {
	return &RedisCleanupQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisCleanupQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

func (q *RedisCleanupQueue) Enqueue(ctx context.Context, task fileupload.CleanupTask) error {
	data, err := encodeTask(task)
	if err != nil {
		return err
	}
	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue cleanup of %s: %w", task.StorageKey, err)
	}
	return nil
}

func (q *RedisCleanupQueue) EnqueueDelayed(ctx context.Context, task fileupload.CleanupTask, delay time.Duration) error {
	data, err := encodeTask(task)
	if err != nil {
		return err
	}

	due := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: due, Member: data}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed cleanup of %s: %w", task.StorageKey, err)
	}
	return nil
}

func (q *RedisCleanupQueue) Dequeue(ctx context.Context, timeout time.Duration) (*fileupload.CleanupTask, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue cleanup task: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}
	return decodeTask([]byte(result[1]))
}

func (q *RedisCleanupQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := strconv.FormatInt(time.Now().Unix(), 10)

	tasks, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: now,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed cleanup tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, t := range tasks {
		pipe.LPush(ctx, q.queueName, t)
		pipe.ZRem(ctx, q.delayedKey(), t)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed cleanup tasks: %w", err)
	}
	return len(tasks), nil
}

func (q *RedisCleanupQueue) Stats(ctx context.Context) (map[string]any, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return nil, fmt.Errorf("get queue size: %w", err)
	}
	delayed, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("get delayed queue size: %w", err)
	}
	return map[string]any{
		"queue_name":    q.queueName,
		"ready_tasks":   ready,
		"delayed_tasks": delayed,
	}, nil
}

// Ping checks if the Redis connection is alive
func (q *RedisCleanupQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

func encodeTask(task fileupload.CleanupTask) ([]byte, error) {
	if task.EnqueuedAt.IsZero() {
		task.EnqueuedAt = time.Now().UTC()
	}
	data, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("marshal cleanup task %s: %w", task.StorageKey, err)
	}
	return data, nil
}

func decodeTask(data []byte) (*fileupload.CleanupTask, error) {
	var task fileupload.CleanupTask
	if err := json.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("unmarshal cleanup task: %w", err)
	}
	if task.StorageKey.IsEmpty() {
		return nil, fmt.Errorf("cleanup task without storage key: %s", string(data))
	}
	return &task, nil
}

var _ fileupload.CleanupQueue = (*RedisCleanupQueue)(nil)

// Package queue is a Redis-backed job queue with at-least-once delivery.
// Jobs move from the pending list to a processing list on pickup and are
// removed only after the handler finishes, so a crashed worker leaves its
// job recoverable.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pendingKey    = "auralink:jobs:pending"
	processingKey = "auralink:jobs:processing"
)

// Job names the work kinds the queue carries.
const (
	JobProbeVideo = "probe_video"
)

type Job struct {
	Kind       string    `json:"kind"`
	VideoID    string    `json:"video_id"`
	FileKey    string    `json:"file_key"`
	Attempt    int       `json:"attempt"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

type Queue struct {
	client *redis.Client
}

func New(addr, password string, db int) (*Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Queue{client: client}, nil
}

func (q *Queue) Enqueue(ctx context.Context, job Job) error {
	job.EnqueuedAt = time.Now()
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}
	if err := q.client.LPush(ctx, pendingKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// Dequeue blocks up to timeout for the next job, moving it to the
// processing list. A nil job with nil error means the timeout elapsed.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, string, error) {
	payload, err := q.client.BRPopLPush(ctx, pendingKey, processingKey, timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to dequeue job: %w", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		// Poison payload; drop it from processing so it cannot loop.
		q.client.LRem(ctx, processingKey, 1, payload)
		return nil, "", fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, payload, nil
}

// Ack removes a finished job from the processing list.
func (q *Queue) Ack(ctx context.Context, payload string) error {
	return q.client.LRem(ctx, processingKey, 1, payload).Err()
}

// Requeue pushes a failed job back to pending with its attempt counter
// bumped, and drops the processing copy.
func (q *Queue) Requeue(ctx context.Context, job *Job, payload string) error {
	job.Attempt++
	if err := q.Enqueue(ctx, *job); err != nil {
		return err
	}
	return q.client.LRem(ctx, processingKey, 1, payload).Err()
}

// RecoverStale moves any jobs stranded in the processing list back to
// pending. Called once on boot before workers start.
func (q *Queue) RecoverStale(ctx context.Context) (int, error) {
	var recovered int
	for {
		_, err := q.client.RPopLPush(ctx, processingKey, pendingKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return recovered, nil
			}
			return recovered, err
		}
		recovered++
	}
}

func (q *Queue) Close() error {
	return q.client.Close()
}

// Package worker runs the background half of the platform: a goroutine pool
// draining the probe queue, and the periodic subscription and audit sweeps.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/auralink/auralink-backend/internal/probe"
	"github.com/auralink/auralink-backend/internal/queue"
	"github.com/auralink/auralink-backend/internal/storage"
	"github.com/auralink/auralink-backend/internal/subscription"
	"github.com/auralink/auralink-backend/internal/ydb"
	"github.com/panjf2000/ants/v2"
)

const (
	dequeueTimeout  = 5 * time.Second
	maxProbeRetries = 3
)

type Pool struct {
	db        ydb.Database
	queue     *queue.Queue
	prober    probe.Prober
	local     *storage.LocalClient
	subs      *subscription.Service
	logger    *slog.Logger
	pool      *ants.Pool
	retention time.Duration
}

type Config struct {
	PoolSize       int
	AuditRetention time.Duration
}

func NewPool(db ydb.Database, q *queue.Queue, prober probe.Prober, local *storage.LocalClient, subs *subscription.Service, logger *slog.Logger, cfg Config) (*Pool, error) {
	pool, err := ants.NewPool(cfg.PoolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Pool{
		db:        db,
		queue:     q,
		prober:    prober,
		local:     local,
		subs:      subs,
		logger:    logger,
		pool:      pool,
		retention: cfg.AuditRetention,
	}, nil
}

// Run drains the job queue until the context is cancelled. Each job is
// handed to the goroutine pool; Submit blocks when all workers are busy,
// which is the backpressure we want.
func (p *Pool) Run(ctx context.Context) {
	if recovered, err := p.queue.RecoverStale(ctx); err != nil {
		p.logger.Error("failed to recover stale jobs", "error", err)
	} else if recovered > 0 {
		p.logger.Info("stale jobs recovered", "count", recovered)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, payload, err := p.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.Error("failed to dequeue job", "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := p.pool.Submit(func() {
			p.handle(ctx, job, payload)
		}); err != nil {
			p.logger.Error("failed to submit job", "error", err)
			if err := p.queue.Requeue(ctx, job, payload); err != nil {
				p.logger.Error("failed to requeue job", "video_id", job.VideoID, "error", err)
			}
		}
	}
}

func (p *Pool) handle(ctx context.Context, job *queue.Job, payload string) {
	switch job.Kind {
	case queue.JobProbeVideo:
		p.handleProbe(ctx, job, payload)
	default:
		p.logger.Warn("unknown job kind dropped", "kind", job.Kind)
		if err := p.queue.Ack(ctx, payload); err != nil {
			p.logger.Error("failed to ack job", "error", err)
		}
	}
}

// handleProbe is idempotent: re-running it on the same video just rewrites
// the same metadata, so at-least-once delivery is safe.
func (p *Pool) handleProbe(ctx context.Context, job *queue.Job, payload string) {
	path, err := p.local.AbsolutePath(job.FileKey)
	if err != nil {
		p.logger.Error("probe job has invalid file key", "video_id", job.VideoID, "error", err)
		if err := p.queue.Ack(ctx, payload); err != nil {
			p.logger.Error("failed to ack job", "error", err)
		}
		return
	}

	result := p.prober.Probe(ctx, path)
	if result.DurationSeconds == 0 && job.Attempt < maxProbeRetries {
		p.logger.Warn("probe returned no duration, retrying",
			"video_id", job.VideoID, "attempt", job.Attempt)
		if err := p.queue.Requeue(ctx, job, payload); err != nil {
			p.logger.Error("failed to requeue probe job", "video_id", job.VideoID, "error", err)
		}
		return
	}

	if err := p.db.UpdateVideoProbeResult(ctx, job.VideoID,
		result.DurationSeconds, result.Width, result.Height, result.Codec); err != nil {
		p.logger.Error("failed to store probe result", "video_id", job.VideoID, "error", err)
		if err := p.queue.Requeue(ctx, job, payload); err != nil {
			p.logger.Error("failed to requeue probe job", "video_id", job.VideoID, "error", err)
		}
		return
	}

	if err := p.queue.Ack(ctx, payload); err != nil {
		p.logger.Error("failed to ack job", "error", err)
	}
	p.logger.Info("video probed", "video_id", job.VideoID, "duration_s", result.DurationSeconds)
}

// RunSubscriptionSweep fires the lifecycle sweep on an interval until the
// context is cancelled. The first sweep runs immediately.
func (p *Pool) RunSubscriptionSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.subs.Sweep(ctx, time.Now()); err != nil {
			p.logger.Error("subscription sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// RunAuditSweep prunes audit entries older than the retention window.
func (p *Pool) RunAuditSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		cutoff := time.Now().Add(-p.retention)
		pruned, err := p.db.PruneAdminActionLogs(ctx, cutoff)
		if err != nil {
			p.logger.Error("audit sweep failed", "error", err)
		} else if pruned > 0 {
			p.logger.Info("audit entries pruned", "count", pruned, "cutoff", cutoff)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Pool) Release() {
	p.pool.Release()
}

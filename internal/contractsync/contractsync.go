package contractsync

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/drewstone/hyperlane-monorepo/internal/chain"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
	"github.com/drewstone/hyperlane-monorepo/internal/metrics"
	"github.com/drewstone/hyperlane-monorepo/internal/retry"
	"github.com/drewstone/hyperlane-monorepo/internal/store"
	"github.com/drewstone/hyperlane-monorepo/internal/store/redis"
	"github.com/drewstone/hyperlane-monorepo/internal/tracing"
)

const (
	defaultRetryMaxAttempts = 4
	defaultBackoffInitial   = 200 * time.Millisecond
	defaultBackoffMax       = 3 * time.Second
	defaultTipPollInterval  = 5 * time.Second

	dispatchStreamPattern = "hyperlane:dispatched:%s"
)

// DispatchAnnouncement is the fan-out stream payload emitted once per newly
// indexed dispatch. Consumers resume via stream checkpoints, so delivery is
// at-least-once.
type DispatchAnnouncement struct {
	Domain      model.Domain `json:"domain"`
	LeafIndex   uint32       `json:"leaf_index"`
	MessageID   string       `json:"message_id"`
	Destination model.Domain `json:"destination"`
	BlockNumber uint64       `json:"block_number"`
	TxHash      string       `json:"tx_hash"`
}

// ContractSync scans one chain's finalized blocks for mailbox events and
// writes them to the cache store. Each watermark category is driven by its
// own method; all of them share the resume-chunk-commit loop shape.
//
// A sync run never completes on its own. It returns only when the context
// is cancelled or an error ends the job.
type ContractSync struct {
	chainName string
	domain    model.Domain
	db        *store.CacheDB
	indexer   chain.MailboxIndexer
	settings  model.IndexSettings
	metrics   *metrics.ContractSyncMetrics
	logger    *slog.Logger
	stream    redis.MessageStream

	retryMaxAttempts int
	backoffInitial   time.Duration
	backoffMax       time.Duration
	tipPollInterval  time.Duration
	sleepFn          func(ctx context.Context, d time.Duration) error
}

type Option func(*ContractSync)

// WithStream publishes every newly indexed dispatch to the fan-out stream.
// Publishing is best-effort: failures are counted and logged, never fatal.
func WithStream(stream redis.MessageStream) Option {
	return func(cs *ContractSync) {
		cs.stream = stream
	}
}

func WithRetryConfig(maxAttempts int, delayInitial, delayMax time.Duration) Option {
	return func(cs *ContractSync) {
		cs.retryMaxAttempts = maxAttempts
		cs.backoffInitial = delayInitial
		cs.backoffMax = delayMax
	}
}

func WithTipPollInterval(d time.Duration) Option {
	return func(cs *ContractSync) {
		cs.tipPollInterval = d
	}
}

func New(
	chainName string,
	domain model.Domain,
	db *store.CacheDB,
	indexer chain.MailboxIndexer,
	settings model.IndexSettings,
	m *metrics.ContractSyncMetrics,
	logger *slog.Logger,
	opts ...Option,
) *ContractSync {
	if m == nil {
		m = metrics.NewContractSyncMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}

	cs := &ContractSync{
		chainName:        chainName,
		domain:           domain,
		db:               db,
		indexer:          indexer,
		settings:         settings.WithDefaults(),
		metrics:          m,
		logger:           logger.With("component", "contractsync", "chain", chainName),
		retryMaxAttempts: defaultRetryMaxAttempts,
		backoffInitial:   defaultBackoffInitial,
		backoffMax:       defaultBackoffMax,
		tipPollInterval:  defaultTipPollInterval,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cs)
		}
	}
	return cs
}

// SyncDispatchedMessages indexes dispatch events from the recorded watermark
// (or the configured start block when none exists) toward the finalized tip,
// one chunk at a time. The watermark advances only in the same transaction
// that stores the chunk, so a crash never leaves it ahead of the data.
func (cs *ContractSync) SyncDispatchedMessages(ctx context.Context) error {
	category := model.SyncCategoryDispatchedMessages
	log := cs.logger.With("category", category.String())

	next, err := cs.resumeHeight(ctx, category)
	if err != nil {
		return fmt.Errorf("resume watermark: %w", err)
	}
	log.Info("dispatched message sync started",
		"from_block", next,
		"chunk_size", cs.settings.ChunkSize,
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := cs.finalizedBlockWithRetry(ctx, log)
		if err != nil {
			cs.metrics.FetchErrors.WithLabelValues(cs.chainName, category.String()).Inc()
			return err
		}

		if target < next {
			cs.metrics.BlocksBehind.WithLabelValues(cs.chainName, category.String()).Set(0)
			log.Debug("no new finalized blocks", "finalized", target, "next", next)
			if err := cs.sleep(ctx, cs.tipPollInterval); err != nil {
				return err
			}
			continue
		}

		to := next + uint64(cs.settings.ChunkSize) - 1
		if to > target {
			to = target
		}
		if err := cs.syncChunk(ctx, log, category, next, to, target); err != nil {
			return err
		}
		next = to + 1
	}
}

// resumeHeight returns the first block the session must scan. A recorded
// watermark always wins over the configured start block: the store already
// holds everything up to it.
func (cs *ContractSync) resumeHeight(ctx context.Context, category model.SyncCategory) (uint64, error) {
	wm, err := cs.db.Watermarks.Get(ctx, cs.domain, category)
	if err != nil {
		return 0, err
	}
	if wm == nil {
		return cs.settings.FromBlock, nil
	}
	return wm.BlockHeight + 1, nil
}

func (cs *ContractSync) syncChunk(
	ctx context.Context,
	log *slog.Logger,
	category model.SyncCategory,
	from, to, target uint64,
) error {
	spanCtx, span := tracing.Tracer("contractsync").Start(ctx, "contractsync.syncChunk",
		otelTrace.WithAttributes(
			attribute.String("chain", cs.chainName),
			attribute.String("category", category.String()),
			attribute.Int64("from_block", int64(from)),
			attribute.Int64("to_block", int64(to)),
		),
	)
	defer span.End()
	start := time.Now()

	msgs, err := cs.fetchSortedWithRetry(spanCtx, log, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		cs.metrics.FetchErrors.WithLabelValues(cs.chainName, category.String()).Inc()
		return err
	}

	if err := cs.storeChunk(spanCtx, msgs, category, to); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cs.publishDispatches(spanCtx, log, msgs)

	cs.metrics.IndexedHeight.WithLabelValues(cs.chainName, category.String()).Set(float64(to))
	cs.metrics.StoredEvents.WithLabelValues(cs.chainName, category.String()).Add(float64(len(msgs)))
	cs.metrics.ChunkDuration.WithLabelValues(cs.chainName, category.String()).Observe(time.Since(start).Seconds())
	cs.metrics.BlocksBehind.WithLabelValues(cs.chainName, category.String()).Set(float64(target - to))

	span.SetAttributes(attribute.Int("messages", len(msgs)))
	log.Info("chunk indexed",
		"from", from,
		"to", to,
		"messages", len(msgs),
		"behind", target-to,
	)
	return nil
}

// storeChunk writes the chunk's messages and the watermark in one
// transaction. An empty chunk still advances the watermark; the commit is
// what makes the range durable.
func (cs *ContractSync) storeChunk(
	ctx context.Context,
	msgs []model.DispatchedMessage,
	category model.SyncCategory,
	to uint64,
) error {
	dbTx, err := cs.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := dbTx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			cs.logger.Warn("rollback failed", "error", rbErr)
		}
	}()

	if len(msgs) > 0 {
		rows := make([]*model.DispatchedMessage, len(msgs))
		for i := range msgs {
			rows[i] = &msgs[i]
		}
		if err := cs.db.Messages.BulkUpsertTx(ctx, dbTx, rows); err != nil {
			return fmt.Errorf("store dispatched messages: %w", err)
		}
	}
	if err := cs.db.Watermarks.UpsertTx(ctx, dbTx, cs.domain, category, to); err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit chunk: %w", err)
	}
	committed = true
	return nil
}

func (cs *ContractSync) publishDispatches(ctx context.Context, log *slog.Logger, msgs []model.DispatchedMessage) {
	if cs.stream == nil || len(msgs) == 0 {
		return
	}
	streamKey := fmt.Sprintf(dispatchStreamPattern, cs.chainName)
	for i := range msgs {
		msg := &msgs[i]
		ann := DispatchAnnouncement{
			Domain:      cs.domain,
			LeafIndex:   msg.LeafIndex,
			MessageID:   msg.ID().Hex(),
			Destination: msg.Message.Destination,
			BlockNumber: msg.Meta.BlockNumber,
			TxHash:      msg.Meta.TxHash.Hex(),
		}
		if _, err := cs.stream.PublishJSON(ctx, streamKey, ann); err != nil {
			metrics.StreamPublishErrors.WithLabelValues(cs.chainName).Inc()
			log.Warn("dispatch publish failed",
				"leaf_index", msg.LeafIndex,
				"message_id", ann.MessageID,
				"error", err,
			)
			continue
		}
		metrics.StreamPublishedTotal.WithLabelValues(cs.chainName).Inc()
	}
}

func (cs *ContractSync) finalizedBlockWithRetry(ctx context.Context, log *slog.Logger) (uint64, error) {
	const stage = "contractsync.finalized_block"

	attempts := cs.effectiveRetryMaxAttempts()
	var lastErr error
	lastDecision := retry.Decision{
		Class:  retry.ClassTerminal,
		Reason: "unset",
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		tip, err := cs.indexer.FinalizedBlock(ctx)
		if err == nil {
			return tip, nil
		}
		lastErr = err
		lastDecision = retry.Classify(err)

		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		if !lastDecision.IsTransient() {
			return 0, fmt.Errorf("terminal_failure stage=%s attempt=%d reason=%s: %w", stage, attempt, lastDecision.Reason, err)
		}
		if attempt == attempts {
			break
		}

		log.Warn("finalized block fetch failed; retrying",
			"stage", stage,
			"classification", lastDecision.Class,
			"classification_reason", lastDecision.Reason,
			"attempt", attempt,
			"error", err,
		)
		if sleepErr := cs.sleep(ctx, cs.retryDelay(attempt)); sleepErr != nil {
			return 0, sleepErr
		}
	}

	return 0, fmt.Errorf("transient_recovery_exhausted stage=%s attempts=%d reason=%s: %w", stage, attempts, lastDecision.Reason, lastErr)
}

func (cs *ContractSync) fetchSortedWithRetry(
	ctx context.Context,
	log *slog.Logger,
	from, to uint64,
) ([]model.DispatchedMessage, error) {
	const stage = "contractsync.fetch_dispatches"

	attempts := cs.effectiveRetryMaxAttempts()
	var lastErr error
	lastDecision := retry.Decision{
		Class:  retry.ClassTerminal,
		Reason: "unset",
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		msgs, err := cs.indexer.FetchSortedMessages(ctx, from, to)
		if err == nil {
			return msgs, nil
		}
		lastErr = err
		lastDecision = retry.Classify(err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !lastDecision.IsTransient() {
			return nil, fmt.Errorf("terminal_failure stage=%s attempt=%d reason=%s: %w", stage, attempt, lastDecision.Reason, err)
		}
		if attempt == attempts {
			break
		}

		log.Warn("dispatch fetch failed; retrying",
			"stage", stage,
			"classification", lastDecision.Class,
			"classification_reason", lastDecision.Reason,
			"from", from,
			"to", to,
			"attempt", attempt,
			"error", err,
		)
		if sleepErr := cs.sleep(ctx, cs.retryDelay(attempt)); sleepErr != nil {
			return nil, sleepErr
		}
	}

	return nil, fmt.Errorf("transient_recovery_exhausted stage=%s attempts=%d reason=%s: %w", stage, attempts, lastDecision.Reason, lastErr)
}

func (cs *ContractSync) retryDelay(attempt int) time.Duration {
	base := cs.backoffInitial
	max := cs.backoffMax
	if base <= 0 {
		base = defaultBackoffInitial
	}
	if max <= 0 || max < base {
		max = base
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= max/2 {
			return max
		}
		delay *= 2
	}
	if delay > max {
		return max
	}
	return delay
}

func (cs *ContractSync) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if cs.sleepFn != nil {
		return cs.sleepFn(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (cs *ContractSync) effectiveRetryMaxAttempts() int {
	if cs.retryMaxAttempts <= 0 {
		return defaultRetryMaxAttempts
	}
	return cs.retryMaxAttempts
}

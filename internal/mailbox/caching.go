package mailbox

import (
	"context"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/drewstone/hyperlane-monorepo/internal/chain"
	"github.com/drewstone/hyperlane-monorepo/internal/contractsync"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
	"github.com/drewstone/hyperlane-monorepo/internal/metrics"
	"github.com/drewstone/hyperlane-monorepo/internal/store"
)

const defaultAckGrace = 3 * time.Second

// CachingMailbox decorates a mailbox handle with a cache store and an
// indexer. Every mailbox operation forwards to the underlying handle
// unchanged; the cache is written only by Sync and never answers a live
// call. Delivered in particular always asks the chain, because delivery
// status changes out from under any snapshot.
//
// The decorator holds no mutable state of its own, so one value is safe
// for concurrent use and Sync may be invoked again after a session ends,
// including while another session is still running.
type CachingMailbox struct {
	mailbox chain.Mailbox
	db      *store.CacheDB
	indexer chain.MailboxIndexer
	logger  *slog.Logger

	ackGrace time.Duration
	syncOpts []contractsync.Option

	// jobsFn overrides the job list for a session. Tests script it.
	jobsFn func(cs *contractsync.ContractSync) []syncJob
}

var _ chain.Mailbox = (*CachingMailbox)(nil)

type Option func(*CachingMailbox)

// WithAckGrace bounds how long Sync waits for cancelled jobs to
// acknowledge after the winner settles.
func WithAckGrace(d time.Duration) Option {
	return func(m *CachingMailbox) {
		m.ackGrace = d
	}
}

// WithSyncOptions forwards options to the ContractSync built for each
// session (stream fan-out, retry tuning, tip polling).
func WithSyncOptions(opts ...contractsync.Option) Option {
	return func(m *CachingMailbox) {
		m.syncOpts = append(m.syncOpts, opts...)
	}
}

func NewCaching(
	mailbox chain.Mailbox,
	db *store.CacheDB,
	indexer chain.MailboxIndexer,
	logger *slog.Logger,
	opts ...Option,
) *CachingMailbox {
	if logger == nil {
		logger = slog.Default()
	}
	m := &CachingMailbox{
		mailbox:  mailbox,
		db:       db,
		indexer:  indexer,
		logger:   logger.With("component", "caching_mailbox", "chain", mailbox.ChainName()),
		ackGrace: defaultAckGrace,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

func (m *CachingMailbox) ChainName() string {
	return m.mailbox.ChainName()
}

func (m *CachingMailbox) LocalDomain() model.Domain {
	return m.mailbox.LocalDomain()
}

func (m *CachingMailbox) Address() common.Hash {
	return m.mailbox.Address()
}

func (m *CachingMailbox) LocalDomainHash() common.Hash {
	return m.mailbox.LocalDomainHash()
}

func (m *CachingMailbox) Count(ctx context.Context) (uint32, error) {
	return m.mailbox.Count(ctx)
}

func (m *CachingMailbox) Delivered(ctx context.Context, id common.Hash) (bool, error) {
	return m.mailbox.Delivered(ctx, id)
}

func (m *CachingMailbox) LatestCheckpoint(ctx context.Context, lag *uint64) (model.Checkpoint, error) {
	return m.mailbox.LatestCheckpoint(ctx, lag)
}

func (m *CachingMailbox) DefaultISM(ctx context.Context) (common.Hash, error) {
	return m.mailbox.DefaultISM(ctx)
}

func (m *CachingMailbox) Process(ctx context.Context, message *model.Message, metadata []byte, gasLimit *big.Int) (*model.TxOutcome, error) {
	return m.mailbox.Process(ctx, message, metadata, gasLimit)
}

func (m *CachingMailbox) ProcessEstimateCosts(ctx context.Context, message *model.Message, metadata []byte) (*model.TxCostEstimate, error) {
	return m.mailbox.ProcessEstimateCosts(ctx, message, metadata)
}

func (m *CachingMailbox) ProcessCalldata(message *model.Message, metadata []byte) []byte {
	return m.mailbox.ProcessCalldata(message, metadata)
}

// syncJob is one concurrently running indexing task within a session.
type syncJob struct {
	name string
	run  func(ctx context.Context) error
}

type jobResult struct {
	name string
	err  error
}

// Sync runs one indexing session: it builds a ContractSync over this
// chain's cache and indexer, launches every job in the session's job
// list, and races them. The first job to settle decides the session;
// the rest are cancelled and awaited briefly. Sync itself never
// retries: a returned error means the session is over and restarting
// is the caller's policy.
//
// Sessions are independent. Overlapping Sync calls are allowed; the
// store's idempotent writes and monotonic watermarks keep concurrent
// sessions from corrupting each other.
func (m *CachingMailbox) Sync(ctx context.Context, settings model.IndexSettings, sm *metrics.ContractSyncMetrics) error {
	cs := contractsync.New(
		m.ChainName(),
		m.LocalDomain(),
		m.db,
		m.indexer,
		settings,
		sm,
		m.logger,
		m.syncOpts...,
	)

	jobs := m.syncJobs(cs)
	if len(jobs) == 0 {
		m.logger.Warn("sync invoked with no jobs")
		return nil
	}

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so late finishers never block after the session stops
	// draining.
	results := make(chan jobResult, len(jobs))
	for _, job := range jobs {
		job := job
		go func() {
			results <- jobResult{name: job.name, err: job.run(raceCtx)}
		}()
	}
	m.logger.Info("sync session started", "jobs", len(jobs))

	winner := <-results
	cancel()
	m.drainLosers(results, len(jobs)-1)

	outcome := sessionOutcome(winner.err)
	metrics.SyncSessionsTotal.WithLabelValues(m.ChainName(), outcome).Inc()
	m.logger.Info("sync session settled",
		"job", winner.name,
		"outcome", outcome,
		"error", winner.err,
	)
	return winner.err
}

func (m *CachingMailbox) syncJobs(cs *contractsync.ContractSync) []syncJob {
	if m.jobsFn != nil {
		return m.jobsFn(cs)
	}
	return []syncJob{
		{name: "dispatched_messages", run: cs.SyncDispatchedMessages},
	}
}

// drainLosers waits for cancelled jobs to acknowledge, but only up to the
// grace window: a job stuck in a blocking call must not wedge the session
// teardown.
func (m *CachingMailbox) drainLosers(results <-chan jobResult, remaining int) {
	if remaining <= 0 {
		return
	}
	grace := time.NewTimer(m.ackGrace)
	defer grace.Stop()

	for remaining > 0 {
		select {
		case res := <-results:
			remaining--
			m.logger.Debug("sync job acknowledged cancellation", "job", res.name, "error", res.err)
		case <-grace.C:
			m.logger.Warn("sync jobs did not acknowledge cancellation in time", "outstanding", remaining)
			return
		}
	}
}

func sessionOutcome(err error) string {
	switch {
	case err == nil:
		return "completed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}

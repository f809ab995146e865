package main

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/drewstone/hyperlane-monorepo/internal/alert"
	"github.com/drewstone/hyperlane-monorepo/internal/api"
	"github.com/drewstone/hyperlane-monorepo/internal/chain/evm"
	"github.com/drewstone/hyperlane-monorepo/internal/chain/evm/rpc"
	"github.com/drewstone/hyperlane-monorepo/internal/chain/ratelimit"
	"github.com/drewstone/hyperlane-monorepo/internal/circuitbreaker"
	"github.com/drewstone/hyperlane-monorepo/internal/config"
	"github.com/drewstone/hyperlane-monorepo/internal/contractsync"
	"github.com/drewstone/hyperlane-monorepo/internal/domain/model"
	"github.com/drewstone/hyperlane-monorepo/internal/mailbox"
	"github.com/drewstone/hyperlane-monorepo/internal/metrics"
	"github.com/drewstone/hyperlane-monorepo/internal/store"
	"github.com/drewstone/hyperlane-monorepo/internal/store/postgres"
	"github.com/drewstone/hyperlane-monorepo/internal/store/redis"
	"github.com/drewstone/hyperlane-monorepo/internal/tracing"
)

// newRedisStream is swapped out in tests.
var newRedisStream = func(url string) (redis.MessageStream, error) {
	return redis.NewStream(url)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("starting hyperlane cache agent",
		"db_url", maskCredentials(cfg.DB.URL),
		"api_port", cfg.Server.Port,
		"chains", len(cfg.Chains),
		"redis_enabled", cfg.Redis.Enabled,
	)
	for _, cc := range cfg.Chains {
		logger.Info("chain configured",
			"chain", cc.Name,
			"domain", cc.Domain,
			"mailbox", cc.MailboxAddress,
			"confirmations", cc.Confirmations,
			"chunk_size", cc.ChunkSize,
			"from_block", cc.FromBlock,
			"dedicated_db", cc.DatabaseURL != "",
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Init(ctx, "hyperlane-cache-agent", cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
		if err != nil {
			logger.Error("failed to initialize tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("tracing shutdown failed", "error", err)
			}
		}()
		logger.Info("tracing initialized", "endpoint", cfg.Tracing.Endpoint)
	}

	db, err := postgres.New(poolConfig(cfg.DB, cfg.DB.URL))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database", "max_open_conns", cfg.DB.MaxOpenConns)

	registry := postgres.NewPoolRegistry(db)
	defer registry.Close()

	statsPools := map[string]dbStatsProvider{"default": db}
	for url, group := range chainsByDatabase(cfg.DB.URL, cfg.Chains) {
		pool := db
		if url != cfg.DB.URL {
			pool, err = postgres.New(poolConfig(cfg.DB, url))
			if err != nil {
				logger.Error("failed to connect to dedicated database",
					"chains", chainNames(group), "error", err)
				os.Exit(1)
			}
			for _, cc := range group {
				registry.Register(model.Domain(cc.Domain), pool)
				statsPools[cc.Name] = pool
			}
			logger.Info("dedicated database pool opened",
				"chains", chainNames(group), "db_url", maskCredentials(url))
		}
		if err := preparePool(ctx, pool, cfg.DB.MigrationsDir, group); err != nil {
			logger.Error("failed to prepare database schema",
				"chains", chainNames(group), "error", err)
			os.Exit(1)
		}
	}

	stream, err := resolveStream(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dispatch stream", "error", err)
		os.Exit(1)
	}
	defer stream.Close()

	alerter := buildAlerter(cfg.Alert, logger)

	runtimes := buildChainRuntimes(cfg, registry, stream, logger)
	if err := validateChainWiring(runtimes); err != nil {
		logger.Error("chain wiring preflight failed", "error", err)
		os.Exit(1)
	}
	logger.Info("chains wired", "chains", strings.Join(runtimeNames(runtimes), ","))

	apiServer := api.NewServer(apiChains(runtimes), logger)
	limiter := api.NewRateLimitMiddleware(logger)
	defer limiter.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	// API, metrics and readiness server
	g.Go(func() error {
		return runServer(gCtx, cfg.Server, limiter.Wrap(apiServer.Handler()), &healthChecker{db: db.DB}, runtimes, logger)
	})

	// Sync supervisors, one per chain
	for _, rt := range runtimes {
		rt := rt
		g.Go(func() error {
			return runSyncLoop(gCtx, rt, cfg.Sync, alerter, logger)
		})
	}

	startDBPoolStatsPump(gCtx, statsPools, cfg.DB.PoolStatsInterval, alerter, logger)

	// Signal handler
	g.Go(func() error {
		select {
		case sig := <-sigCh:
			logger.Info("received signal, shutting down", "signal", sig)
			cancel()
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("agent exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("agent shut down gracefully")
}

func poolConfig(cfg config.DBConfig, url string) postgres.Config {
	return postgres.Config{
		URL:                url,
		MaxOpenConns:       cfg.MaxOpenConns,
		MaxIdleConns:       cfg.MaxIdleConns,
		ConnMaxLifetime:    cfg.ConnMaxLifetime,
		StatementTimeoutMS: cfg.StatementTimeoutMS,
	}
}

// chainsByDatabase groups the roster by the database its rows land in. The
// default URL covers every chain without a dedicated pool.
func chainsByDatabase(defaultURL string, chains []config.ChainConfig) map[string][]config.ChainConfig {
	grouped := make(map[string][]config.ChainConfig)
	for _, cc := range chains {
		url := cc.DatabaseURL
		if url == "" {
			url = defaultURL
		}
		grouped[url] = append(grouped[url], cc)
	}
	return grouped
}

func preparePool(ctx context.Context, pool *postgres.DB, migrationsDir string, group []config.ChainConfig) error {
	if migrationsDir != "" {
		if err := pool.RunMigrations(migrationsDir); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}
	domains := make([]model.Domain, 0, len(group))
	for _, cc := range group {
		domains = append(domains, model.Domain(cc.Domain))
	}
	if err := postgres.NewPartitionManager(pool).EnsureDomainPartitions(ctx, domains); err != nil {
		return fmt.Errorf("ensure partitions: %w", err)
	}
	return nil
}

func chainNames(group []config.ChainConfig) string {
	names := make([]string, 0, len(group))
	for _, cc := range group {
		names = append(names, cc.Name)
	}
	return strings.Join(names, ",")
}

// resolveStream picks the dispatch fan-out backend: redis when enabled,
// otherwise an in-process stream so embedded consumers still see publishes.
func resolveStream(cfg *config.Config, logger *slog.Logger) (redis.MessageStream, error) {
	if !cfg.Redis.Enabled {
		logger.Info("redis disabled, using in-memory dispatch stream")
		return redis.NewInMemoryStream(), nil
	}
	stream, err := newRedisStream(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("initialize redis stream: %w", err)
	}
	logger.Info("redis dispatch stream enabled", "redis_url", maskCredentials(cfg.Redis.URL))
	return stream, nil
}

func buildAlerter(cfg config.AlertConfig, logger *slog.Logger) alert.Alerter {
	var channels []alert.Alerter
	if cfg.SlackWebhookURL != "" {
		channels = append(channels, alert.NewSlackAlerter(cfg.SlackWebhookURL))
	}
	if cfg.WebhookURL != "" {
		channels = append(channels, alert.NewWebhookAlerter(cfg.WebhookURL))
	}
	if len(channels) == 0 {
		logger.Info("alerting disabled, no channels configured")
		return &alert.NoopAlerter{}
	}
	logger.Info("alerting enabled", "channels", len(channels), "cooldown", cfg.Cooldown.String())
	return alert.NewMultiAlerter(cfg.Cooldown, logger, channels...)
}

// syncRunner is the slice of the caching mailbox the supervisor loop drives.
// Tests substitute scripted implementations.
type syncRunner interface {
	ChainName() string
	LocalDomain() model.Domain
	Sync(ctx context.Context, settings model.IndexSettings, sm *metrics.ContractSyncMetrics) error
}

// chainRuntime bundles everything the agent runs for one origin chain.
type chainRuntime struct {
	name     string
	domain   model.Domain
	syncer   syncRunner
	settings model.IndexSettings
	health   *mailbox.SyncHealth
	db       *store.CacheDB
}

func buildChainRuntimes(cfg *config.Config, registry *postgres.PoolRegistry, stream redis.MessageStream, logger *slog.Logger) []chainRuntime {
	runtimes := make([]chainRuntime, 0, len(cfg.Chains))
	for _, cc := range cfg.Chains {
		pool := registry.Get(model.Domain(cc.Domain))
		cacheDB := &store.CacheDB{
			TxBeginner: pool,
			Messages:   postgres.NewMessageRepo(pool),
			Watermarks: postgres.NewWatermarkRepo(pool),
		}

		name := cc.Name
		breaker := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: cfg.RPC.BreakerFailures,
			OpenTimeout:      cfg.RPC.BreakerOpenFor,
			OnStateChange: func(from, to circuitbreaker.State) {
				metrics.RPCBreakerState.WithLabelValues(name).Set(float64(to))
				logger.Warn("rpc circuit breaker state changed",
					"chain", name, "from", from.String(), "to", to.String())
			},
		})
		client := rpc.NewClient(cc.RPCURL, cc.Name, logger,
			rpc.WithRateLimiter(ratelimit.NewLimiter(cfg.RPC.RequestsPerSecond, cfg.RPC.Burst, cc.Name)),
			rpc.WithBreaker(breaker),
		)

		handle := evm.NewMailbox(evm.MailboxConfig{
			Name:    cc.Name,
			Domain:  model.Domain(cc.Domain),
			Address: cc.Mailbox(),
			Sender:  cc.Sender(),
		}, client, logger)
		indexer := evm.NewIndexer(evm.IndexerConfig{
			Name:          cc.Name,
			Domain:        model.Domain(cc.Domain),
			Address:       cc.Mailbox(),
			Confirmations: cc.Confirmations,
		}, client, logger)

		syncOpts := []contractsync.Option{
			contractsync.WithTipPollInterval(cfg.Sync.TipPollInterval),
		}
		if stream != nil {
			syncOpts = append(syncOpts, contractsync.WithStream(stream))
		}

		runtimes = append(runtimes, chainRuntime{
			name:   cc.Name,
			domain: model.Domain(cc.Domain),
			syncer: mailbox.NewCaching(handle, cacheDB, indexer, logger,
				mailbox.WithAckGrace(cfg.Sync.AckGrace),
				mailbox.WithSyncOptions(syncOpts...),
			),
			settings: cc.IndexSettings(),
			health:   mailbox.NewSyncHealth(cc.Name, model.Domain(cc.Domain)),
			db:       cacheDB,
		})
	}
	return runtimes
}

// validateChainWiring runs preflight checks on the assembled runtimes so a
// misconfigured chain fails loud at startup instead of as skewed reads later.
func validateChainWiring(runtimes []chainRuntime) error {
	if len(runtimes) == 0 {
		return fmt.Errorf("chain wiring preflight failed: no chains wired")
	}

	var failures []string
	seenNames := make(map[string]bool, len(runtimes))
	seenDomains := make(map[model.Domain]bool, len(runtimes))
	for _, rt := range runtimes {
		if seenNames[rt.name] {
			failures = append(failures, fmt.Sprintf("duplicate chain %q", rt.name))
		}
		seenNames[rt.name] = true
		if seenDomains[rt.domain] {
			failures = append(failures, fmt.Sprintf("chain %q: duplicate domain %d", rt.name, rt.domain))
		}
		seenDomains[rt.domain] = true

		if rt.syncer == nil {
			failures = append(failures, fmt.Sprintf("chain %q has no mailbox", rt.name))
			continue
		}
		if got := rt.syncer.ChainName(); got != rt.name {
			failures = append(failures, fmt.Sprintf("chain %q: mailbox reports chain %q", rt.name, got))
		}
		if got := rt.syncer.LocalDomain(); got != rt.domain {
			failures = append(failures, fmt.Sprintf("chain %q: mailbox reports domain %d, config says %d", rt.name, got, rt.domain))
		}
		if rt.db == nil || rt.db.Messages == nil || rt.db.Watermarks == nil {
			failures = append(failures, fmt.Sprintf("chain %q has no cache store", rt.name))
		}
		if rt.health == nil {
			failures = append(failures, fmt.Sprintf("chain %q has no health tracker", rt.name))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("chain wiring preflight failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func runtimeNames(runtimes []chainRuntime) []string {
	names := make([]string, 0, len(runtimes))
	for _, rt := range runtimes {
		names = append(names, rt.name)
	}
	return names
}

func apiChains(runtimes []chainRuntime) []api.Chain {
	chains := make([]api.Chain, 0, len(runtimes))
	for _, rt := range runtimes {
		chains = append(chains, api.Chain{Name: rt.name, Domain: rt.domain, DB: rt.db})
	}
	return chains
}

// stableSessionWindow is how long a sync session must run before a failure
// counts as a fresh incident rather than a continuation of the last one.
const stableSessionWindow = time.Minute

// runSyncLoop supervises one chain's sync sessions: it restarts them after
// failures with a fixed backoff, tracks session health and raises alerts on
// failure, unhealthy transitions and recovery.
func runSyncLoop(ctx context.Context, rt chainRuntime, cfg config.SyncConfig, alerter alert.Alerter, logger *slog.Logger) error {
	logger = logger.With("component", "sync_supervisor", "chain", rt.name)
	sm := metrics.NewContractSyncMetrics()

	for {
		start := time.Now()
		err := rt.syncer.Sync(ctx, rt.settings, sm)
		if ctx.Err() != nil {
			logger.Info("sync supervisor stopped")
			return ctx.Err()
		}

		elapsed := time.Since(start)
		if err == nil || elapsed >= stableSessionWindow {
			if rt.health.RecordSuccess() {
				logger.Info("sync recovered", "session_duration", elapsed.String())
				notify(ctx, alerter, alert.Alert{
					Type:    alert.AlertTypeRecovery,
					Chain:   rt.name,
					Domain:  rt.domain,
					Title:   "Chain sync recovered",
					Message: fmt.Sprintf("sync sessions stable again after a %s run", elapsed.Round(time.Second)),
				}, logger)
			}
		}

		if err != nil {
			transitioned := rt.health.RecordFailure()
			snap := rt.health.Snapshot()
			logger.Error("sync session failed",
				"error", err,
				"session_duration", elapsed.String(),
				"consecutive_failures", snap.ConsecutiveFailures,
			)
			notify(ctx, alerter, alert.Alert{
				Type:    alert.AlertTypeSyncFailed,
				Chain:   rt.name,
				Domain:  rt.domain,
				Title:   "Sync session failed",
				Message: err.Error(),
				Fields: map[string]string{
					"consecutive_failures": strconv.Itoa(snap.ConsecutiveFailures),
					"session_duration":     elapsed.Round(time.Second).String(),
				},
			}, logger)
			if transitioned {
				notify(ctx, alerter, alert.Alert{
					Type:    alert.AlertTypeUnhealthy,
					Chain:   rt.name,
					Domain:  rt.domain,
					Title:   "Chain sync unhealthy",
					Message: fmt.Sprintf("%d consecutive failed sync sessions", snap.ConsecutiveFailures),
				}, logger)
			}
		} else {
			logger.Info("sync session ended cleanly, restarting")
		}

		select {
		case <-ctx.Done():
			logger.Info("sync supervisor stopped")
			return ctx.Err()
		case <-time.After(cfg.RestartBackoff):
		}
	}
}

func notify(ctx context.Context, alerter alert.Alerter, a alert.Alert, logger *slog.Logger) {
	if err := alerter.Send(ctx, a); err != nil {
		logger.Warn("alert dispatch failed", "alert_type", string(a.Type), "error", err)
	}
}

type readiness struct {
	Status string                   `json:"status"`
	Error  string                   `json:"error,omitempty"`
	Chains []mailbox.HealthSnapshot `json:"chains"`
}

// runServer serves the read API plus the operational endpoints: prometheus
// metrics (optionally behind basic auth) and a readiness probe reporting DB
// connectivity and per-chain sync health.
func runServer(ctx context.Context, cfg config.ServerConfig, apiHandler http.Handler, checker *healthChecker, runtimes []chainRuntime, logger *slog.Logger) error {
	mux := http.NewServeMux()

	var metricsHandler http.Handler = promhttp.Handler()
	if cfg.MetricsUsername != "" && cfg.MetricsPassword != "" {
		metricsHandler = basicAuthMiddleware(cfg.MetricsUsername, cfg.MetricsPassword, metricsHandler)
	}
	mux.Handle("GET /metrics", metricsHandler)

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		resp := readiness{Status: "ready", Chains: make([]mailbox.HealthSnapshot, 0, len(runtimes))}
		for _, rt := range runtimes {
			resp.Chains = append(resp.Chains, rt.health.Snapshot())
		}
		code := http.StatusOK
		if err := checker.check(r.Context()); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	})

	mux.Handle("/", apiHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// basicAuthMiddleware guards next with HTTP basic auth. Comparisons are
// constant-time.
func basicAuthMiddleware(username, password string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(user), []byte(username)) != 1 ||
			subtle.ConstantTimeCompare([]byte(pass), []byte(password)) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type healthChecker struct {
	db *sql.DB
}

func (h *healthChecker) check(ctx context.Context) error {
	if h.db == nil {
		return fmt.Errorf("database not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// maskCredentials strips the userinfo from a connection URL for logging.
func maskCredentials(raw string) string {
	schemeIdx := strings.Index(raw, "://")
	if schemeIdx < 0 {
		return raw
	}
	rest := raw[schemeIdx+3:]
	atIdx := strings.LastIndex(rest, "@")
	if atIdx < 0 {
		return raw
	}
	return raw[:schemeIdx+3] + "***@" + rest[atIdx+1:]
}

// dbStatsProvider lets pool stats collection be tested without a live DB.
type dbStatsProvider interface {
	Stats() sql.DBStats
}

type dbPoolGauges struct {
	open        *prometheus.GaugeVec
	inUse       *prometheus.GaugeVec
	idle        *prometheus.GaugeVec
	waitCount   *prometheus.GaugeVec
	waitSeconds *prometheus.GaugeVec
}

func agentPoolGauges() dbPoolGauges {
	return dbPoolGauges{
		open:        metrics.DBPoolOpen,
		inUse:       metrics.DBPoolInUse,
		idle:        metrics.DBPoolIdle,
		waitCount:   metrics.DBPoolWaitCount,
		waitSeconds: metrics.DBPoolWaitDurationSeconds,
	}
}

// collectDBPoolStats samples every pool into the gauges. A panic from a
// misbehaving provider is converted into an error so the sampler survives.
func collectDBPoolStats(pools map[string]dbStatsProvider, gauges dbPoolGauges) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("db pool stats collection panicked: %v", r)
		}
	}()

	if len(pools) == 0 {
		return fmt.Errorf("no db pools to sample")
	}
	for name, pool := range pools {
		if pool == nil {
			return fmt.Errorf("db pool %q is nil", name)
		}
		stats := pool.Stats()
		gauges.open.WithLabelValues(name).Set(float64(stats.OpenConnections))
		gauges.inUse.WithLabelValues(name).Set(float64(stats.InUse))
		gauges.idle.WithLabelValues(name).Set(float64(stats.Idle))
		gauges.waitCount.WithLabelValues(name).Set(float64(stats.WaitCount))
		gauges.waitSeconds.WithLabelValues(name).Set(stats.WaitDuration.Seconds())
	}
	return nil
}

// dbPoolUsageAlertThreshold is the in-use fraction above which a pool counts
// as close to exhaustion.
const dbPoolUsageAlertThreshold = 0.8

// checkDBPoolExhaustion alerts on pools running close to their connection
// cap. Pools without a cap are skipped. The alerter's cooldown keeps a
// persistently saturated pool from flooding the channel.
func checkDBPoolExhaustion(ctx context.Context, pools map[string]dbStatsProvider, alerter alert.Alerter, logger *slog.Logger) {
	for name, pool := range pools {
		if pool == nil {
			continue
		}
		stats := pool.Stats()
		if stats.MaxOpenConnections <= 0 {
			continue
		}
		usage := float64(stats.InUse) / float64(stats.MaxOpenConnections)
		if usage <= dbPoolUsageAlertThreshold {
			continue
		}
		notify(ctx, alerter, alert.Alert{
			Type:  alert.AlertTypeUnhealthy,
			Chain: name,
			Title: "DB pool near exhaustion",
			Message: fmt.Sprintf("pool %q using %d of %d connections (%.0f%%)",
				name, stats.InUse, stats.MaxOpenConnections, usage*100),
		}, logger)
	}
}

// startDBPoolStatsPump samples pool gauges on a fixed interval until ctx is
// done, alerting when a pool runs close to its connection cap.
func startDBPoolStatsPump(ctx context.Context, pools map[string]dbStatsProvider, interval time.Duration, alerter alert.Alerter, logger *slog.Logger) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if err := collectDBPoolStats(pools, agentPoolGauges()); err != nil {
		logger.Warn("db pool stats collection failed", "error", err)
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("db pool stats sampler stopped")
				return
			case <-ticker.C:
				if err := collectDBPoolStats(pools, agentPoolGauges()); err != nil {
					logger.Warn("db pool stats collection failed", "error", err)
					continue
				}
				checkDBPoolExhaustion(ctx, pools, alerter, logger)
			}
		}
	}()
}

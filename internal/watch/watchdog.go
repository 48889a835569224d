package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/notify"
	"github.com/hamed0406/dnsprober/internal/probe"
	"github.com/hamed0406/dnsprober/internal/registry"
	"github.com/hamed0406/dnsprober/internal/repo"
)

type Config struct {
	Interval        time.Duration // 0 disables the watchdog
	Timeout         time.Duration // per-probe deadline
	Concurrency     int
	Cooldown        time.Duration // suppresses repeated DOWN alerts
	AlertOnRecovery bool
}

// Watchdog re-probes the catalog providers in the background, records the
// outcomes and alerts on reachability transitions. Alert state is held in
// memory only: the catalog is static, so there is no cross-restart alert
// identity to preserve.
type Watchdog struct {
	Logger   *zap.Logger
	Catalog  *registry.Catalog
	Prober   probe.Prober
	Strategy probe.Strategy
	Store    repo.ProbeStore
	Notifier notify.Notifier
	Cfg      Config

	mu   sync.Mutex
	last map[string]*alertState
}

type alertState struct {
	reachable bool
	sentAt    time.Time
}

func New(logger *zap.Logger, catalog *registry.Catalog, prober probe.Prober, strategy probe.Strategy,
	store repo.ProbeStore, notifier notify.Notifier, cfg Config) *Watchdog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Watchdog{
		Logger:   logger,
		Catalog:  catalog,
		Prober:   prober,
		Strategy: strategy,
		Store:    store,
		Notifier: notifier,
		Cfg:      cfg,
		last:     make(map[string]*alertState),
	}
}

// Run starts the loop: an immediate pass, then one per tick. Returns when
// ctx is cancelled.
func (w *Watchdog) Run(ctx context.Context) {
	if w.Cfg.Interval <= 0 {
		w.Logger.Info("watchdog_disabled")
		return
	}
	t := time.NewTicker(w.Cfg.Interval)
	defer t.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watchdog_stopped")
			return
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

type watchTarget struct {
	provider string
	address  string
}

func (w *Watchdog) targets() []watchTarget {
	var out []watchTarget
	for _, p := range w.Catalog.List() {
		out = append(out, watchTarget{provider: p.Name, address: p.Primary})
		if p.Secondary != "" {
			out = append(out, watchTarget{provider: p.Name, address: p.Secondary})
		}
	}
	return out
}

func (w *Watchdog) runOnce(ctx context.Context) {
	sem := make(chan struct{}, w.Cfg.Concurrency)
	var wg sync.WaitGroup

	for _, tgt := range w.targets() {
		tgt := tgt
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, w.Cfg.Timeout)
			defer cancel()

			st := w.Prober.Probe(cctx, tgt.address)
			w.record(ctx, tgt, st)
			w.evaluate(ctx, tgt, st)
		}()
	}

	wg.Wait()
}

func (w *Watchdog) record(ctx context.Context, tgt watchTarget, st domain.Status) {
	if w.Store == nil {
		return
	}
	rec := &domain.ProbeRecord{
		Address:    tgt.address,
		Strategy:   string(w.Strategy),
		Reachable:  st.Reachable,
		PingMillis: st.PingMillis,
		Reason:     st.Reason,
		CheckedAt:  time.Now().UTC(),
	}
	if err := w.Store.Append(ctx, rec); err != nil {
		w.Logger.Warn("watchdog_append_error",
			zap.String("address", tgt.address),
			zap.Error(err),
		)
	}
}

func (w *Watchdog) evaluate(ctx context.Context, tgt watchTarget, st domain.Status) {
	now := time.Now()

	w.mu.Lock()
	prev, seen := w.last[tgt.address]
	stateChanged := !seen || prev.reachable != st.Reachable

	cooled := true
	if seen && !prev.sentAt.IsZero() {
		cooled = now.Sub(prev.sentAt) >= w.Cfg.Cooldown
	}

	downAlert := stateChanged && !st.Reachable && cooled
	recoveryAlert := stateChanged && st.Reachable && seen && w.Cfg.AlertOnRecovery

	next := &alertState{reachable: st.Reachable}
	if seen {
		next.sentAt = prev.sentAt
	}
	if downAlert || recoveryAlert {
		next.sentAt = now
	}
	w.last[tgt.address] = next
	w.mu.Unlock()

	if !(downAlert || recoveryAlert) {
		return
	}
	if w.Notifier == nil {
		return
	}

	title := "🔴 Resolver DOWN"
	if st.Reachable {
		title = "🟢 Resolver RECOVERED"
	}

	latencyTxt := "n/a"
	if st.PingMillis != domain.UnknownLatency {
		latencyTxt = fmt.Sprintf("%d ms", st.PingMillis)
	}
	text := fmt.Sprintf(
		"Provider: %s\nAddress: %s\nLatency: %s\nReason: %s\nChecked: %s",
		tgt.provider, tgt.address, latencyTxt, st.Reason, now.Format(time.RFC3339),
	)

	if err := w.Notifier.Send(ctx, title, text); err != nil {
		w.Logger.Warn("watchdog_notify_error",
			zap.String("address", tgt.address),
			zap.Error(err),
		)
	}
}

package control

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/probe"
	"github.com/hamed0406/dnsprober/internal/validate"
)

// Manager orchestrates DNS changes against the helper daemon. All of its
// contracts are total: no error ever crosses to the caller, only booleans
// and typed values.
type Manager struct {
	Logger *zap.Logger
	Prober probe.Prober
	Client *bridge.Client
}

func NewManager(logger *zap.Logger, prober probe.Prober, client *bridge.Client) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{Logger: logger, Prober: prober, Client: client}
}

// ChangeDNS validates and probes both addresses before committing the
// system change, short-circuiting on the first failure. Probing before the
// commit keeps the system from being pointed at a dead resolver; the order
// is a fail-safe, not an optimization. The commit via the daemon is the
// only externally-effectful step and is skipped whenever anything before
// it fails.
func (m *Manager) ChangeDNS(ctx context.Context, primary, secondary string) bool {
	primary = strings.TrimSpace(primary)
	secondary = strings.TrimSpace(secondary)

	if !validate.Address(primary) {
		m.Logger.Info("dns_change_rejected", zap.String("primary", primary), zap.String("why", "invalid_primary"))
		return false
	}
	if secondary != "" && !validate.Address(secondary) {
		m.Logger.Info("dns_change_rejected", zap.String("secondary", secondary), zap.String("why", "invalid_secondary"))
		return false
	}

	st := m.Prober.Probe(ctx, primary)
	if !st.Reachable {
		m.Logger.Info("dns_change_rejected",
			zap.String("primary", primary),
			zap.String("why", "primary_unreachable"),
			zap.String("reason", st.Reason),
		)
		return false
	}
	if secondary != "" {
		if st2 := m.Prober.Probe(ctx, secondary); !st2.Reachable {
			m.Logger.Info("dns_change_rejected",
				zap.String("secondary", secondary),
				zap.String("why", "secondary_unreachable"),
				zap.String("reason", st2.Reason),
			)
			return false
		}
	}

	if err := m.Client.SetDNS(ctx, primary, secondary); err != nil {
		var f *bridge.Fault
		if errors.As(err, &f) {
			m.Logger.Warn("dns_commit_platform_fault",
				zap.String("code", f.Code),
				zap.String("message", f.Message),
			)
		} else {
			m.Logger.Warn("dns_commit_failed", zap.Error(err))
		}
		return false
	}

	m.Logger.Info("dns_changed",
		zap.String("primary", primary),
		zap.String("secondary", secondary),
		zap.Int("primary_ping_ms", st.PingMillis),
	)
	return true
}

// Disconnect tears down the daemon's DNS tunnel.
func (m *Manager) Disconnect(ctx context.Context) bool {
	if err := m.Client.StopVPN(ctx); err != nil {
		m.Logger.Warn("dns_disconnect_failed", zap.Error(err))
		return false
	}
	m.Logger.Info("dns_disconnected")
	return true
}

// ServiceStatus reports the daemon's tunnel state; failures degrade to a
// not-running status carrying the error text.
func (m *Manager) ServiceStatus(ctx context.Context) domain.ServiceStatus {
	st, err := m.Client.ServiceStatus(ctx)
	if err != nil {
		return domain.ServiceStatus{Running: false, State: err.Error()}
	}
	return st
}

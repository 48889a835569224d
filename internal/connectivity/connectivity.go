package connectivity

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/domain"
)

// Checker runs the composite ping+DNS+HTTPS check against a well-known
// endpoint. It performs no aggregation of its own — the helper daemon owns
// the verdict — and it never fails: any fault synthesizes an all-false
// report carrying the failure text.
type Checker struct {
	Client *bridge.Client
	Logger *zap.Logger
}

func NewChecker(client *bridge.Client, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{Client: client, Logger: logger}
}

func (c *Checker) Check(ctx context.Context) domain.ConnectivityReport {
	if c.Client == nil {
		return domain.ConnectivityReport{Message: "bridge not configured"}
	}
	rep, err := c.Client.CheckConnectivity(ctx)
	if err != nil {
		c.Logger.Warn("connectivity_check_failed", zap.Error(err))
		return domain.ConnectivityReport{Message: err.Error()}
	}
	c.Logger.Debug("connectivity_check",
		zap.Bool("ping", rep.PingOK),
		zap.Bool("dns", rep.DNSOK),
		zap.Bool("https", rep.HTTPSOK),
		zap.Bool("overall", rep.Overall),
	)
	return rep
}

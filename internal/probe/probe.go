package probe

import (
	"context"
	"time"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/domain"
)

// Strategy names a probe transport. The strategy is picked once from the
// runtime environment, never auto-detected from the address format.
type Strategy string

const (
	StrategyNative   Strategy = "native"  // helper daemon, testDns
	StrategyNativeV6 Strategy = "native6" // helper daemon, testDnsIPv6
	StrategyPing     Strategy = "ping"    // OS ping subprocess
	StrategyQuery    Strategy = "query"   // real DNS query: daemon testDnsWithDns, or local miekg/dns
	StrategyNone     Strategy = "none"    // no applicable transport
)

// Prober issues one reachability/latency measurement against an address.
// Probe never returns an error: every failure mode degrades to an
// unreachable status with the sentinel latency.
type Prober interface {
	Probe(ctx context.Context, address string) domain.Status
}

// ForStrategy builds the prober for a configured strategy. Unknown names
// fall through to Unsupported.
func ForStrategy(s Strategy, client *bridge.Client, timeout time.Duration) Prober {
	switch s {
	case StrategyNative:
		return &Native{Client: client}
	case StrategyNativeV6:
		return &Native{Client: client, IPv6: true}
	case StrategyPing:
		return &Ping{Timeout: timeout}
	case StrategyQuery:
		return &Query{Client: client, Timeout: timeout}
	default:
		return Unsupported{}
	}
}

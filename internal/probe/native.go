package probe

import (
	"context"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/domain"
)

// Native delegates the probe to the helper daemon over the method-call
// boundary. Timeouts are whatever the daemon enforces; the bridge client
// already normalizes faults and absent fields.
type Native struct {
	Client *bridge.Client
	IPv6   bool
}

func (n *Native) Probe(ctx context.Context, address string) domain.Status {
	if n.Client == nil {
		return domain.Down("bridge not configured")
	}
	if n.IPv6 {
		return n.Client.TestDNSv6(ctx, address)
	}
	return n.Client.TestDNS(ctx, address)
}

package probe

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"

	"github.com/hamed0406/dnsprober/internal/bridge"
	"github.com/hamed0406/dnsprober/internal/domain"
)

// Query probes a resolver by making it answer an actual DNS question. With a
// bridge client configured the call is delegated to the daemon's
// testDnsWithDns method; otherwise a single UDP A query is sent locally. Any
// response counts as reachable — NXDOMAIN or SERVFAIL still prove the server
// is answering; the content is irrelevant. RTT is measured locally.
type Query struct {
	Client  *bridge.Client // optional; delegates to the daemon when set
	Timeout time.Duration
	Domain  string // question asked; defaults to example.com
}

const defaultQueryTimeout = 3 * time.Second

func (q *Query) Probe(ctx context.Context, address string) domain.Status {
	if q.Client != nil {
		return q.Client.TestDNSWithQuery(ctx, address)
	}

	timeout := q.Timeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	name := q.Domain
	if name == "" {
		name = "example.com"
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeA)

	c := &dns.Client{Net: "udp", Timeout: timeout}

	target := address
	if _, _, err := net.SplitHostPort(address); err != nil {
		target = net.JoinHostPort(address, "53")
	}

	resp, rtt, err := c.ExchangeContext(ctx, m, target)
	if err != nil {
		return domain.Down(err.Error())
	}
	if resp == nil {
		return domain.Down("no response")
	}
	return domain.NewStatus(int(rtt.Milliseconds()), true, "")
}

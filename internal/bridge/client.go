package bridge

import (
	"context"
	"errors"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// Client wraps a Channel with typed calls and owns reply normalization.
// The test* calls never return an error: any fault degrades to an
// unreachable status, per the uniform-negative contract.
type Client struct {
	ch Channel
}

func NewClient(ch Channel) *Client {
	return &Client{ch: ch}
}

// statusFromReply maps a raw reply onto the sentinel pair. Absent fields
// normalize to (-1, false).
func statusFromReply(r Reply) domain.Status {
	ping, ok := r.Int("ping")
	if !ok {
		ping = domain.UnknownLatency
	}
	reachable, _ := r.Bool("reachable")
	return domain.NewStatus(ping, reachable, r.String("reason"))
}

func (c *Client) testCall(ctx context.Context, method, address string) domain.Status {
	if c == nil || c.ch == nil {
		return domain.Down("bridge not configured")
	}
	r, err := c.ch.Invoke(ctx, method, map[string]string{"dns": address})
	if err != nil {
		return domain.Down(err.Error())
	}
	return statusFromReply(r)
}

// TestDNS probes an IPv4 resolver through the daemon.
func (c *Client) TestDNS(ctx context.Context, address string) domain.Status {
	return c.testCall(ctx, MethodTestDNS, address)
}

// TestDNSv6 probes an IPv6 resolver through the daemon.
func (c *Client) TestDNSv6(ctx context.Context, address string) domain.Status {
	return c.testCall(ctx, MethodTestDNSv6, address)
}

// TestDNSWithQuery asks the daemon to probe the resolver with a real DNS
// query instead of an ICMP-equivalent.
func (c *Client) TestDNSWithQuery(ctx context.Context, address string) domain.Status {
	return c.testCall(ctx, MethodTestDNSWithQuery, address)
}

// SetDNS commits the system DNS change. Unlike the test calls this reports
// the error: the orchestrator distinguishes platform faults when logging.
func (c *Client) SetDNS(ctx context.Context, primary, secondary string) error {
	if c == nil || c.ch == nil {
		return errors.New("bridge not configured")
	}
	_, err := c.ch.Invoke(ctx, MethodSetDNS, map[string]string{
		"dns1": primary,
		"dns2": secondary,
	})
	return err
}

// StopVPN tears down the daemon's DNS tunnel.
func (c *Client) StopVPN(ctx context.Context) error {
	if c == nil || c.ch == nil {
		return errors.New("bridge not configured")
	}
	_, err := c.ch.Invoke(ctx, MethodStopVPN, nil)
	return err
}

// ServiceStatus reports whether the daemon's tunnel service is running.
func (c *Client) ServiceStatus(ctx context.Context) (domain.ServiceStatus, error) {
	if c == nil || c.ch == nil {
		return domain.ServiceStatus{}, errors.New("bridge not configured")
	}
	r, err := c.ch.Invoke(ctx, MethodServiceStatus, nil)
	if err != nil {
		return domain.ServiceStatus{}, err
	}
	running, _ := r.Bool("running")
	return domain.ServiceStatus{Running: running, State: r.String("state")}, nil
}

// CheckConnectivity runs the daemon's composite ping+DNS+HTTPS check.
// Overall is carried from the daemon verbatim.
func (c *Client) CheckConnectivity(ctx context.Context) (domain.ConnectivityReport, error) {
	if c == nil || c.ch == nil {
		return domain.ConnectivityReport{}, errors.New("bridge not configured")
	}
	r, err := c.ch.Invoke(ctx, MethodTestConnectivity, nil)
	if err != nil {
		return domain.ConnectivityReport{}, err
	}
	ping, _ := r.Bool("ping")
	dnsOK, _ := r.Bool("dns")
	https, _ := r.Bool("https")
	overall, _ := r.Bool("overall")
	return domain.ConnectivityReport{
		PingOK:  ping,
		DNSOK:   dnsOK,
		HTTPSOK: https,
		Overall: overall,
		Message: r.String("message"),
	}, nil
}

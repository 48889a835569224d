package probe

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// Ping shells out to the OS ping utility with a strict packet count of one
// and reads the combined output textually. The two checks are independent:
// a TTL marker anywhere in the output means reachable, and the first
// time=<N>ms (or time<N ms) match supplies the latency. A reply carrying a
// TTL but no parseable time reports reachable with the sentinel latency.
type Ping struct {
	Timeout time.Duration
	Binary  string // defaults to "ping"
}

const defaultPingTimeout = 5 * time.Second

var pingLatencyRe = regexp.MustCompile(`(?i)time[=<]\s*([0-9]+(?:\.[0-9]+)?)\s*ms`)

func (p *Ping) Probe(ctx context.Context, address string) domain.Status {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bin := p.Binary
	if bin == "" {
		bin = "ping"
	}
	cmd := exec.CommandContext(cctx, bin, pingArgs(address)...)
	out, err := cmd.CombinedOutput()
	if err != nil && len(out) == 0 {
		// Launch failure or a hung ping killed by the deadline. A non-zero
		// exit with output still goes through the textual checks below.
		return domain.Down("ping: " + err.Error())
	}
	return parsePingOutput(string(out))
}

func pingArgs(address string) []string {
	// One packet. The count flag is -n on Windows, -c elsewhere.
	if runtime.GOOS == "windows" {
		return []string{"-n", "1", address}
	}
	return []string{"-c", "1", address}
}

func parsePingOutput(out string) domain.Status {
	reachable := strings.Contains(strings.ToLower(out), "ttl")
	ms := domain.UnknownLatency
	if m := pingLatencyRe.FindStringSubmatch(out); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			ms = int(v)
		}
	}
	if !reachable {
		return domain.Down("no reply")
	}
	return domain.NewStatus(ms, true, "")
}

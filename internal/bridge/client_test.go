package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/hamed0406/dnsprober/internal/domain"
)

// fakeChannel records invocations and plays back canned replies.
type fakeChannel struct {
	reply  Reply
	err    error
	method string
	args   map[string]string
	calls  int
}

func (f *fakeChannel) Invoke(ctx context.Context, method string, args map[string]string) (Reply, error) {
	f.calls++
	f.method = method
	f.args = args
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func TestClient_TestDNS_NormalizesReply(t *testing.T) {
	ch := &fakeChannel{reply: Reply{"ping": float64(12), "reachable": true}}
	c := NewClient(ch)

	st := c.TestDNS(context.Background(), "8.8.8.8")
	if !st.Reachable || st.PingMillis != 12 {
		t.Fatalf("unexpected status: %+v", st)
	}
	if ch.method != MethodTestDNS {
		t.Fatalf("want method %q, got %q", MethodTestDNS, ch.method)
	}
	if ch.args["dns"] != "8.8.8.8" {
		t.Fatalf("address not marshaled: %+v", ch.args)
	}
}

func TestClient_TestDNS_AbsentFieldsBecomeSentinel(t *testing.T) {
	ch := &fakeChannel{reply: Reply{}}
	st := NewClient(ch).TestDNS(context.Background(), "1.1.1.1")
	if st.Reachable || st.PingMillis != domain.UnknownLatency {
		t.Fatalf("want (-1,false), got %+v", st)
	}
}

func TestClient_TestDNS_UnreachableClampsLatency(t *testing.T) {
	// A daemon reporting a latency alongside reachable=false must not leak
	// the latency through.
	ch := &fakeChannel{reply: Reply{"ping": float64(30), "reachable": false}}
	st := NewClient(ch).TestDNS(context.Background(), "1.1.1.1")
	if st.Reachable || st.PingMillis != domain.UnknownLatency {
		t.Fatalf("want (-1,false), got %+v", st)
	}
}

func TestClient_TestDNS_FaultDegradesToDown(t *testing.T) {
	ch := &fakeChannel{err: &Fault{Code: "CHANNEL_ERROR", Message: "tunnel busy"}}
	st := NewClient(ch).TestDNS(context.Background(), "9.9.9.9")
	if st.Reachable || st.PingMillis != domain.UnknownLatency {
		t.Fatalf("fault must normalize to (-1,false): %+v", st)
	}
	if st.Reason == "" {
		t.Fatalf("expected fault text in reason")
	}
}

func TestClient_TestDNSv6_UsesV6Method(t *testing.T) {
	ch := &fakeChannel{reply: Reply{"ping": float64(8), "reachable": true}}
	NewClient(ch).TestDNSv6(context.Background(), "2001:4860:4860::8888")
	if ch.method != MethodTestDNSv6 {
		t.Fatalf("want %q, got %q", MethodTestDNSv6, ch.method)
	}
}

func TestClient_SetDNS_MarshalsBothAddresses(t *testing.T) {
	ch := &fakeChannel{reply: Reply{}}
	if err := NewClient(ch).SetDNS(context.Background(), "8.8.8.8", ""); err != nil {
		t.Fatalf("SetDNS: %v", err)
	}
	if ch.method != MethodSetDNS || ch.args["dns1"] != "8.8.8.8" || ch.args["dns2"] != "" {
		t.Fatalf("unexpected call: method=%q args=%+v", ch.method, ch.args)
	}
}

func TestClient_SetDNS_PropagatesFault(t *testing.T) {
	ch := &fakeChannel{err: &Fault{Code: "PERMISSION_DENIED"}}
	err := NewClient(ch).SetDNS(context.Background(), "8.8.8.8", "8.8.4.4")
	var f *Fault
	if !errors.As(err, &f) || f.Code != "PERMISSION_DENIED" {
		t.Fatalf("want platform fault, got %v", err)
	}
}

func TestClient_CheckConnectivity_CarriesOverallVerbatim(t *testing.T) {
	// overall=false with all sub-checks true: the daemon owns the verdict.
	ch := &fakeChannel{reply: Reply{
		"ping": true, "dns": true, "https": true, "overall": false,
		"message": "captive portal suspected",
	}}
	rep, err := NewClient(ch).CheckConnectivity(context.Background())
	if err != nil {
		t.Fatalf("CheckConnectivity: %v", err)
	}
	if !rep.PingOK || !rep.DNSOK || !rep.HTTPSOK || rep.Overall {
		t.Fatalf("report not carried verbatim: %+v", rep)
	}
}

func TestClient_ServiceStatus(t *testing.T) {
	ch := &fakeChannel{reply: Reply{"running": true, "state": "connected"}}
	st, err := NewClient(ch).ServiceStatus(context.Background())
	if err != nil {
		t.Fatalf("ServiceStatus: %v", err)
	}
	if !st.Running || st.State != "connected" {
		t.Fatalf("unexpected status: %+v", st)
	}
}

func TestClient_NilChannelIsDownNotPanic(t *testing.T) {
	var c *Client
	st := c.TestDNS(context.Background(), "8.8.8.8")
	if st.Reachable || st.PingMillis != domain.UnknownLatency {
		t.Fatalf("nil client must degrade: %+v", st)
	}
}

package bridge

import (
	"context"
	"fmt"
)

// Method names understood by the platform helper daemon. The set is fixed by
// the daemon's dispatch table; the argument encoding is an opaque contract.
const (
	MethodTestDNS          = "testDns"
	MethodTestDNSv6        = "testDnsIPv6"
	MethodSetDNS           = "setDns"
	MethodStopVPN          = "stopDnsVpn"
	MethodServiceStatus    = "getServiceStatus"
	MethodTestConnectivity = "testGoogleConnectivity"
	MethodTestDNSWithQuery = "testDnsWithDns"
)

// Reply is the structural result of a method call. Field types follow JSON
// decoding (numbers arrive as float64).
type Reply map[string]any

// Int returns the named field as an integer, reporting presence.
func (r Reply) Int(key string) (int, bool) {
	switch v := r[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	}
	return 0, false
}

// Bool returns the named field as a boolean, reporting presence.
func (r Reply) Bool(key string) (bool, bool) {
	v, ok := r[key].(bool)
	return v, ok
}

// String returns the named field as a string, or "" when absent.
func (r Reply) String(key string) string {
	v, _ := r[key].(string)
	return v
}

// Channel is the abstract capability to reach the helper daemon: one method
// call in, one structural reply or an error out. Implementations must honor
// the context deadline.
type Channel interface {
	Invoke(ctx context.Context, method string, args map[string]string) (Reply, error)
}

// Fault is an error raised inside the helper daemon, as opposed to a
// transport failure on the way there. The code is daemon-defined.
type Fault struct {
	Code    string
	Message string
}

func (f *Fault) Error() string {
	if f.Message == "" {
		return fmt.Sprintf("bridge fault %s", f.Code)
	}
	return fmt.Sprintf("bridge fault %s: %s", f.Code, f.Message)
}

package domain

import "time"

// UnknownLatency marks a latency that was not (or could not be) measured.
// It never means zero milliseconds.
const UnknownLatency = -1

// Status is the normalized outcome of a single reachability probe.
// Invariant: Reachable == false implies PingMillis == UnknownLatency.
// The converse does not hold — a host can be reachable with an unmeasured
// latency (e.g. a ping reply whose time field did not parse).
type Status struct {
	PingMillis int    `json:"ping_millis"`
	Reachable  bool   `json:"reachable"`
	Reason     string `json:"reason,omitempty"`
}

// NewStatus builds a Status, clamping the latency to UnknownLatency whenever
// the probe came back unreachable or the measurement is negative.
func NewStatus(pingMillis int, reachable bool, reason string) Status {
	if !reachable || pingMillis < 0 {
		pingMillis = UnknownLatency
	}
	return Status{PingMillis: pingMillis, Reachable: reachable, Reason: reason}
}

// Down is the uniform negative outcome: unreachable, latency unknown.
func Down(reason string) Status {
	return NewStatus(UnknownLatency, false, reason)
}

// ConnectivityReport aggregates the helper daemon's composite check.
// Overall is carried from the daemon as-is, not recomputed locally, so
// callers must not assume it equals PingOK && DNSOK && HTTPSOK.
type ConnectivityReport struct {
	PingOK  bool   `json:"ping_ok"`
	DNSOK   bool   `json:"dns_ok"`
	HTTPSOK bool   `json:"https_ok"`
	Overall bool   `json:"overall"`
	Message string `json:"message,omitempty"`
}

// Provider is one entry of the DNS provider catalog.
type Provider struct {
	Name      string `json:"name" yaml:"name"`
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// ServiceStatus mirrors the helper daemon's getServiceStatus reply.
type ServiceStatus struct {
	Running bool   `json:"running"`
	State   string `json:"state,omitempty"`
}

// ProbeRecord is one row of probe history.
type ProbeRecord struct {
	ID         int64     `json:"id,omitempty"`
	Address    string    `json:"address"`
	Strategy   string    `json:"strategy"`
	Reachable  bool      `json:"reachable"`
	PingMillis int       `json:"ping_millis"`
	Reason     string    `json:"reason,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

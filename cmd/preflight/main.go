// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	pub := strings.TrimSpace(os.Getenv("PUBLIC_API_KEYS"))
	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	strategy := strings.TrimSpace(os.Getenv("PROBE_STRATEGY"))
	bridgeURL := strings.TrimSpace(os.Getenv("BRIDGE_URL"))

	if admin == "" {
		fail("ADMIN_API_KEYS is empty (DNS change routes will 403).")
	}
	if pub == "" {
		fail("PUBLIC_API_KEYS is empty (read routes will 401).")
	}

	// Normalize and sanity-check lists (no spaces around commas).
	for name, v := range map[string]string{"ADMIN_API_KEYS": admin, "PUBLIC_API_KEYS": pub} {
		if strings.Contains(v, " ") {
			warn(name + " contains spaces; use comma-separated with no spaces, e.g. key1,key2")
		}
	}

	switch strategy {
	case "", "ping":
		if bridgeURL != "" {
			warn("BRIDGE_URL set but PROBE_STRATEGY does not use the bridge; change/connectivity calls will still go through it.")
		}
	case "query":
		if bridgeURL != "" {
			ok("PROBE_STRATEGY=query delegates to the bridge at " + bridgeURL)
		} else {
			ok("PROBE_STRATEGY=query probes locally (no bridge).")
		}
	case "native", "native6":
		if bridgeURL == "" {
			fail("PROBE_STRATEGY=" + strategy + " requires BRIDGE_URL.")
		}
		ok("PROBE_STRATEGY=" + strategy + " with bridge at " + bridgeURL)
	case "none":
		warn("PROBE_STRATEGY=none — every probe will report unreachable.")
	default:
		fail("PROBE_STRATEGY=" + strategy + " is not a known strategy (native|native6|ping|query|none).")
	}

	if addr == "" {
		warn("ADDR is empty; default in your app may be used.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — probe history will be in-memory only.")
	} else {
		ok("DATABASE_URL present")
	}

	ok("preflight passed")
}

package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/domain"
	"github.com/hamed0406/dnsprober/internal/validate"
)

type addressPayload struct {
	Address string `json:"address"`
	Family  string `json:"family,omitempty"` // "6" selects the v6 channel when available
}

type changePayload struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary,omitempty"`
}

func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Catalog.List())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var p addressPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	addr := strings.TrimSpace(p.Address)
	writeJSON(w, map[string]any{
		"address": addr,
		"valid":   validate.Address(addr),
	})
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	var p addressPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}
	addr := strings.TrimSpace(p.Address)

	// An invalid address is a normal caller mistake: 200 with a negative
	// status, and no probe runs.
	if !validate.Address(addr) {
		writeJSON(w, domain.Down("invalid address"))
		return
	}

	prober := s.Prober
	if p.Family == "6" {
		if s.ProberV6 == nil {
			// Never fall back to the v4 prober silently.
			writeJSON(w, domain.Down("ipv6 probe channel not configured"))
			return
		}
		prober = s.ProberV6
	}

	st := prober.Probe(r.Context(), addr)
	s.appendHistory(r, addr, st)

	s.Logger.Info("probe",
		zap.String("address", addr),
		zap.Bool("reachable", st.Reachable),
		zap.Int("ping_ms", st.PingMillis),
		zap.String("reason", st.Reason),
	)
	writeJSON(w, st)
}

func (s *Server) appendHistory(r *http.Request, addr string, st domain.Status) {
	if s.History == nil {
		return
	}
	rec := &domain.ProbeRecord{
		Address:    addr,
		Strategy:   string(s.Strategy),
		Reachable:  st.Reachable,
		PingMillis: st.PingMillis,
		Reason:     st.Reason,
		CheckedAt:  time.Now().UTC(),
	}
	if err := s.History.Append(r.Context(), rec); err != nil {
		s.Logger.Warn("history_append_error", zap.String("address", addr), zap.Error(err))
	}
}

func (s *Server) handleConnectivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Connectivity.Check(r.Context()))
}

func (s *Server) handleService(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Control.ServiceStatus(r.Context()))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > 500 {
		limit = 500
	}
	if s.History == nil {
		writeJSON(w, []domain.ProbeRecord{})
		return
	}
	rows, err := s.History.Recent(r.Context(), limit)
	if err != nil {
		http.Error(w, "history error", http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []domain.ProbeRecord{}
	}
	writeJSON(w, rows)
}

func (s *Server) handleChangeDNS(w http.ResponseWriter, r *http.Request) {
	var p changePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	ok := s.Control.ChangeDNS(r.Context(), p.Primary, p.Secondary)

	s.Logger.Info("dns_change_request",
		zap.String("primary", p.Primary),
		zap.String("secondary", p.Secondary),
		zap.Bool("ok", ok),
	)
	writeJSON(w, map[string]bool{"ok": ok})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	ok := s.Control.Disconnect(r.Context())
	writeJSON(w, map[string]bool{"ok": ok})
}

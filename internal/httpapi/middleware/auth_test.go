package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAny_BearerAndHeaderKeys(t *testing.T) {
	keys := Keys{Public: []string{"pub_key"}}
	h := RequireAny(keys)(okHandler())

	// bearer form
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer pub_key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("bearer key should pass; got %d", rec.Code)
	}

	// X-API-Key form
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.Header.Set("X-API-Key", "pub_key")
	rec2 := httptest.NewRecorder()
	h.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusOK {
		t.Fatalf("header key should pass; got %d", rec2.Code)
	}

	// wrong key
	req3 := httptest.NewRequest(http.MethodGet, "/", nil)
	req3.Header.Set("X-API-Key", "other")
	rec3 := httptest.NewRecorder()
	h.ServeHTTP(rec3, req3)
	if rec3.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key should be 401; got %d", rec3.Code)
	}
}

func TestRequireAny_DisabledWithoutKeys(t *testing.T) {
	h := RequireAny(Keys{})(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("no configured keys should allow all; got %d", rec.Code)
	}
}

func TestRequireAdmin_AllowsAdminKey_BlocksPublicKey(t *testing.T) {
	keys := Keys{
		Public: []string{"pub_key"},
		Admin:  []string{"adm_key"},
	}

	// Admin key -> 200
	reqAdm := httptest.NewRequest(http.MethodGet, "/admin", nil)
	reqAdm.Header.Set("X-API-Key", "adm_key")
	recAdm := httptest.NewRecorder()
	RequireAdmin(keys)(okHandler()).ServeHTTP(recAdm, reqAdm)
	if recAdm.Code != http.StatusOK {
		t.Fatalf("admin key should pass; got %d", recAdm.Code)
	}

	// Public key -> 403
	reqPub := httptest.NewRequest(http.MethodGet, "/admin", nil)
	reqPub.Header.Set("X-API-Key", "pub_key")
	recPub := httptest.NewRecorder()
	RequireAdmin(keys)(okHandler()).ServeHTTP(recPub, reqPub)
	if recPub.Code != http.StatusForbidden {
		t.Fatalf("public key should be forbidden; got %d", recPub.Code)
	}

	// Missing key -> 401
	reqNone := httptest.NewRequest(http.MethodGet, "/admin", nil)
	recNone := httptest.NewRecorder()
	RequireAdmin(keys)(okHandler()).ServeHTTP(recNone, reqNone)
	if recNone.Code != http.StatusUnauthorized {
		t.Fatalf("missing key should be 401; got %d", recNone.Code)
	}
}

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/monitoradlo/monitoradlo-go/internal/auth"
)

// writeKeysJSON writes keys.json to dir.
func writeKeysJSON(t *testing.T, dir string, keys map[string]auth.Key) {
	t.Helper()
	data, err := json.Marshal(keys)
	if err != nil {
		t.Fatalf("json.Marshal keys: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "keys.json"), data, 0644); err != nil {
		t.Fatalf("WriteFile keys.json: %v", err)
	}
}

func newService(t *testing.T, dir string) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(dir)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(svc.Close)
	return svc
}

func serve(svc *auth.Service, req *http.Request) (*httptest.ResponseRecorder, bool) {
	called := false
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr, called
}

// --- Open mode (no keys.json) ---

func TestService_OpenMode(t *testing.T) {
	svc := newService(t, t.TempDir())
	if !svc.IsOpenMode() {
		t.Error("IsOpenMode() = false, want true when no keys.json")
	}
	if _, ok := svc.VerifyKey(""); ok {
		t.Error("VerifyKey(\"\") = true, want false (empty key always rejected)")
	}
	if _, ok := svc.VerifyKey("any-key-at-all"); ok {
		t.Error("VerifyKey matched with no keys configured")
	}
}

func TestService_EmptyDir(t *testing.T) {
	svc := newService(t, "")
	if !svc.IsOpenMode() {
		t.Error("expected open mode without a config dir")
	}
}

func TestMiddleware_OpenMode_PassesThrough(t *testing.T) {
	svc := newService(t, t.TempDir())
	rr, called := serve(svc, httptest.NewRequest(http.MethodGet, "/api", nil))
	if !called {
		t.Error("middleware in open mode did not call next handler")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("response code = %d, want 200", rr.Code)
	}
}

// --- Secured mode ---

func newSecuredService(t *testing.T, key string) *auth.Service {
	t.Helper()
	dir := t.TempDir()
	writeKeysJSON(t, dir, map[string]auth.Key{"canvas": {Key: key, Created: "2026-10-01"}})
	return newService(t, dir)
}

func TestService_SecuredMode_VerifyKey(t *testing.T) {
	const key = "my-super-secret-key"
	svc := newSecuredService(t, key)

	if svc.IsOpenMode() {
		t.Error("IsOpenMode() = true with a key configured")
	}
	if name, ok := svc.VerifyKey(key); !ok || name != "canvas" {
		t.Errorf("VerifyKey(%q) = %q, %v; want canvas, true", key, name, ok)
	}
	if _, ok := svc.VerifyKey("wrong-key"); ok {
		t.Error("VerifyKey(\"wrong-key\") = true, want false")
	}
	if _, ok := svc.VerifyKey(""); ok {
		t.Error("VerifyKey(\"\") = true, want false")
	}
}

func TestMiddleware_SecuredMode(t *testing.T) {
	const key = "secret-123"
	svc := newSecuredService(t, key)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		target string
		want   bool
	}{
		{"header", func(r *http.Request) { r.Header.Set("X-API-Key", key) }, "/api", true},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+key) }, "/api", true},
		{"query param", func(r *http.Request) {}, "/api/subscribe?api-key=" + key, true},
		{"wrong key", func(r *http.Request) { r.Header.Set("X-API-Key", "nope") }, "/api", false},
		{"no credentials", func(r *http.Request) {}, "/api", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			tt.setup(req)
			rr, called := serve(svc, req)
			if called != tt.want {
				t.Errorf("next called = %v, want %v", called, tt.want)
			}
			if !tt.want && rr.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rr.Code)
			}
		})
	}
}

func TestService_Reload(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)

	if !svc.IsOpenMode() {
		t.Error("initially expected open mode")
	}

	writeKeysJSON(t, dir, map[string]auth.Key{"script": {Key: "reload-test-key"}})
	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if svc.IsOpenMode() {
		t.Error("expected secured mode after reload")
	}
	if _, ok := svc.VerifyKey("reload-test-key"); !ok {
		t.Error("VerifyKey after reload returned false for correct key")
	}
}

func TestService_WatchesKeysFile(t *testing.T) {
	dir := t.TempDir()
	svc := newService(t, dir)

	writeKeysJSON(t, dir, map[string]auth.Key{"script": {Key: "watched"}})

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := svc.VerifyKey("watched"); ok {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("keys.json change was not picked up")
}

func TestService_InvalidKeysFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "keys.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.NewService(dir); err == nil {
		t.Error("expected error for malformed keys.json")
	}
}

func TestService_MissingConfigDir_NoError(t *testing.T) {
	nonExistent := filepath.Join(t.TempDir(), "does-not-exist")
	svc := newService(t, nonExistent)
	if !svc.IsOpenMode() {
		t.Error("expected open mode for non-existent config dir")
	}
}

package debugserver

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xenwire/xenwire/internal/config"
	"github.com/xenwire/xenwire/internal/logging"
	"github.com/xenwire/xenwire/internal/wire"
	"github.com/xenwire/xenwire/internal/wire/request"
)

func newTestServer() *Server {
	logging.ConfigureTests("debugserver-test")
	return New(config.DefaultServeConfig(), logging.Logger)
}

func TestHealthz(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestDecodeValidFrame(t *testing.T) {
	s := newTestServer()

	pkt := request.Marshal(request.PathOp{Mode: request.PathRead, Path: "/a/b"}, 0, 7)
	body, _ := json.Marshal(decodeRequest{Frame: base64.StdEncoding.EncodeToString(pkt.Marshal())})

	req := httptest.NewRequest(http.MethodPost, "/decode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp decodeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Op != wire.OpRead.String() || resp.Rid != 7 {
		t.Fatalf("got %+v", resp)
	}
}

func TestDecodeBadBase64(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(decodeRequest{Frame: "not-base64!!"})

	req := httptest.NewRequest(http.MethodPost, "/decode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestDecodeIncompleteFrame(t *testing.T) {
	s := newTestServer()
	body, _ := json.Marshal(decodeRequest{Frame: base64.StdEncoding.EncodeToString([]byte{1, 2, 3})})

	req := httptest.NewRequest(http.MethodPost, "/decode", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
}

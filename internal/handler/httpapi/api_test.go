package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
	"github.com/go-chi/chi/v5"
)

type apiFixture struct {
	srv *httptest.Server
	dir *registry.Directory
	buf *pending.Buffer
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dir := registry.NewDirectory()
	buf := pending.NewBuffer()
	cfg := &config.Config{Transport: config.TransportConfig{SendTimeout: 100 * time.Millisecond}}
	dispatcher := service.NewDispatcher(logger, dir, buf, cfg)

	r := chi.NewRouter()
	NewAPI(logger, dispatcher, dir, buf).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &apiFixture{srv: srv, dir: dir, buf: buf}
}

func (f *apiFixture) postNotify(t *testing.T, body string) (int, map[string]any) {
	t.Helper()
	res, err := http.Post(f.srv.URL+"/notify", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST /notify: %v", err)
	}
	defer res.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return res.StatusCode, decoded
}

func TestNotifyMissingFields(t *testing.T) {
	f := newAPIFixture(t)

	for _, body := range []string{
		`{}`,
		`{"userId":"7"}`,
		`{"userId":"7","message":"hi"}`,
		`{"message":"hi","type":"event"}`,
		`not json`,
	} {
		status, res := f.postNotify(t, body)
		if status != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, status)
		}
		if res["error"] != "userId, message, and type are required" {
			t.Errorf("body %s: error = %v", body, res["error"])
		}
	}
}

func TestNotifyDeliversLive(t *testing.T) {
	f := newAPIFixture(t)

	conn := registry.NewConnector(context.Background(), 16)
	defer conn.Close()
	f.dir.Register("7", conn)

	status, res := f.postNotify(t, `{"userId":"7","message":"Meeting at 6","type":"event"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if res["success"] != true {
		t.Errorf("success = %v", res["success"])
	}
	if _, ok := res["storedForLater"]; ok {
		t.Error("live delivery response carried storedForLater")
	}

	select {
	case frame := <-conn.Recv():
		if frame.Event != model.EventNotification {
			t.Errorf("frame event = %q", frame.Event)
		}
		n := frame.Payload.(*model.Notification)
		if n.Message != "Meeting at 6" || n.Type != "event" {
			t.Errorf("notification = %+v", n)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame delivered to the live connection")
	}
}

func TestNotifyStoresForOffline(t *testing.T) {
	f := newAPIFixture(t)

	status, res := f.postNotify(t, `{"userId":"9","message":"hello","type":"event"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if res["success"] != true || res["storedForLater"] != true {
		t.Errorf("response = %v", res)
	}
	if got := f.buf.Len("9"); got != 1 {
		t.Errorf("buffer Len = %d, want 1", got)
	}
}

func TestNotifyAcceptsNumericUserID(t *testing.T) {
	f := newAPIFixture(t)

	// The mobile client sends ids as numbers as often as strings.
	status, _ := f.postNotify(t, `{"userId":7,"message":"hi","type":"event"}`)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got := f.buf.Len("7"); got != 1 {
		t.Errorf("buffer Len for normalized id = %d, want 1", got)
	}
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)
	f.buf.Enqueue("9", "x")

	res, err := http.Get(f.srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer res.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if decoded["status"] != "ok" {
		t.Errorf("status = %v", decoded["status"])
	}
	if decoded["pending"] != float64(1) {
		t.Errorf("pending = %v, want 1", decoded["pending"])
	}
}

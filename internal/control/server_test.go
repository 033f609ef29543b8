package control

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"imageviewer/internal/diag"
	"imageviewer/internal/input"
)

func TestHandleAction(t *testing.T) {
	tests := []struct {
		method string
		path   string
		code   int
		want   input.Action
	}{
		{http.MethodPost, "/action/left", http.StatusAccepted, input.ActionLeft},
		{http.MethodPost, "/action/right", http.StatusAccepted, input.ActionRight},
		{http.MethodPost, "/action/up", http.StatusAccepted, input.ActionUp},
		{http.MethodPost, "/action/down/", http.StatusAccepted, input.ActionDown},
		{http.MethodPost, "/action/quit", http.StatusAccepted, input.ActionQuit},
		{http.MethodPost, "/action/zoom", http.StatusBadRequest, input.ActionNone},
		{http.MethodPost, "/action/", http.StatusBadRequest, input.ActionNone},
		{http.MethodGet, "/action/left", http.StatusMethodNotAllowed, input.ActionNone},
	}

	for _, tt := range tests {
		q := input.NewQueue(4)
		h := NewServer(q, "", diag.Discard()).Handler()

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.code {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.code)
		}

		events := q.Drain()
		if tt.want == input.ActionNone {
			if len(events) != 0 {
				t.Errorf("%s %s: queued %+v, want nothing", tt.method, tt.path, events)
			}
			continue
		}
		if len(events) != 1 || events[0].Kind != input.EventAction || events[0].Action != tt.want {
			t.Errorf("%s %s: queued %+v, want Action(%v)", tt.method, tt.path, events, tt.want)
		}
	}
}

func TestHandleActionQueueFull(t *testing.T) {
	q := input.NewQueue(1)
	q.Post(input.Close())
	h := NewServer(q, "", diag.Discard()).Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/action/left", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestHealth(t *testing.T) {
	h := NewServer(input.NewQueue(1), "", diag.Discard()).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if body := rec.Body.String(); body != `{"status":"ok"}` {
		t.Errorf("body = %s", body)
	}
}

func TestStartStop(t *testing.T) {
	q := input.NewQueue(4)
	s := NewServer(q, "127.0.0.1:0", diag.Discard())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Post("http://"+s.Addr()+"/action/quit", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted || !strings.Contains(string(body), "quit") {
		t.Errorf("response = %d %s", resp.StatusCode, body)
	}
	if q.Len() != 1 {
		t.Errorf("queue holds %d events, want 1", q.Len())
	}

	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

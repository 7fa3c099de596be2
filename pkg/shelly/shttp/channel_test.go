package shttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
)

func hostOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

// TestGetDecodesJSON validates query encoding and response decoding on GET
func TestGetDecodesJSON(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/rpc/Switch.GetStatus" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if id := r.URL.Query().Get("id"); id != "2" {
			t.Errorf("expected id=2, got %q", id)
		}
		w.Write([]byte(`{"id":2,"output":true}`))
	}))
	defer srv.Close()

	ch := NewChannel(srv.Client(), nil)
	var out struct {
		Id     int  `json:"id"`
		Output bool `json:"output"`
	}
	if err := ch.Get(ctx, hostOf(srv), "/rpc/Switch.GetStatus", url.Values{"id": {"2"}}, &out); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if out.Id != 2 || !out.Output {
		t.Errorf("unexpected decoded value %+v", out)
	}
}

// TestPostSendsJSONBody validates that POST carries a JSON body and content type
func TestPostSendsJSONBody(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["on"] != true {
			t.Errorf("expected on=true in body, got %v", body)
		}
		w.Write([]byte(`{"was_on":false}`))
	}))
	defer srv.Close()

	ch := NewChannel(srv.Client(), nil)
	if err := ch.Post(ctx, hostOf(srv), "/rpc/Switch.Set", map[string]any{"id": 0, "on": true}, nil); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
}

// TestNonSuccessStatus validates that a non-2xx answer is a *StatusError
func TestNonSuccessStatus(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	ch := NewChannel(srv.Client(), nil)
	err := ch.Get(ctx, hostOf(srv), "/shelly", nil, nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if se.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.Code)
	}
	if ch.Probe(ctx, hostOf(srv), "/shelly") {
		t.Error("Probe reported success on 404")
	}
}

// TestUnreachableHost validates that transport errors are returned, not panics
func TestUnreachableHost(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	srv := httptest.NewServer(http.NotFoundHandler())
	host := hostOf(srv)
	srv.Close()

	ch := NewChannel(nil, nil)
	if err := ch.Get(ctx, host, "/shelly", nil, nil); err == nil {
		t.Fatal("expected error for closed server")
	}
	if ch.Probe(ctx, host, "/shelly") {
		t.Error("Probe reported success on closed server")
	}
}

// TestDecodeError validates that invalid JSON is reported
func TestDecodeError(t *testing.T) {
	ctx := logr.NewContext(context.Background(), testr.New(t))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	ch := NewChannel(srv.Client(), nil)
	var out map[string]any
	if err := ch.Get(ctx, hostOf(srv), "/relay/0", nil, &out); err == nil {
		t.Fatal("expected decode error")
	}
}

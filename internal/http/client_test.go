package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/echo" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if ua := r.Header.Get("User-Agent"); ua != "modplan-test" {
			t.Errorf("User-Agent = %q", ua)
		}
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"echo": in["name"]})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "modplan-test", 0)
	var out struct {
		Echo string `json:"echo"`
	}
	if err := c.PostJSON(context.Background(), "api/echo", map[string]string{"name": "ada"}, &out); err != nil {
		t.Fatalf("PostJSON() error: %v", err)
	}
	if out.Echo != "ada" {
		t.Errorf("echo = %q, want ada", out.Echo)
	}
}

func TestGetJSON_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "modplan-test", 0)
	err := c.GetJSON(context.Background(), "/x", &struct{}{})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", se.Code)
	}
	if string(se.Body) != `{"error":"bad credentials"}` {
		t.Errorf("body = %q", se.Body)
	}
	if !IsStatus(err) {
		t.Error("IsStatus() = false")
	}
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "modplan-test", 0).Get(context.Background(), "/")
	if err == nil {
		t.Fatal("expected an error from a closed server")
	}
	if IsStatus(err) {
		t.Error("a transport failure must not be a StatusError")
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]any
	if err := NewClient(srv.URL, "t", 0).GetJSON(context.Background(), "/", &out); err != nil {
		t.Errorf("GetJSON() on empty body error: %v", err)
	}
}

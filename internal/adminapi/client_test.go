// Package adminapi tests verify the admin REST client against a stub server.
package adminapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatsAndUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /api/admin/stats":
			_ = json.NewEncoder(w).Encode(Stats{Users: 24, Uploads: 52, RedactedDocs: 41, SharedDocs: 18})
		case "GET /api/admin/users":
			_ = json.NewEncoder(w).Encode([]User{{ID: 1, Name: "Hridaya", Email: "hridya@example.com"}})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := NewClient(ClientOptions{Addr: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.RedactedDocs != 41 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	users, err := c.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Hridaya" {
		t.Fatalf("unexpected users: %+v", users)
	}
}

func TestMutationPathsAndBodies(t *testing.T) {
	var gotBlock *bool
	var verified, deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "POST /api/admin/users/2/block":
			var req struct {
				Block bool `json:"block"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			gotBlock = &req.Block
		case "DELETE /api/admin/users/3":
			deleted = r.URL.Path
		case "POST /api/admin/logs/1/verify":
			verified = r.URL.Path
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c, err := NewClient(ClientOptions{Addr: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()

	if err := c.BlockUser(ctx, 2, false); err != nil {
		t.Fatalf("BlockUser: %v", err)
	}
	if gotBlock == nil || *gotBlock {
		t.Fatalf("expected block=false body")
	}
	if err := c.DeleteUser(ctx, 3); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if deleted == "" {
		t.Fatalf("delete never reached the server")
	}
	if err := c.VerifyLog(ctx, 1); err != nil {
		t.Fatalf("VerifyLog: %v", err)
	}
	if verified == "" {
		t.Fatalf("verify never reached the server")
	}
}

func TestErrorBodySurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not allowed"})
	}))
	defer srv.Close()

	c, err := NewClient(ClientOptions{Addr: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.ListUsers(context.Background()); err == nil || err.Error() != "not allowed" {
		t.Fatalf("expected server error text, got %v", err)
	}
}

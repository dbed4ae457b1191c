// Package state tests verify the key-value store survives reopen.
package state

import (
	"context"
	"testing"
)

// TestSetGetDelete covers basic store operations.
func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	d, err := Open(ctx, t.TempDir()+"/state.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if _, ok, err := d.Get(ctx, "adminAuth"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := d.Set(ctx, "adminAuth", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Set(ctx, "adminAuth", "false"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := d.Get(ctx, "adminAuth")
	if err != nil || !ok || v != "false" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if err := d.Delete(ctx, "adminAuth"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := d.Get(ctx, "adminAuth"); ok {
		t.Fatalf("expected key gone")
	}
	if err := d.Delete(ctx, "adminAuth"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

// TestValuesSurviveReopen confirms durability across Open calls.
func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/state.db"

	d, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Set(ctx, "adminRemember", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	d2, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = d2.Close() })
	v, ok, err := d2.Get(ctx, "adminRemember")
	if err != nil || !ok || v != "true" {
		t.Fatalf("Get after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}

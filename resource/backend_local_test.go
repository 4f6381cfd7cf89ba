package resource

import (
	"errors"
	"testing"
)

func TestLocalBackend_Basic(t *testing.T) {
	b := NewLocalBackend[string]()

	handle, err := b.Create("test value")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if handle == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := b.Get(handle)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	val, ok = b.Drop(handle)
	if !ok {
		t.Fatal("Drop failed")
	}
	if val != "test value" {
		t.Fatalf("Expected 'test value', got %v", val)
	}

	if _, ok = b.Get(handle); ok {
		t.Fatal("Expected Get to fail after Drop")
	}
}

func TestLocalBackend_InvalidHandles(t *testing.T) {
	b := NewLocalBackend[int]()
	if _, ok := b.Get(0); ok {
		t.Fatal("handle 0 must be invalid")
	}
	if _, ok := b.Get(42); ok {
		t.Fatal("unknown handle must be invalid")
	}
	if _, ok := b.Drop(0); ok {
		t.Fatal("Drop(0) must fail")
	}
}

func TestLocalBackend_HandleReuse(t *testing.T) {
	b := NewLocalBackend[int]()
	h1, _ := b.Create(1)
	h2, _ := b.Create(2)
	b.Drop(h1)
	b.Drop(h2)

	// most recently released first
	h3, _ := b.Create(3)
	if h3 != h2 {
		t.Fatalf("expected reuse of %d, got %d", h2, h3)
	}
	h4, _ := b.Create(4)
	if h4 != h1 {
		t.Fatalf("expected reuse of %d, got %d", h1, h4)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestLocalBackend_Closed(t *testing.T) {
	b := NewLocalBackend[int]()
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal("second Close should be a no-op")
	}
	if _, err := b.Create(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("Create after Close: %v", err)
	}
}

package ctifeed

import (
	"context"
	"testing"
	"time"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestVTLookupPathByType(t *testing.T) {
	cases := []struct {
		typ      ioc.Type
		value    string
		wantPath string
	}{
		{ioc.TypeIP, "8.8.8.8", "/ip_addresses/8.8.8.8"},
		{ioc.TypeDomain, "example.com", "/domains/example.com"},
		{ioc.TypeSHA256, "abcd", "/files/abcd"},
		{ioc.TypeMutex, "Global\\foo", ""},
	}
	for _, c := range cases {
		got, err := vtLookupPath(c.typ, c.value)
		if err != nil {
			t.Errorf("unexpected error for %s: %v", c.typ, err)
		}
		if got != c.wantPath {
			t.Errorf("vtLookupPath(%s, %s) = %q, want %q", c.typ, c.value, got, c.wantPath)
		}
	}
}

func TestVTLookupPathEncodesURL(t *testing.T) {
	path, err := vtLookupPath(ioc.TypeURL, "http://evil.example/payload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" || path == "/urls/" {
		t.Fatalf("expected a non-empty encoded URL id, got %q", path)
	}
}

func TestFetchSinceIsANoOp(t *testing.T) {
	a := NewVirusTotalAdapter(Config{APIKey: "key"})
	got, err := a.FetchSince(context.Background(), time.Time{}, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil result, got %v", got)
	}
}

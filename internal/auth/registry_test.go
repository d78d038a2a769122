package auth

import (
	"encoding/base64"
	"sync"
	"testing"
)

func TestIssueResolveRoundTrip(t *testing.T) {
	r := NewRegistry()
	token, err := r.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	id, ok := r.Resolve(token)
	if !ok || id != 42 {
		t.Fatalf("Resolve = (%d, %v), want (42, true)", id, ok)
	}
}

func TestTokenShape(t *testing.T) {
	r := NewRegistry()
	token, err := r.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not URL-safe base64: %v", err)
	}
	if len(raw) != 32 {
		t.Fatalf("token carries %d bytes of entropy, want 32", len(raw))
	}
}

func TestResolveUnknownToken(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Resolve("no-such-token"); ok {
		t.Fatal("unknown token resolved")
	}
}

func TestRevokeIsScopedAndIdempotent(t *testing.T) {
	r := NewRegistry()
	t1, _ := r.Issue(7)
	t2, _ := r.Issue(7) // second concurrent session for the same principal
	t3, _ := r.Issue(8)

	r.Revoke(t1)
	r.Revoke(t1) // idempotent

	if _, ok := r.Resolve(t1); ok {
		t.Fatal("revoked token still resolves")
	}
	if id, ok := r.Resolve(t2); !ok || id != 7 {
		t.Fatal("revoking one session killed a sibling session")
	}
	if id, ok := r.Resolve(t3); !ok || id != 8 {
		t.Fatal("revoking one principal's token affected another principal")
	}
}

func TestRegistriesAreDisjoint(t *testing.T) {
	users := NewRegistry()
	admins := NewRegistry()
	token, _ := users.Issue(1)
	if _, ok := admins.Resolve(token); ok {
		t.Fatal("user token resolved in the admin registry")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			token, err := r.Issue(id)
			if err != nil {
				t.Errorf("Issue: %v", err)
				return
			}
			if got, ok := r.Resolve(token); !ok || got != id {
				t.Errorf("Resolve = (%d, %v), want (%d, true)", got, ok, id)
			}
			r.Revoke(token)
			if _, ok := r.Resolve(token); ok {
				t.Error("token resolves after revoke")
			}
		}(uint64(i + 1))
	}
	wg.Wait()
}

package handler

import (
	"context"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/house-price-api/internal/auth"
	"github.com/iliyamo/house-price-api/internal/config"
	"github.com/iliyamo/house-price-api/internal/middleware"
)

func testAuthHandler() (*AuthHandler, *fakeUserStore, *auth.Registry) {
	users := newFakeUserStore()
	tokens := auth.NewRegistry()
	h := NewAuthHandler(config.Config{BcryptCost: bcrypt.MinCost}, users, tokens)
	return h, users, tokens
}

func TestRegister(t *testing.T) {
	h, users, _ := testAuthHandler()

	c, rec := newJSONContext(t, http.MethodPost, "/register", `{"email":"a@b.c","password":"secret"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(users.users) != 1 {
		t.Fatalf("store has %d users, want 1", len(users.users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, users, _ := testAuthHandler()

	c, _ := newJSONContext(t, http.MethodPost, "/register", `{"email":"a@b.c","password":"secret"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	c, rec := newJSONContext(t, http.MethodPost, "/register", `{"email":"a@b.c","password":"other"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := decodeMap(t, rec)["error"]; got != "Email already registered" {
		t.Fatalf("error = %q", got)
	}
	if len(users.users) != 1 {
		t.Fatalf("duplicate registration mutated state: %d users", len(users.users))
	}
}

func TestRegisterMissingFields(t *testing.T) {
	h, _, _ := testAuthHandler()
	for _, body := range []string{`{}`, `{"email":"a@b.c"}`, `{"password":"x"}`} {
		c, rec := newJSONContext(t, http.MethodPost, "/register", body)
		if err := h.Register(c); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestLoginIssuesResolvableToken(t *testing.T) {
	h, users, tokens := testAuthHandler()
	uid, err := users.Create(context.Background(), "a@b.c", "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	c, rec := newJSONContext(t, http.MethodPost, "/login", `{"email":"a@b.c","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeMap(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in response")
	}
	if got, ok := tokens.Resolve(token); !ok || got != uid {
		t.Fatalf("token resolves to (%d, %v), want (%d, true)", got, ok, uid)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	h, users, _ := testAuthHandler()
	if _, err := users.Create(context.Background(), "a@b.c", "secret", bcrypt.MinCost); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	for _, body := range []string{
		`{"email":"a@b.c","password":"wrong"}`,
		`{"email":"nobody@b.c","password":"secret"}`,
	} {
		c, rec := newJSONContext(t, http.MethodPost, "/login", body)
		if err := h.Login(c); err != nil {
			t.Fatalf("Login: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: status = %d, want 401", body, rec.Code)
		}
		if got := decodeMap(t, rec)["error"]; got != "Invalid credentials" {
			t.Fatalf("error = %q", got)
		}
	}
}

func TestLoginBlockedUserStillAuthenticates(t *testing.T) {
	// Blocking has no effect on login; the flag is bookkeeping only.
	h, users, _ := testAuthHandler()
	uid, err := users.Create(context.Background(), "a@b.c", "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if _, err := users.ToggleBlocked(context.Background(), uid); err != nil {
		t.Fatalf("block: %v", err)
	}

	c, rec := newJSONContext(t, http.MethodPost, "/login", `{"email":"a@b.c","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("blocked user login status = %d, want 200", rec.Code)
	}
}

func TestLogoutRevokesOnlyPresentedToken(t *testing.T) {
	h, _, tokens := testAuthHandler()
	t1, _ := tokens.Issue(5)
	t2, _ := tokens.Issue(5)

	c, rec := newJSONContext(t, http.MethodPost, "/logout", "")
	c.Set(middleware.CtxToken, t1)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if _, ok := tokens.Resolve(t1); ok {
		t.Fatal("presented token survived logout")
	}
	if _, ok := tokens.Resolve(t2); !ok {
		t.Fatal("logout revoked a sibling session")
	}
}

func TestMe(t *testing.T) {
	h, users, _ := testAuthHandler()
	uid, err := users.Create(context.Background(), "a@b.c", "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	c, rec := newJSONContext(t, http.MethodGet, "/me", "")
	c.Set(middleware.CtxUserID, uid)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeMap(t, rec)
	if body["email"] != "a@b.c" {
		t.Fatalf("email = %v", body["email"])
	}

	// Principal row deleted between login and /me.
	c, rec = newJSONContext(t, http.MethodGet, "/me", "")
	c.Set(middleware.CtxUserID, uid+99)
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestAdminLoginDisjointFromUsers(t *testing.T) {
	admins := newFakeAdminStore()
	admins.seed(t, 1, "root@x.y", "admin123", "superadmin")
	adminTokens := auth.NewRegistry()
	h := NewAdminAuthHandler(admins, adminTokens)

	c, rec := newJSONContext(t, http.MethodPost, "/admin/login", `{"email":"root@x.y","password":"admin123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeMap(t, rec)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in response")
	}
	admin, _ := body["admin"].(map[string]any)
	if admin["role"] != "superadmin" {
		t.Fatalf("admin part = %v", body["admin"])
	}

	userTokens := auth.NewRegistry()
	if _, ok := userTokens.Resolve(token); ok {
		t.Fatal("admin token resolved in user registry")
	}
}

func TestAdminLoginBadCredentials(t *testing.T) {
	admins := newFakeAdminStore()
	admins.seed(t, 1, "root@x.y", "admin123", "superadmin")
	h := NewAdminAuthHandler(admins, auth.NewRegistry())

	c, rec := newJSONContext(t, http.MethodPost, "/admin/login", `{"email":"root@x.y","password":"nope"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeMap(t, rec)["error"]; got != "Invalid admin credentials" {
		t.Fatalf("error = %q", got)
	}
}

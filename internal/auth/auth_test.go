package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"foyer/internal/kv"
)

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	mem := kv.NewMemoryStore()
	store, err := NewStore(context.Background(), mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, mem
}

func TestDefaultRosterSeededAndPersisted(t *testing.T) {
	store, mem := newTestStore(t)

	members := store.Members()
	if len(members) != 3 {
		t.Fatalf("roster size = %d, want 3", len(members))
	}

	raw, found, err := mem.Get(context.Background(), "budget_users")
	if err != nil || !found {
		t.Fatalf("roster not persisted: found=%v err=%v", found, err)
	}
	var persisted []Member
	if err := json.Unmarshal(raw, &persisted); err != nil {
		t.Fatalf("persisted roster unreadable: %v", err)
	}
	if len(persisted) != 3 {
		t.Errorf("persisted roster size = %d, want 3", len(persisted))
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name   string
		member string
		secret string
		want   bool
	}{
		{name: "exact match", member: "Jean", secret: "1234", want: true},
		{name: "case-insensitive name", member: "jean", secret: "1234", want: true},
		{name: "uppercase name", member: "MARIE", secret: "5678", want: true},
		{name: "wrong secret", member: "Jean", secret: "0000", want: false},
		{name: "secret is case-sensitive", member: "Jean", secret: "1234 ", want: false},
		{name: "unknown member", member: "Luc", secret: "1234", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t)
			ok, err := store.Login(context.Background(), tt.member, tt.secret)
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if ok != tt.want {
				t.Errorf("Login(%q, %q) = %v, want %v", tt.member, tt.secret, ok, tt.want)
			}
			if _, logged := store.Current(); logged != tt.want {
				t.Errorf("Current() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLoginPersistsSession(t *testing.T) {
	store, mem := newTestStore(t)
	ctx := context.Background()

	if ok, _ := store.Login(ctx, "Marie", "5678"); !ok {
		t.Fatal("login failed")
	}

	// A new store over the same kv resumes the session without credentials.
	resumed, err := NewStore(ctx, mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	id, ok := resumed.Current()
	if !ok || id.Name != "Marie" {
		t.Errorf("resumed session = %+v ok=%v, want Marie", id, ok)
	}
}

func TestRegister(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Register(ctx, "Luc", "abcd")
	if err != nil || !ok {
		t.Fatalf("Register = %v, %v", ok, err)
	}

	// Registration logs the new member in.
	id, logged := store.Current()
	if !logged || id.Name != "Luc" {
		t.Errorf("Current after register = %+v", id)
	}
	if len(store.Members()) != 4 {
		t.Errorf("roster size = %d, want 4", len(store.Members()))
	}

	if ok, _ := store.Login(ctx, "luc", "abcd"); !ok {
		t.Error("new member cannot log in")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ok, err := store.Register(ctx, "JEAN", "whatever")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if ok {
		t.Error("duplicate name accepted")
	}
	if len(store.Members()) != 3 {
		t.Errorf("roster grew on rejected registration: %d members", len(store.Members()))
	}
	if _, logged := store.Current(); logged {
		t.Error("rejected registration established a session")
	}
}

func TestLogout(t *testing.T) {
	store, mem := newTestStore(t)
	ctx := context.Background()

	if ok, _ := store.Login(ctx, "Jean", "1234"); !ok {
		t.Fatal("login failed")
	}
	store.Logout(ctx)

	if _, logged := store.Current(); logged {
		t.Error("session survives logout")
	}
	if _, found, _ := mem.Get(ctx, "budget_user"); found {
		t.Error("persisted session survives logout")
	}
}

func TestCorruptSessionDiscardedOnLoad(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()
	if err := mem.Put(ctx, "budget_user", []byte("{garbage")); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(ctx, mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, logged := store.Current(); logged {
		t.Error("corrupt session treated as logged in")
	}
	if _, found, _ := mem.Get(ctx, "budget_user"); found {
		t.Error("corrupt session key not removed")
	}
}

func TestEmptyIdentityDiscardedOnLoad(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()
	// Parses fine but names nobody; treated the same as corrupt data.
	if err := mem.Put(ctx, "budget_user", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(ctx, mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, logged := store.Current(); logged {
		t.Error("empty identity treated as logged in")
	}
	if _, found, _ := mem.Get(ctx, "budget_user"); found {
		t.Error("empty identity key not removed")
	}
}

func TestCorruptRosterReseeded(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()
	if err := mem.Put(ctx, "budget_users", []byte("not json")); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(ctx, mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(store.Members()) != 3 {
		t.Errorf("roster size = %d, want reseeded 3", len(store.Members()))
	}
}

// failingStore rejects writes to selected keys, passing everything else
// through to the wrapped store.
type failingStore struct {
	kv.Store
	failPut map[string]bool
}

func (f *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if f.failPut[key] {
		return errors.New("disk full")
	}
	return f.Store.Put(ctx, key, value)
}

func TestLoginFailedPersistLeavesLoggedOut(t *testing.T) {
	mem := kv.NewMemoryStore()
	failing := &failingStore{Store: mem, failPut: map[string]bool{"budget_user": true}}
	ctx := context.Background()

	store, err := NewStore(ctx, failing, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	ok, err := store.Login(ctx, "Jean", "1234")
	if ok || err == nil {
		t.Fatalf("Login = %v, %v, want false with error", ok, err)
	}
	if _, logged := store.Current(); logged {
		t.Error("failed login left a session behind")
	}
	if _, found, _ := mem.Get(ctx, "budget_user"); found {
		t.Error("session key written despite the failure")
	}
}

func TestRegisterFailedRosterPersistLeavesRosterUnchanged(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()

	// Pre-seed the roster so construction does not need to write it.
	seeded, err := NewStore(ctx, mem, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if len(seeded.Members()) != 3 {
		t.Fatal("seed roster missing")
	}

	failing := &failingStore{Store: mem, failPut: map[string]bool{"budget_users": true}}
	store, err := NewStore(ctx, failing, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore over seeded kv: %v", err)
	}

	ok, err := store.Register(ctx, "Luc", "abcd")
	if ok || err == nil {
		t.Fatalf("Register = %v, %v, want false with error", ok, err)
	}
	if len(store.Members()) != 3 {
		t.Errorf("roster grew to %d on failed registration", len(store.Members()))
	}
	if _, logged := store.Current(); logged {
		t.Error("failed registration established a session")
	}

	// The member does not exist for later logins either.
	if ok, _ := store.Login(ctx, "Luc", "abcd"); ok {
		t.Error("phantom member accepted after failed registration")
	}
}

func TestRegisterFailedSessionPersistLeavesLoggedOut(t *testing.T) {
	mem := kv.NewMemoryStore()
	ctx := context.Background()

	if _, err := NewStore(ctx, mem, PlainMatcher{}, 0); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	failing := &failingStore{Store: mem, failPut: map[string]bool{"budget_user": true}}
	store, err := NewStore(ctx, failing, PlainMatcher{}, 0)
	if err != nil {
		t.Fatalf("NewStore over seeded kv: %v", err)
	}

	ok, err := store.Register(ctx, "Luc", "abcd")
	if ok || err == nil {
		t.Fatalf("Register = %v, %v, want false with error", ok, err)
	}
	if _, logged := store.Current(); logged {
		t.Error("failed session persist left the store logged in")
	}
}

func TestLoginDelayHonorsContext(t *testing.T) {
	mem := kv.NewMemoryStore()
	store, err := NewStore(context.Background(), mem, PlainMatcher{}, 5*time.Second)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = store.Login(ctx, "Jean", "1234")
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > time.Second {
		t.Error("login did not return promptly on context cancellation")
	}
}

func TestMembersOmitSecrets(t *testing.T) {
	store, _ := newTestStore(t)
	raw, err := json.Marshal(store.Members())
	if err != nil {
		t.Fatal(err)
	}
	for _, secret := range []string{"1234", "5678", "0000", "secret"} {
		if strings.Contains(string(raw), secret) {
			t.Errorf("members listing leaks %q", secret)
		}
	}
}

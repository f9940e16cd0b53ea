// Package auth holds the household roster and the persisted session
// identity. It is consulted at session start and on explicit login,
// register and logout calls; nothing here throttles or locks out repeated
// failures.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"foyer/internal/kv"
)

// Key-value layout: the roster and the current identity are the only state
// that survives a restart.
const (
	rosterKey  = "budget_users"
	sessionKey = "budget_user"
)

// Member is a roster entry. Secret is stored in the active Matcher's
// encoding (plaintext by default).
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Secret string `json:"secret"`
}

// Identity is the authenticated member, persisted so a restart keeps the
// session without re-checking the secret.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	matcher Matcher
	delay   time.Duration
	members []Member
	session *Identity
}

// NewStore loads the roster and any persisted session from the key-value
// store. An absent or unreadable roster is replaced by the default members;
// a corrupt session value is discarded and treated as logged out.
func NewStore(ctx context.Context, store kv.Store, matcher Matcher, delay time.Duration) (*Store, error) {
	s := &Store{kv: store, matcher: matcher, delay: delay}

	if err := s.loadRoster(ctx); err != nil {
		return nil, err
	}
	s.loadSession(ctx)
	return s, nil
}

func defaultMembers() []Member {
	return []Member{
		{ID: "1", Name: "Jean", Secret: "1234"},
		{ID: "2", Name: "Marie", Secret: "5678"},
		{ID: "3", Name: "Admin", Secret: "0000"},
	}
}

func (s *Store) loadRoster(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, rosterKey)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if found {
		var members []Member
		if err := json.Unmarshal(raw, &members); err == nil && len(members) > 0 {
			s.members = members
			return nil
		}
		slog.WarnContext(ctx, "Roster unreadable, reseeding", "key", rosterKey)
	}

	seed := defaultMembers()
	for i := range seed {
		encoded, err := s.matcher.Encode(seed[i].Secret)
		if err != nil {
			return fmt.Errorf("encode seed secret: %w", err)
		}
		seed[i].Secret = encoded
	}
	if err := s.persistRoster(ctx, seed); err != nil {
		return err
	}
	s.members = seed
	return nil
}

func (s *Store) loadSession(ctx context.Context) {
	raw, found, err := s.kv.Get(ctx, sessionKey)
	if err != nil || !found {
		return
	}
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.ID == "" {
		// Corrupt value: discard the key and start logged out.
		slog.WarnContext(ctx, "Discarding corrupt session identity", "key", sessionKey)
		_ = s.kv.Delete(ctx, sessionKey)
		return
	}
	s.session = &id
}

func (s *Store) persistRoster(ctx context.Context, members []Member) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := s.kv.Put(ctx, rosterKey, raw); err != nil {
		return fmt.Errorf("persist roster: %w", err)
	}
	return nil
}

func (s *Store) persistSession(ctx context.Context, id Identity) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.kv.Put(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// sleep applies the fixed artificial delay on credential checks. The delay
// simulates latency and carries no semantic meaning.
func (s *Store) sleep(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login matches the name case-insensitively and the secret through the
// configured Matcher. On success the session identity is established and
// persisted.
func (s *Store) Login(ctx context.Context, name, secret string) (bool, error) {
	if err := s.sleep(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if strings.EqualFold(m.Name, name) && s.matcher.Match(secret, m.Secret) {
			// Persist before committing: a failed write must leave the
			// store logged out.
			id := Identity{ID: m.ID, Name: m.Name}
			if err := s.persistSession(ctx, id); err != nil {
				return false, err
			}
			s.session = &id
			slog.InfoContext(ctx, "Member logged in", "member", m.Name)
			return true, nil
		}
	}
	return false, nil
}

// Register appends a new member and logs them in. It reports false, without
// touching the roster, when the name is already taken (case-insensitive).
func (s *Store) Register(ctx context.Context, name, secret string) (bool, error) {
	if err := s.sleep(ctx); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if strings.EqualFold(m.Name, name) {
			return false, nil
		}
	}

	encoded, err := s.matcher.Encode(secret)
	if err != nil {
		return false, fmt.Errorf("encode secret: %w", err)
	}
	member := Member{ID: newMemberID(), Name: name, Secret: encoded}

	// Persist the grown roster first; the in-memory copy only changes once
	// the write succeeded.
	members := append(append([]Member(nil), s.members...), member)
	if err := s.persistRoster(ctx, members); err != nil {
		return false, err
	}
	s.members = members

	id := Identity{ID: member.ID, Name: member.Name}
	if err := s.persistSession(ctx, id); err != nil {
		return false, err
	}
	s.session = &id
	slog.InfoContext(ctx, "Member registered", "member", member.Name)
	return true, nil
}

// Logout clears the session identity. The in-memory session is always
// cleared, even if removing the persisted key fails.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	if err := s.kv.Delete(ctx, sessionKey); err != nil {
		slog.WarnContext(ctx, "Failed to remove persisted session", "error", err)
	}
}

// Current returns the session identity, if any.
func (s *Store) Current() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Identity{}, false
	}
	return *s.session, true
}

// Members returns a copy of the roster without secrets.
func (s *Store) Members() []Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Identity, len(s.members))
	for i, m := range s.members {
		out[i] = Identity{ID: m.ID, Name: m.Name}
	}
	return out
}

func newMemberID() string {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("m%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}

package session

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Auth is the cached sign in. It only drives what the UI shows; the API
// checks every request on its own.
type Auth struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Authorized reports whether the cached user may edit content.
func (a *Auth) Authorized() bool {
	return a != nil && a.Token != "" && a.User.CanEdit()
}

type Session struct {
	store  *Store
	logger zerolog.Logger

	mu     sync.RWMutex
	auth   *Auth
	subs   map[int]func(*Auth)
	nextID int
}

// Open reads the current sign in from store.
func Open(store *Store) (*Session, error) {
	s := &Session{
		store:  store,
		logger: log.With().Str("component", "session").Logger(),
		subs:   make(map[int]func(*Auth)),
	}
	auth, err := s.read()
	if err != nil {
		return nil, err
	}
	s.auth = auth
	return s, nil
}

// Current returns a copy of the cached sign in, or nil.
func (s *Session) Current() *Auth {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAuth(s.auth)
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.auth == nil {
		return ""
	}
	return s.auth.Token
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.auth.Authorized()
}

func (s *Session) SignIn(token string, user models.User) error {
	if token == "" {
		return fmt.Errorf("sign in without a token")
	}
	auth := &Auth{Token: token, User: &user}
	if err := s.store.Set(AuthKey, auth); err != nil {
		return err
	}
	s.set(auth)
	return nil
}

func (s *Session) SignOut() error {
	if err := s.store.Delete(AuthKey); err != nil {
		return err
	}
	s.set(nil)
	return nil
}

// Subscribe registers fn to be called with the new state after every
// change. The returned function removes it.
func (s *Session) Subscribe(fn func(*Auth)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Reload re-reads the store and notifies subscribers if the sign in
// changed.
func (s *Session) Reload() error {
	auth, err := s.read()
	if err != nil {
		return err
	}

	s.mu.RLock()
	same := reflect.DeepEqual(s.auth, auth)
	s.mu.RUnlock()
	if !same {
		s.set(auth)
	}
	return nil
}

// Watch reloads the session whenever another process rewrites the store,
// until ctx is done. The directory is watched rather than the file so
// that atomic renames are seen.
func (s *Session) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	path, err := filepath.Abs(s.store.Path())
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to reload session")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("Session watcher error")
		}
	}
}

func (s *Session) read() (*Auth, error) {
	var auth Auth
	found, err := s.store.Get(AuthKey, &auth)
	if err != nil || !found {
		return nil, err
	}
	return &auth, nil
}

// set swaps the state and calls subscribers outside the lock.
func (s *Session) set(auth *Auth) {
	s.mu.Lock()
	s.auth = auth
	subs := make([]func(*Auth), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(copyAuth(auth))
	}
}

func copyAuth(a *Auth) *Auth {
	if a == nil {
		return nil
	}
	out := &Auth{Token: a.Token}
	if a.User != nil {
		user := *a.User
		out.User = &user
	}
	return out
}

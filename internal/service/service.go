package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

const dateLayout = "2006-01-02"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotMember          = errors.New("not a member of this circle")
	ErrNotBusiness        = errors.New("business account required")
	ErrPromotionInactive  = errors.New("promotion is not active")
)

var validate = validator.New()

// Notifier receives every notification after it has been persisted.
type Notifier interface {
	Notify(ctx context.Context, userID string, n models.Notification) error
}

// Notifiers fans a notification out to several Notifiers.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, userID string, n models.Notification) error {
	var errs []error
	for _, notifier := range ns {
		if err := notifier.Notify(ctx, userID, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Mailer interface {
	SendWelcomeEmail(to, name string, business bool) error
}

// Service runs every domain operation as a load-mutate-save cycle against
// Store. Cycles on the same collection are serialised within the process.
type Service struct {
	Store    store.Store
	Notifier Notifier
	Mailer   Mailer
	Now      func() time.Time

	mu    sync.Mutex
	locks map[store.Collection]*sync.Mutex
}

func New(st store.Store) *Service {
	return &Service{Store: st, Now: time.Now}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Today returns the current date as YYYY-MM-DD.
func (s *Service) Today() string {
	return s.now().Format(dateLayout)
}

// lock acquires the per-collection mutexes in a fixed order and returns the
// matching unlock.
func (s *Service) lock(cs ...store.Collection) func() {
	s.mu.Lock()
	if s.locks == nil {
		s.locks = make(map[store.Collection]*sync.Mutex, len(store.Collections))
		for _, c := range store.Collections {
			s.locks[c] = &sync.Mutex{}
		}
	}
	s.mu.Unlock()

	ordered := slices.Clone(cs)
	slices.SortFunc(ordered, func(a, b store.Collection) int {
		return slices.Index(store.Collections, a) - slices.Index(store.Collections, b)
	})
	ordered = slices.Compact(ordered)

	for _, c := range ordered {
		s.locks[c].Lock()
	}
	return func() {
		for i := len(ordered) - 1; i >= 0; i-- {
			s.locks[ordered[i]].Unlock()
		}
	}
}

// load reads c under its collection lock. Load may persist a default
// document, which must not race a locked load-mutate-save cycle.
func (s *Service) load(ctx context.Context, c store.Collection, v any) error {
	defer s.lock(c)()
	return s.Store.Load(ctx, c, v)
}

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// pendingNotification is queued while collection locks are held and sent
// once they are released.
type pendingNotification struct {
	userID    string
	kind      string
	content   string
	relatedID string
}

func (s *Service) flush(ctx context.Context, pending []pendingNotification) {
	for _, p := range pending {
		if err := s.AddNotification(ctx, p.userID, p.kind, p.content, p.relatedID); err != nil {
			log.Printf("service: notify %s (%s): %v", p.userID, p.kind, err)
		}
	}
}

func addUnique(set []string, v string) ([]string, bool) {
	if slices.Contains(set, v) {
		return set, false
	}
	return append(set, v), true
}

func removeValue(set []string, v string) ([]string, bool) {
	n := len(set)
	set = slices.DeleteFunc(set, func(x string) bool { return x == v })
	return set, len(set) != n
}

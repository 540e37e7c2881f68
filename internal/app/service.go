package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"campus_market/internal/adapters/observability"
	"campus_market/internal/domain"
	"campus_market/internal/fallback"
)

// Service is the resource access facade. Reads never fail because the
// backend is unreachable; they degrade to synthesized data. Writes degrade
// to locally built acknowledgments with IsSimulated set.
type Service struct {
	exec  domain.Executor
	synth domain.Synthesizer
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithIDs(newID func() string) Option { return func(s *Service) { s.newID = newID } }

func NewService(exec domain.Executor, synth domain.Synthesizer, opts ...Option) *Service {
	if synth == nil {
		synth = fallback.New()
	}
	s := &Service{
		exec:  exec,
		synth: synth,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// code builds a short human-readable reference such as BK-1A2B3C4D.
func (s *Service) code(prefix string) string {
	id := strings.ReplaceAll(s.newID(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return prefix + "-" + strings.ToUpper(id)
}

func (s *Service) localID() string { return "local-" + s.newID() }

func (s *Service) call(ctx context.Context, op, id, method string, body any) (domain.Response, error) {
	return s.exec.Execute(ctx, Candidates(op, id), domain.Request{Method: method, Body: body})
}

// routeLister is satisfied by executor errors that know which candidates
// were tried.
type routeLister interface{ Routes() []string }

func degraded(op, kind string, err error) {
	ev := log.Warn().Err(err).Str("op", op).Str("fallback", kind)
	var rl routeLister
	if errors.As(err, &rl) {
		ev = ev.Strs("tried", rl.Routes())
	}
	ev.Msg("backend unavailable; degrading")
	observability.ObserveFallback(op, kind)
}

// fetchList runs a list read and falls back to synth when the chain is
// exhausted or the body cannot be read as a list. A valid empty list is
// live data and is returned as is.
func fetchList[T any](ctx context.Context, s *Service, op, id string, mapFn func(map[string]any) T, synth func() []T, names ...string) []T {
	resp, err := s.call(ctx, op, id, http.MethodGet, nil)
	if err == nil {
		if items, ok := normalizeList(resp.Body, mapFn, names...); ok {
			return items
		}
		err = fmt.Errorf("%s via %s: %w", op, resp.Route, domain.ErrUnusableBody)
	}
	degraded(op, "synthesized", err)
	return synth()
}

func fetchOne[T any](ctx context.Context, s *Service, op, id string, mapFn func(map[string]any) T, synth func() T, names ...string) T {
	resp, err := s.call(ctx, op, id, http.MethodGet, nil)
	if err == nil {
		if item, ok := normalizeOne(resp.Body, mapFn, names...); ok {
			return item
		}
		err = fmt.Errorf("%s via %s: %w", op, resp.Route, domain.ErrUnusableBody)
	}
	degraded(op, "synthesized", err)
	return synth()
}

func invalid(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, what)
}

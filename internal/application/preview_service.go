package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/guiabox/playlist-manager/internal/epg"
)

// Preview flow errors. Both mean "render nothing", not "render an error":
// the preview is advisory and never gates a channel save.
var (
	// ErrSuperseded means a newer guide value was requested for the same
	// editor session while this lookup was debouncing or in flight.
	ErrSuperseded = errors.New("preview request superseded by a newer guide value")

	// ErrNotALink means the guide value does not look like an absolute
	// URL yet, so no lookup was issued at all.
	ErrNotALink = errors.New("guide value is not an absolute URL")
)

// PreviewService debounces EPG preview lookups and drops stale results.
// Each editor session carries a monotonically increasing sequence number;
// a lookup whose sequence is no longer current when it completes is
// discarded rather than rendered. Not a queue: only the latest requested
// guide value may ever produce a visible preview.
type PreviewService struct {
	client   *epg.Client
	debounce time.Duration

	mu       sync.Mutex
	sessions map[string]uint64
}

// NewPreviewService creates a PreviewService with the given debounce
// interval.
func NewPreviewService(client *epg.Client, debounce time.Duration) *PreviewService {
	return &PreviewService{
		client:   client,
		debounce: debounce,
		sessions: make(map[string]uint64),
	}
}

// Preview looks up the programme preview for guide, on behalf of the
// given editor session. It waits out the debounce interval first; if a
// newer request for the same session arrives during the wait or during
// the network fetch, the result is dropped and ErrSuperseded is returned.
func (s *PreviewService) Preview(ctx context.Context, session, guide string) (epg.Preview, error) {
	if !strings.HasPrefix(guide, "http") {
		return epg.Preview{}, ErrNotALink
	}

	seq := s.begin(session)

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return epg.Preview{}, ctx.Err()
	case <-timer.C:
	}

	if !s.isCurrent(session, seq) {
		return epg.Preview{}, ErrSuperseded
	}

	preview, err := s.client.Lookup(ctx, guide)

	// Re-check after the fetch: an in-flight lookup must not surface once
	// a fresher guide value has been requested.
	if !s.isCurrent(session, seq) {
		return epg.Preview{}, ErrSuperseded
	}
	if err != nil {
		return epg.Preview{}, err
	}
	return preview, nil
}

// CloseSession discards anything pending or in flight for the session.
// Called when the channel editor closes; lookups already on the wire are
// not aborted, their results just never surface.
func (s *PreviewService) CloseSession(session string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, session)
}

// begin registers a new request for the session and returns its sequence
// number, invalidating any older request still pending.
func (s *PreviewService) begin(session string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session]++
	return s.sessions[session]
}

// isCurrent reports whether seq is still the latest request issued for
// the session. A closed session has no current request.
func (s *PreviewService) isCurrent(session string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sessions[session]
	return ok && cur == seq
}

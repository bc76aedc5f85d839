package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/naka-gawa/gitfinder/internal/domain"
)

// Token identifies one search. Tokens grow monotonically per Session.
type Token uint64

// SessionView is an immutable copy of a session's state with derived stats.
type SessionView struct {
	Token        Token
	Handle       string
	State        domain.RequestState
	Message      string
	Profile      *domain.Profile
	Repositories []domain.Repository
	Events       []domain.ActivityEvent
	Issues       []domain.Issue
	Readme       string
	Selection    domain.Selection
	Stats        domain.RepoStats
	Pending      map[domain.Part]bool
	Failures     []domain.Part
}

// Loading reports whether part has been requested but not delivered yet.
func (v SessionView) Loading(part domain.Part) bool {
	return v.Pending[part]
}

// Session holds the request state of the current search. Starting a search
// clears everything from the previous one and cancels it; results carrying an
// older token are dropped. Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	topN     int
	token    Token
	cancel   context.CancelFunc
	handle   string
	state    domain.RequestState
	message  string
	profile  *domain.Profile
	repos    []domain.Repository
	events   []domain.ActivityEvent
	issues   []domain.Issue
	readme   string
	sel      domain.Selection
	pending  map[domain.Part]bool
	failures []domain.Part
}

// NewSession creates an idle session showing topN languages.
func NewSession(topN int) *Session {
	if topN <= 0 {
		topN = DefaultTopLanguages
	}
	return &Session{topN: topN, sel: domain.DefaultSelection()}
}

// Begin starts a new search for handle and returns its token and a context
// that is cancelled when the next search begins.
func (s *Session) Begin(handle string) (Token, context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.token++
	s.clear()
	s.handle = handle
	s.state = domain.StateLoading
	return s.token, ctx
}

// Reset cancels any search in flight and returns the session to idle.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.token++
	s.clear()
	s.handle = ""
	s.state = domain.StateIdle
}

func (s *Session) clear() {
	s.message = ""
	s.profile = nil
	s.repos = nil
	s.events = nil
	s.issues = nil
	s.readme = ""
	s.sel = domain.DefaultSelection()
	s.pending = make(map[domain.Part]bool)
	s.failures = nil
}

// Expect marks parts as requested for the search identified by tok.
func (s *Session) Expect(tok Token, parts ...domain.Part) bool {
	return s.apply(tok, func() {
		for _, p := range parts {
			s.pending[p] = true
		}
	})
}

// ApplyProfile records the profile of the current search.
func (s *Session) ApplyProfile(tok Token, p *domain.Profile) bool {
	return s.apply(tok, func() { s.profile = p })
}

// ApplyRepositories records the repository list or its failure.
func (s *Session) ApplyRepositories(tok Token, repos []domain.Repository, err error) bool {
	return s.applyPart(tok, domain.PartRepositories, err, func() { s.repos = repos })
}

// ApplyEvents records the recent events or their failure.
func (s *Session) ApplyEvents(tok Token, events []domain.ActivityEvent, err error) bool {
	return s.applyPart(tok, domain.PartEvents, err, func() { s.events = events })
}

// ApplyReadme records the profile README or its failure.
func (s *Session) ApplyReadme(tok Token, readme string, err error) bool {
	return s.applyPart(tok, domain.PartReadme, err, func() { s.readme = readme })
}

// ApplyIssues records the open issues or their failure.
func (s *Session) ApplyIssues(tok Token, issues []domain.Issue, err error) bool {
	return s.applyPart(tok, domain.PartIssues, err, func() { s.issues = issues })
}

// Fail ends the search with a gating failure. All data stays cleared.
func (s *Session) Fail(tok Token, err error) bool {
	return s.apply(tok, func() {
		s.clear()
		s.state = domain.StateError
		s.message = UserMessage(err)
	})
}

// Finish ends the search; the state is partial if any dependent fetch failed.
func (s *Session) Finish(tok Token) bool {
	return s.apply(tok, func() {
		s.pending = make(map[domain.Part]bool)
		if len(s.failures) > 0 {
			s.state = domain.StatePartial
			return
		}
		s.state = domain.StateSuccess
	})
}

// Run executes a search begun with Begin through finder, feeding results
// into the session as they arrive.
func (s *Session) Run(ctx context.Context, tok Token, finder *Finder, handle string) error {
	s.Expect(tok, finder.opts.Parts...)
	_, err := finder.Lookup(ctx, handle, sessionSink{s: s, tok: tok})
	switch {
	case err == nil:
		s.Finish(tok)
	case errors.Is(err, context.Canceled):
		// Superseded by a newer search.
	default:
		s.Fail(tok, err)
	}
	return err
}

// Search begins a new search for handle and runs it to completion.
func (s *Session) Search(finder *Finder, handle string) (SessionView, error) {
	tok, ctx := s.Begin(handle)
	err := s.Run(ctx, tok, finder, handle)
	return s.View(), err
}

// Select changes the language filter and sort key of the repository view.
func (s *Session) Select(sel domain.Selection) {
	if sel.Language == "" {
		sel.Language = domain.FilterAll
	}
	if sel.Sort == "" {
		sel.Sort = domain.SortUpdated
	}
	s.mu.Lock()
	s.sel = sel
	s.mu.Unlock()
}

// View returns a copy of the current state with the derived statistics.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := make(map[domain.Part]bool, len(s.pending))
	for k, v := range s.pending {
		pending[k] = v
	}
	return SessionView{
		Token:        s.token,
		Handle:       s.handle,
		State:        s.state,
		Message:      s.message,
		Profile:      s.profile,
		Repositories: s.repos,
		Events:       s.events,
		Issues:       s.issues,
		Readme:       s.readme,
		Selection:    s.sel,
		Stats:        Derive(s.repos, s.sel, s.topN),
		Pending:      pending,
		Failures:     append([]domain.Part(nil), s.failures...),
	}
}

func (s *Session) apply(tok Token, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok != s.token || s.state != domain.StateLoading {
		return false
	}
	fn()
	return true
}

func (s *Session) applyPart(tok Token, part domain.Part, err error, fn func()) bool {
	return s.apply(tok, func() {
		delete(s.pending, part)
		if err != nil {
			s.failures = append(s.failures, part)
			return
		}
		fn()
	})
}

type sessionSink struct {
	s   *Session
	tok Token
}

func (k sessionSink) Profile(p *domain.Profile) {
	k.s.ApplyProfile(k.tok, p)
}

func (k sessionSink) Repositories(repos []domain.Repository, err error) {
	k.s.ApplyRepositories(k.tok, repos, err)
}

func (k sessionSink) Events(events []domain.ActivityEvent, err error) {
	k.s.ApplyEvents(k.tok, events, err)
}

func (k sessionSink) Readme(readme string, err error) {
	k.s.ApplyReadme(k.tok, readme, err)
}

func (k sessionSink) Issues(issues []domain.Issue, err error) {
	k.s.ApplyIssues(k.tok, issues, err)
}

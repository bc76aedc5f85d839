// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/gateway"
)

// ErrEmptyHandle is returned when the search input is blank.
var ErrEmptyHandle = errors.New("empty username")

// AllParts lists every dependent fetch issued after a successful profile lookup.
var AllParts = []domain.Part{domain.PartRepositories, domain.PartEvents, domain.PartReadme, domain.PartIssues}

// Sink receives results of a lookup as they arrive.
// Dependent results may be delivered concurrently and in any order.
type Sink interface {
	Profile(p *domain.Profile)
	Repositories(repos []domain.Repository, err error)
	Events(events []domain.ActivityEvent, err error)
	Readme(readme string, err error)
	Issues(issues []domain.Issue, err error)
}

// FinderOptions bounds what a lookup fetches.
type FinderOptions struct {
	RepoPageSize int
	EventLimit   int
	IssueLimit   int
	// Parts selects the dependent fetches to issue. Nil means AllParts.
	Parts []domain.Part
}

// Finder is the use case for looking up a GitHub user.
// It orchestrates the gating profile call and the dependent fetches.
type Finder struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
	opts    FinderOptions
}

// NewFinder creates a new Finder instance.
func NewFinder(fetcher gateway.Fetcher, logger *log.Logger, opts FinderOptions) *Finder {
	if opts.Parts == nil {
		opts.Parts = AllParts
	}
	return &Finder{
		fetcher: fetcher,
		logger:  logger,
		opts:    opts,
	}
}

// Lookup fetches the profile of handle and, if it exists, the dependent data.
// Only a failure of the profile call is returned; dependent failures are
// logged and recorded in Snapshot.Failures. sink may be nil.
func (f *Finder) Lookup(ctx context.Context, handle string, sink Sink) (*domain.Snapshot, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, ErrEmptyHandle
	}
	if sink == nil {
		sink = nopSink{}
	}
	f.logger.Printf("Usecase: Looking up %s...", handle)

	for _, part := range f.opts.Parts {
		if !knownPart(part) {
			return nil, fmt.Errorf("unknown lookup part %q", part)
		}
	}

	profile, err := f.fetcher.FetchProfile(ctx, handle)
	if err != nil {
		return nil, err
	}
	sink.Profile(profile)
	// Dependent calls use the canonical login.
	login := profile.Login
	if login == "" {
		login = handle
	}

	snap := &domain.Snapshot{Profile: profile, Failures: make(map[domain.Part]error)}
	var mu sync.Mutex
	fail := func(part domain.Part, err error) {
		f.logger.Printf("Usecase: %s unavailable for %s: %v", part, login, err)
		mu.Lock()
		snap.Failures[part] = err
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, part := range f.opts.Parts {
		part := part // per-iteration copy; go directive predates Go 1.22 loopvar semantics
		switch part {
		case domain.PartRepositories:
			eg.Go(func() error {
				repos, err := f.fetcher.FetchRepositories(egCtx, login, gateway.RepoListOptions{PageSize: f.opts.RepoPageSize})
				if err != nil {
					fail(part, err)
					repos = nil
				}
				mu.Lock()
				snap.Repositories = repos
				mu.Unlock()
				sink.Repositories(repos, err)
				return nil
			})
		case domain.PartEvents:
			eg.Go(func() error {
				events, err := f.fetcher.FetchRecentEvents(egCtx, login, f.opts.EventLimit)
				if err != nil {
					fail(part, err)
					events = nil
				}
				mu.Lock()
				snap.Events = events
				mu.Unlock()
				sink.Events(events, err)
				return nil
			})
		case domain.PartReadme:
			eg.Go(func() error {
				readme, err := f.fetcher.FetchProfileReadme(egCtx, login)
				if err != nil {
					fail(part, err)
					readme = ""
				}
				mu.Lock()
				snap.Readme = readme
				mu.Unlock()
				sink.Readme(readme, err)
				return nil
			})
		case domain.PartIssues:
			eg.Go(func() error {
				issues, err := f.fetcher.FetchOpenIssues(egCtx, login, f.opts.IssueLimit)
				if err != nil {
					fail(part, err)
					issues = nil
				}
				mu.Lock()
				snap.Issues = issues
				mu.Unlock()
				sink.Issues(issues, err)
				return nil
			})
		}
	}
	// Goroutines never fail the group.
	_ = eg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.logger.Printf("Usecase: Lookup of %s complete (%d failed parts).", login, len(snap.Failures))
	return snap, nil
}

// UserMessage is the text shown to the user for a failed search.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyHandle):
		return "Please enter a GitHub username."
	case errors.Is(err, gateway.ErrNotFound):
		return "User not found!"
	}
	return "An error occurred. Please try again."
}

type nopSink struct{}

func (nopSink) Profile(*domain.Profile) {}
func (nopSink) Repositories([]domain.Repository, error) {}
func (nopSink) Events([]domain.ActivityEvent, error) {}
func (nopSink) Readme(string, error) {}
func (nopSink) Issues([]domain.Issue, error) {}

func knownPart(p domain.Part) bool {
	for _, known := range AllParts {
		if p == known {
			return true
		}
	}
	return false
}

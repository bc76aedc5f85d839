// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client and its error shapes.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/naka-gawa/gitfinder/internal/domain"
)

const (
	// MaxPageSize is the largest repository page GitHub serves.
	MaxPageSize = 100
	// MaxEvents bounds the recent activity list.
	MaxEvents = 10
	// MaxIssues bounds the open issue list.
	MaxIssues = 5
)

// RepoListOptions controls the single repository page that is fetched.
type RepoListOptions struct {
	PageSize  int
	Sort      string
	Direction string
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	FetchProfile(ctx context.Context, handle string) (*domain.Profile, error)
	FetchRepositories(ctx context.Context, handle string, opts RepoListOptions) ([]domain.Repository, error)
	FetchRecentEvents(ctx context.Context, handle string, limit int) ([]domain.ActivityEvent, error)
	// FetchProfileReadme returns an empty string and no error when the user has no profile README.
	FetchProfileReadme(ctx context.Context, handle string) (string, error)
	FetchOpenIssues(ctx context.Context, handle string, limit int) ([]domain.Issue, error)
}

// Options configures NewGitHubGateway.
type Options struct {
	// BaseURL overrides the REST endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	Timeout time.Duration
	Logger  *log.Logger
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options) (*GitHubGateway, error) {
	httpClient := &http.Client{Timeout: opts.Timeout}
	restClient := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		baseURL, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", opts.BaseURL, err)
		}
		restClient.BaseURL = baseURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &GitHubGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile looks up a user by handle. It is the gating call of a search.
// Handles are escaped as single path segments in every call, so input such as
// "octocat?x=1" cannot be rewritten into a request for another user.
func (g *GitHubGateway) FetchProfile(ctx context.Context, handle string) (*domain.Profile, error) {
	g.logger.Printf("Fetching profile for %s...", handle)
	user, _, err := g.restClient.Users.Get(ctx, url.PathEscape(handle))
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to fetch profile %q", handle), err)
	}
	return &domain.Profile{
		Login:           user.GetLogin(),
		Name:            user.GetName(),
		AvatarURL:       user.GetAvatarURL(),
		HTMLURL:         user.GetHTMLURL(),
		Bio:             user.GetBio(),
		Location:        user.GetLocation(),
		Company:         user.GetCompany(),
		Blog:            user.GetBlog(),
		TwitterUsername: user.GetTwitterUsername(),
		Followers:       user.GetFollowers(),
		Following:       user.GetFollowing(),
		PublicRepos:     user.GetPublicRepos(),
		PublicGists:     user.GetPublicGists(),
		CreatedAt:       user.GetCreatedAt().Time,
	}, nil
}

// FetchRepositories fetches a single page of the user's repositories.
func (g *GitHubGateway) FetchRepositories(ctx context.Context, handle string, opts RepoListOptions) ([]domain.Repository, error) {
	opts = opts.normalize()
	g.logger.Printf("Fetching up to %d repositories for %s...", opts.PageSize, handle)
	listOpts := &github.RepositoryListByUserOptions{
		Sort:        opts.Sort,
		Direction:   opts.Direction,
		ListOptions: github.ListOptions{PerPage: opts.PageSize},
	}
	repos, _, err := g.restClient.Repositories.ListByUser(ctx, url.PathEscape(handle), listOpts)
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to list repositories of %q", handle), err)
	}
	result := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		result = append(result, domain.Repository{
			ID:          r.GetID(),
			Name:        r.GetName(),
			Description: r.GetDescription(),
			HTMLURL:     r.GetHTMLURL(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			Language:    r.GetLanguage(),
			UpdatedAt:   r.GetUpdatedAt().Time,
			Topics:      r.Topics,
		})
	}
	g.logger.Printf("Fetched %d repositories.", len(result))
	return result, nil
}

// FetchRecentEvents fetches the user's most recent public events, newest first.
func (g *GitHubGateway) FetchRecentEvents(ctx context.Context, handle string, limit int) ([]domain.ActivityEvent, error) {
	limit = clamp(limit, 1, MaxEvents)
	g.logger.Printf("Fetching recent events for %s...", handle)
	events, _, err := g.restClient.Activity.ListEventsPerformedByUser(ctx, url.PathEscape(handle), true, &github.ListOptions{PerPage: limit})
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to list events of %q", handle), err)
	}
	if len(events) > limit {
		events = events[:limit]
	}
	result := make([]domain.ActivityEvent, 0, len(events))
	for _, e := range events {
		ev := domain.ActivityEvent{
			ID:        e.GetID(),
			Kind:      e.GetType(),
			RepoName:  e.GetRepo().GetName(),
			CreatedAt: e.GetCreatedAt().Time,
		}
		if e.RawPayload != nil {
			ev.Payload = *e.RawPayload
		}
		result = append(result, ev)
	}
	return result, nil
}

// FetchProfileReadme reads the README of the repository named after the handle.
func (g *GitHubGateway) FetchProfileReadme(ctx context.Context, handle string) (string, error) {
	g.logger.Printf("Fetching profile README for %s...", handle)
	readme, _, err := g.restClient.Repositories.GetReadme(ctx, url.PathEscape(handle), url.PathEscape(handle), nil)
	if err != nil {
		err = classify(fmt.Sprintf("failed to fetch profile README of %q", handle), err)
		if errors.Is(err, ErrNotFound) {
			g.logger.Printf("No profile README for %s.", handle)
			return "", nil
		}
		return "", err
	}
	content, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode profile README of %q: %w", handle, err)
	}
	return content, nil
}

// FetchOpenIssues searches for open issues authored by the user.
func (g *GitHubGateway) FetchOpenIssues(ctx context.Context, handle string, limit int) ([]domain.Issue, error) {
	limit = clamp(limit, 1, MaxIssues)
	g.logger.Printf("Fetching open issues for %s...", handle)
	query := fmt.Sprintf("author:%s type:issue state:open", handle)
	found, _, err := g.restClient.Search.Issues(ctx, query, &github.SearchOptions{ListOptions: github.ListOptions{PerPage: limit}})
	if err != nil {
		return nil, classify(fmt.Sprintf("failed to search issues of %q", handle), err)
	}
	issues := found.Issues
	if len(issues) > limit {
		issues = issues[:limit]
	}
	result := make([]domain.Issue, 0, len(issues))
	for _, i := range issues {
		var repoName string
		if u := i.GetRepositoryURL(); u != "" {
			repoName = path.Base(u)
		}
		result = append(result, domain.Issue{
			Number:    i.GetNumber(),
			Title:     i.GetTitle(),
			HTMLURL:   i.GetHTMLURL(),
			RepoName:  repoName,
			CreatedAt: i.GetCreatedAt().Time,
		})
	}
	return result, nil
}

func (o RepoListOptions) normalize() RepoListOptions {
	if o.PageSize <= 0 {
		o.PageSize = MaxPageSize
	}
	o.PageSize = clamp(o.PageSize, 1, MaxPageSize)
	if o.Sort == "" {
		o.Sort = "updated"
	}
	if o.Direction == "" {
		o.Direction = "desc"
	}
	return o
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

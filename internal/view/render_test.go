package view

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/gateway"
	"github.com/naka-gawa/gitfinder/internal/usecase"
)

var fixedNow = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newTestRenderer(t *testing.T, preset string) *Renderer {
	t.Helper()
	p, err := LookupPreset(preset)
	require.NoError(t, err)
	th, err := LookupTheme("mono")
	require.NoError(t, err)
	r := NewRenderer(p, th)
	r.now = func() time.Time { return fixedNow }
	return r
}

func loadedSession(t *testing.T) *usecase.Session {
	t.Helper()
	s := usecase.NewSession(5)
	tok, _ := s.Begin("octocat")
	s.ApplyProfile(tok, &domain.Profile{
		Login: "octocat", Name: "The Octocat", Bio: "Cat of code", Company: "GitHub", Location: "SF",
		Followers: 12345, Following: 9, PublicRepos: 3, PublicGists: 4,
		CreatedAt: time.Date(2011, 1, 25, 0, 0, 0, 0, time.UTC),
	})
	s.ApplyRepositories(tok, []domain.Repository{
		{Name: "hello-world", Language: "Go", Stars: 7, Forks: 1, UpdatedAt: fixedNow.AddDate(0, 0, -3), Description: "first repo"},
		{Name: "spoon-knife", Language: "HTML", Stars: 40, Forks: 12, UpdatedAt: fixedNow.AddDate(0, -2, 0)},
		{Name: "dotfiles", Stars: 1, UpdatedAt: fixedNow.AddDate(-1, 0, -1)},
	}, nil)
	s.ApplyEvents(tok, []domain.ActivityEvent{{Kind: "PushEvent", RepoName: "octocat/hello-world", CreatedAt: fixedNow.Add(-2 * time.Hour)}}, nil)
	s.ApplyIssues(tok, []domain.Issue{{Number: 7, Title: "Typo in docs", RepoName: "docs", CreatedAt: fixedNow.AddDate(0, 0, -1)}}, nil)
	s.ApplyReadme(tok, "# Hi, I'm Octocat", nil)
	s.Finish(tok)
	return s
}

func TestRenderer_Presets(t *testing.T) {
	testCases := []struct {
		preset   string
		contains []string
		excludes []string
	}{
		{
			preset:   "basic",
			contains: []string{"The Octocat", "@octocat", "12,345 followers", "3 repos", "4 gists", "hello-world", "Open Issues", "Typo in docs", "#7", "in repository: docs"},
			excludes: []string{"Recent Activity", "Top Languages", "README", "sort:"},
		},
		{
			preset:   "insights",
			contains: []string{"Recent Activity", "● Pushed to octocat/hello-world", "2 hours ago", "Top Languages", "★ 48 total stars", "Go"},
			excludes: []string{"Open Issues", "README", "sort:"},
		},
		{
			preset:   "full",
			contains: []string{"README", "# Hi, I'm Octocat", "language: all · sort: updated", "⑂ 12", "Updated 3 days ago"},
			excludes: []string{"Open Issues"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.preset, func(t *testing.T) {
			out := newTestRenderer(t, tc.preset).Render(loadedSession(t).View())
			for _, want := range tc.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestRenderer_States(t *testing.T) {
	r := newTestRenderer(t, "full")
	s := usecase.NewSession(5)
	assert.Contains(t, r.Render(s.View()), "Enter a GitHub username")

	tok, _ := s.Begin("ghost")
	s.Expect(tok, domain.PartRepositories)
	assert.Contains(t, r.Render(s.View()), "Searching for ghost")

	s.Fail(tok, gateway.ErrNotFound)
	out := r.Render(s.View())
	assert.Contains(t, out, "User not found!")
	assert.NotContains(t, out, "Repositories")
}

func TestRenderer_PartialFailureShowsProfile(t *testing.T) {
	r := newTestRenderer(t, "insights")
	s := usecase.NewSession(5)
	tok, _ := s.Begin("octocat")
	s.Expect(tok, domain.PartRepositories, domain.PartEvents)
	s.ApplyProfile(tok, &domain.Profile{Login: "octocat"})

	loading := r.Render(s.View())
	assert.Contains(t, loading, "loading...")

	s.ApplyRepositories(tok, nil, errors.New("boom"))
	s.ApplyEvents(tok, nil, errors.New("forbidden"))
	s.Finish(tok)

	out := r.Render(s.View())
	assert.Contains(t, out, "@octocat")
	assert.Contains(t, out, "No repositories found")
	assert.Contains(t, out, "No recent public activity")
	assert.Contains(t, out, "none")
	assert.NotContains(t, out, "error")
}

func TestRenderer_FilteredView(t *testing.T) {
	r := newTestRenderer(t, "full")
	s := loadedSession(t)
	s.Select(domain.Selection{Language: "HTML", Sort: domain.SortStars})

	out := r.Render(s.View())
	assert.Contains(t, out, "Repositories (1) · language: HTML · sort: stars")
	assert.Contains(t, out, "spoon-knife")
	assert.NotContains(t, out, "hello-world  ")
}

func TestLookupPresetAndTheme(t *testing.T) {
	p, err := LookupPreset("FULL")
	require.NoError(t, err)
	assert.Equal(t, []domain.Part{domain.PartRepositories, domain.PartEvents, domain.PartReadme}, p.Parts())

	p, err = LookupPreset("basic")
	require.NoError(t, err)
	assert.Equal(t, []domain.Part{domain.PartRepositories, domain.PartIssues}, p.Parts())

	_, err = LookupPreset("fancy")
	assert.ErrorContains(t, err, "basic, full, insights")

	_, err = LookupTheme("emerald")
	assert.NoError(t, err)
	_, err = LookupTheme("neon")
	assert.Error(t, err)
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "1,000", thousands(1000))
	assert.Equal(t, "1,234,567", thousands(1234567))
	assert.Equal(t, "-12,345", thousands(-12345))
}

package view

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/gateway"
	"github.com/naka-gawa/gitfinder/internal/usecase"
)

// stubFetcher serves fixed data for any handle except "ghost".
type stubFetcher struct{}

func (stubFetcher) FetchProfile(_ context.Context, handle string) (*domain.Profile, error) {
	if handle == "ghost" {
		return nil, gateway.ErrNotFound
	}
	return &domain.Profile{Login: handle}, nil
}

func (stubFetcher) FetchRepositories(context.Context, string, gateway.RepoListOptions) ([]domain.Repository, error) {
	return []domain.Repository{
		{Name: "a", Language: "Go", Stars: 1},
		{Name: "b", Language: "Rust", Stars: 9},
		{Name: "c", Language: "Go", Stars: 3},
	}, nil
}

func (stubFetcher) FetchRecentEvents(context.Context, string, int) ([]domain.ActivityEvent, error) {
	return nil, nil
}

func (stubFetcher) FetchProfileReadme(context.Context, string) (string, error) {
	return "", nil
}

func (stubFetcher) FetchOpenIssues(context.Context, string, int) ([]domain.Issue, error) {
	return nil, nil
}

func newTestBrowser(t *testing.T) Browser {
	t.Helper()
	r := newTestRenderer(t, "full")
	finder := usecase.NewFinder(stubFetcher{}, log.New(io.Discard, "", 0), usecase.FinderOptions{Parts: r.Preset().Parts()})
	return NewBrowser(usecase.NewSession(5), finder, r)
}

func typeText(b Browser, text string) Browser {
	m, _ := b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m.(Browser)
}

func press(b Browser, k tea.KeyType) (Browser, tea.Cmd) {
	m, cmd := b.Update(tea.KeyMsg{Type: k})
	return m.(Browser), cmd
}

// runSearch executes the search command batch produced by Enter.
func runSearch(t *testing.T, b Browser, cmd tea.Cmd) Browser {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok, "enter should return a batch")
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(searchDoneMsg); ok {
			m, _ := b.Update(done)
			b = m.(Browser)
		}
	}
	return b
}

func TestBrowser_TypingAndBackspace(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, "octocatx")
	b, _ = press(b, tea.KeyBackspace)
	assert.Equal(t, "octocat", b.input)
	assert.Contains(t, b.View(), "> octocat")
}

func TestBrowser_InputIsBounded(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, strings.Repeat("x", 60))
	assert.Len(t, b.input, maxHandleLen)
}

func TestBrowser_EnterSearches(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, "octocat")
	b, cmd := press(b, tea.KeyEnter)
	assert.Equal(t, domain.StateLoading, b.session.View().State)

	b = runSearch(t, b, cmd)
	v := b.session.View()
	assert.Equal(t, domain.StateSuccess, v.State)
	assert.Equal(t, "octocat", v.Profile.Login)
	assert.Contains(t, b.View(), "@octocat")
}

func TestBrowser_EmptyEnterDoesNothing(t *testing.T) {
	b := newTestBrowser(t)
	b, cmd := press(b, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, domain.StateIdle, b.session.View().State)
}

func TestBrowser_NotFound(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, "ghost")
	b, cmd := press(b, tea.KeyEnter)
	b = runSearch(t, b, cmd)
	assert.Equal(t, domain.StateError, b.session.View().State)
	assert.Contains(t, b.View(), "User not found!")
}

func TestBrowser_FilterAndSortKeys(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, "octocat")
	b, cmd := press(b, tea.KeyEnter)
	b = runSearch(t, b, cmd)

	b, _ = press(b, tea.KeyTab)
	assert.Equal(t, "Go", b.session.View().Selection.Language)
	b, _ = press(b, tea.KeyTab)
	assert.Equal(t, "Rust", b.session.View().Selection.Language)
	b, _ = press(b, tea.KeyTab)
	assert.Equal(t, domain.FilterAll, b.session.View().Selection.Language)

	b, _ = press(b, tea.KeyShiftTab)
	v := b.session.View()
	assert.Equal(t, domain.SortStars, v.Selection.Sort)
	assert.Equal(t, "b", v.Stats.View[0].Name)
}

func TestBrowser_EscResets(t *testing.T) {
	b := newTestBrowser(t)
	b = typeText(b, "octocat")
	b, cmd := press(b, tea.KeyEnter)
	b = runSearch(t, b, cmd)

	b, _ = press(b, tea.KeyEsc)
	assert.Empty(t, b.input)
	assert.Equal(t, domain.StateIdle, b.session.View().State)
	assert.Nil(t, b.session.View().Profile)
}

func TestBrowser_CtrlCQuits(t *testing.T) {
	b := newTestBrowser(t)
	_, cmd := press(b, tea.KeyCtrlC)
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestNextLanguageAndSort(t *testing.T) {
	langs := []domain.LanguageCount{{Language: "Go", Count: 2}, {Language: "Rust", Count: 1}}
	assert.Equal(t, "Go", nextLanguage(domain.FilterAll, langs))
	assert.Equal(t, "Rust", nextLanguage("Go", langs))
	assert.Equal(t, domain.FilterAll, nextLanguage("Rust", langs))
	assert.Equal(t, domain.FilterAll, nextLanguage("Gone", langs))
	assert.Equal(t, domain.FilterAll, nextLanguage(domain.FilterAll, nil))

	assert.Equal(t, domain.SortStars, nextSort(domain.SortUpdated))
	assert.Equal(t, domain.SortForks, nextSort(domain.SortStars))
	assert.Equal(t, domain.SortUpdated, nextSort(domain.SortForks))
	assert.Equal(t, domain.SortUpdated, nextSort("bogus"))
}

func TestTruncateToHeight(t *testing.T) {
	assert.Equal(t, "a\nb", truncateToHeight("a\nb\nc\nd", 2))
	assert.Equal(t, "a\nb", truncateToHeight("a\nb", 5))
}

package view

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/usecase"
)

// maxHandleLen is GitHub's username length limit.
const maxHandleLen = 39

// searchDoneMsg reports that the search identified by token has finished.
type searchDoneMsg struct {
	token usecase.Token
}

// refreshMsg redraws the screen while a search is loading.
type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

var spinner = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Browser is the interactive search screen.
type Browser struct {
	session  *usecase.Session
	finder   *usecase.Finder
	renderer *Renderer
	input    string
	frame    int
	width    int
	height   int
}

// NewBrowser creates the interactive search screen.
func NewBrowser(session *usecase.Session, finder *usecase.Finder, renderer *Renderer) Browser {
	return Browser{session: session, finder: finder, renderer: renderer}
}

func (b Browser) Init() tea.Cmd {
	return nil
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil

	case refreshMsg:
		if b.session.View().State != domain.StateLoading {
			return b, nil
		}
		b.frame++
		return b, refreshCmd()

	case searchDoneMsg:
		// Stale completions are ignored; the session already dropped their data.
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return b, tea.Quit
	case "esc":
		b.input = ""
		b.session.Reset()
		return b, nil
	case "enter":
		handle := strings.TrimSpace(b.input)
		if handle == "" {
			return b, nil
		}
		tok, ctx := b.session.Begin(handle)
		return b, tea.Batch(b.search(ctx, tok, handle), refreshCmd())
	case "tab":
		if b.renderer.Preset().FilterSort {
			v := b.session.View()
			v.Selection.Language = nextLanguage(v.Selection.Language, v.Stats.Languages)
			b.session.Select(v.Selection)
		}
		return b, nil
	case "shift+tab":
		if b.renderer.Preset().FilterSort {
			v := b.session.View()
			v.Selection.Sort = nextSort(v.Selection.Sort)
			b.session.Select(v.Selection)
		}
		return b, nil
	case "backspace":
		if r := []rune(b.input); len(r) > 0 {
			b.input = string(r[:len(r)-1])
		}
		return b, nil
	}
	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if utf8.RuneCountInString(b.input) >= maxHandleLen {
				break
			}
			b.input += string(r)
		}
	}
	return b, nil
}

func (b Browser) search(ctx context.Context, tok usecase.Token, handle string) tea.Cmd {
	session, finder := b.session, b.finder
	return func() tea.Msg {
		_ = session.Run(ctx, tok, finder, handle)
		return searchDoneMsg{token: tok}
	}
}

func (b Browser) View() string {
	v := b.session.View()
	prompt := b.renderer.styles.badge.Render("GIT") + b.renderer.styles.title.Render("Finder") + "  "
	prompt += b.renderer.styles.accent.Render("> ") + b.input + b.renderer.styles.muted.Render("▏")
	if v.State == domain.StateLoading {
		prompt += " " + b.renderer.styles.accent.Render(spinner[b.frame%len(spinner)])
	}

	help := "enter search · esc clear · ctrl+c quit"
	if b.renderer.Preset().FilterSort {
		help = "enter search · tab language · shift+tab sort · esc clear · ctrl+c quit"
	}

	body := b.renderer.Render(v)
	if b.height > 4 {
		body = truncateToHeight(body, b.height-4)
	}
	return prompt + "\n\n" + body + "\n\n" + b.renderer.styles.muted.Render(help)
}

// nextLanguage cycles "all" → each language in rank order → "all".
func nextLanguage(current string, langs []domain.LanguageCount) string {
	if current == domain.FilterAll || current == "" {
		if len(langs) == 0 {
			return domain.FilterAll
		}
		return langs[0].Language
	}
	for i, l := range langs {
		if l.Language == current && i+1 < len(langs) {
			return langs[i+1].Language
		}
	}
	return domain.FilterAll
}

func nextSort(current domain.SortKey) domain.SortKey {
	for i, k := range domain.SortKeys {
		if k == current {
			return domain.SortKeys[(i+1)%len(domain.SortKeys)]
		}
	}
	return domain.SortUpdated
}

// truncateToHeight limits output to maxLines newline-delimited lines.
func truncateToHeight(s string, maxLines int) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i]
			}
		}
	}
	return s
}

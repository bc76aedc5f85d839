package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/usecase"
)

const (
	readmeLines = 15
	barWidth    = 20
)

var icons = map[usecase.Icon]string{
	usecase.IconCommit:      "●",
	usecase.IconPullRequest: "⇄",
	usecase.IconStar:        "★",
	usecase.IconCreate:      "+",
	usecase.IconFork:        "⑂",
	usecase.IconIssue:       "!",
	usecase.IconActivity:    "·",
}

// Renderer draws a session view according to a preset and theme.
type Renderer struct {
	preset Preset
	styles styles
	now    func() time.Time
}

// NewRenderer creates a Renderer.
func NewRenderer(preset Preset, theme Theme) *Renderer {
	return &Renderer{preset: preset, styles: newStyles(theme), now: time.Now}
}

// Preset returns the preset the renderer was built with.
func (r *Renderer) Preset() Preset {
	return r.preset
}

// Render draws every section enabled by the preset.
func (r *Renderer) Render(v usecase.SessionView) string {
	switch v.State {
	case domain.StateIdle:
		return r.styles.muted.Render("Enter a GitHub username to search.")
	case domain.StateError:
		return r.styles.errBox.Render("✗ " + v.Message)
	}
	if v.Profile == nil {
		return r.styles.muted.Render(fmt.Sprintf("Searching for %s...", v.Handle))
	}

	blocks := []string{r.profile(v.Profile)}
	if r.preset.Languages {
		blocks = append(blocks, r.stats(v), r.languages(v))
	}
	blocks = append(blocks, r.repositories(v))
	if r.preset.Activity {
		blocks = append(blocks, r.activity(v))
	}
	if r.preset.Issues {
		blocks = append(blocks, r.issues(v))
	}
	if r.preset.Readme && (v.Readme != "" || v.Loading(domain.PartReadme)) {
		blocks = append(blocks, r.readme(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (r *Renderer) profile(p *domain.Profile) string {
	s := r.styles
	lines := []string{
		s.badge.Render("["+p.Initials()+"]") + " " + s.title.Render(p.DisplayName()),
		s.accent.Render("@" + p.Login),
	}
	if p.Bio != "" {
		lines = append(lines, s.text.Render(p.Bio))
	}
	var facts []string
	if p.Company != "" {
		facts = append(facts, p.Company)
	}
	if p.Location != "" {
		facts = append(facts, p.Location)
	}
	if !p.CreatedAt.IsZero() {
		facts = append(facts, "Joined "+p.CreatedAt.Format("Jan 2, 2006"))
	}
	if len(facts) > 0 {
		lines = append(lines, s.muted.Render(strings.Join(facts, " · ")))
	}
	var links []string
	if p.Blog != "" {
		links = append(links, p.Blog)
	}
	if p.TwitterUsername != "" {
		links = append(links, "x.com/"+p.TwitterUsername)
	}
	if len(links) > 0 {
		lines = append(lines, s.accent.Render(strings.Join(links, "  ")))
	}
	lines = append(lines, fmt.Sprintf("%s followers  %s following  %s repos  %s gists",
		s.title.Render(thousands(p.Followers)),
		s.title.Render(thousands(p.Following)),
		s.title.Render(thousands(p.PublicRepos)),
		s.title.Render(thousands(p.PublicGists))))
	return s.card.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) stats(v usecase.SessionView) string {
	s := r.styles
	if v.Loading(domain.PartRepositories) {
		return s.section.Render("Stats") + "\n" + s.muted.Render("loading...")
	}
	return s.section.Render("Stats") + "\n" + fmt.Sprintf("%s total stars  %s top language  %s repositories",
		s.star.Render("★ "+thousands(v.Stats.TotalStars)),
		s.title.Render(v.Stats.DominantLanguage),
		s.title.Render(thousands(len(v.Repositories))))
}

func (r *Renderer) languages(v usecase.SessionView) string {
	s := r.styles
	out := []string{s.section.Render("Top Languages")}
	if len(v.Stats.TopLanguages) == 0 {
		return strings.Join(append(out, s.muted.Render("No language data")), "\n")
	}
	width := 0
	for _, l := range v.Stats.TopLanguages {
		width = max(width, lipgloss.Width(l.Language))
	}
	for _, l := range v.Stats.TopLanguages {
		filled := int(l.Percent / 100 * barWidth)
		bar := s.accent.Render(strings.Repeat("█", filled)) + s.muted.Render(strings.Repeat("░", barWidth-filled))
		out = append(out, fmt.Sprintf("%-*s %s %3.0f%%", width, l.Language, bar, l.Percent))
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) repositories(v usecase.SessionView) string {
	s := r.styles
	title := "Repositories"
	if r.preset.FilterSort {
		title = fmt.Sprintf("Repositories (%d) · language: %s · sort: %s", len(v.Stats.View), v.Selection.Language, v.Selection.Sort)
	}
	out := []string{s.section.Render(title)}
	switch {
	case v.Loading(domain.PartRepositories):
		out = append(out, s.muted.Render("loading..."))
	case len(v.Stats.View) == 0:
		out = append(out, s.muted.Render("No repositories found"))
	default:
		now := r.now()
		for _, repo := range v.Stats.View {
			line := s.title.Render(repo.Name) + "  " + s.star.Render(fmt.Sprintf("★ %d", repo.Stars))
			if r.preset.FilterSort {
				line += s.muted.Render(fmt.Sprintf("  ⑂ %d", repo.Forks))
			}
			out = append(out, line)
			if repo.Description != "" {
				out = append(out, "  "+s.text.Render(repo.Description))
			}
			meta := "Updated " + usecase.Ago(repo.UpdatedAt, now)
			if repo.Language != "" {
				meta = repo.Language + " · " + meta
			}
			if len(repo.Topics) > 0 {
				meta += " · " + strings.Join(repo.Topics, ", ")
			}
			out = append(out, "  "+s.muted.Render(meta))
		}
	}
	if v.Profile != nil && len(v.Repositories) > 0 {
		out = append(out, s.accent.Render(fmt.Sprintf("→ https://github.com/%s?tab=repositories", v.Profile.Login)))
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) activity(v usecase.SessionView) string {
	s := r.styles
	out := []string{s.section.Render("Recent Activity")}
	switch {
	case v.Loading(domain.PartEvents):
		out = append(out, s.muted.Render("loading..."))
	case len(v.Events) == 0:
		out = append(out, s.muted.Render("No recent public activity"))
	default:
		now := r.now()
		for _, e := range v.Events {
			_, icon := usecase.DescribeEvent(e.Kind)
			out = append(out, fmt.Sprintf("%s %s %s",
				s.accent.Render(icons[icon]),
				s.text.Render(usecase.FormatEvent(e)),
				s.muted.Render(usecase.Ago(e.CreatedAt, now))))
		}
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) issues(v usecase.SessionView) string {
	s := r.styles
	out := []string{s.section.Render("Open Issues")}
	switch {
	case v.Loading(domain.PartIssues):
		out = append(out, s.muted.Render("loading..."))
	case len(v.Issues) == 0:
		out = append(out, s.muted.Render("No open issues found"))
	default:
		now := r.now()
		for _, i := range v.Issues {
			out = append(out, s.title.Render(i.Title)+" "+s.badge.Render(fmt.Sprintf("#%d", i.Number)))
			meta := "Opened " + usecase.Ago(i.CreatedAt, now)
			if i.RepoName != "" {
				meta += " · in repository: " + i.RepoName
			}
			out = append(out, "  "+s.muted.Render(meta))
		}
	}
	return strings.Join(out, "\n")
}

func (r *Renderer) readme(v usecase.SessionView) string {
	s := r.styles
	if v.Loading(domain.PartReadme) {
		return s.section.Render("README") + "\n" + s.muted.Render("loading...")
	}
	lines := strings.Split(strings.TrimSpace(v.Readme), "\n")
	more := len(lines) > readmeLines
	if more {
		lines = lines[:readmeLines]
	}
	body := s.text.Render(strings.Join(lines, "\n"))
	if more {
		body += "\n" + s.muted.Render("…")
	}
	return s.section.Render("README") + "\n" + s.card.Render(body)
}

// thousands formats n with comma separators.
func thousands(n int) string {
	str := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(str, "-")
	if neg {
		str = str[1:]
	}
	var b strings.Builder
	for i, c := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

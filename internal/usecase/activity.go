package usecase

import (
	"fmt"
	"time"

	"github.com/naka-gawa/gitfinder/internal/domain"
)

// Icon is the display category of an activity event.
type Icon string

const (
	IconCommit      Icon = "commit"
	IconPullRequest Icon = "pull-request"
	IconStar        Icon = "star"
	IconCreate      Icon = "create"
	IconFork        Icon = "fork"
	IconIssue       Icon = "issue"
	IconActivity    Icon = "activity"
)

type eventStyle struct {
	verb string
	icon Icon
}

var eventStyles = map[string]eventStyle{
	"PushEvent":        {"Pushed to", IconCommit},
	"PullRequestEvent": {"Opened PR in", IconPullRequest},
	"WatchEvent":       {"Starred", IconStar},
	"CreateEvent":      {"Created", IconCreate},
	"ForkEvent":        {"Forked", IconFork},
	"IssuesEvent":      {"Opened issue in", IconIssue},
}

// DescribeEvent maps an event kind to a verb and icon.
// Unknown kinds get "Interacted with".
func DescribeEvent(kind string) (string, Icon) {
	if s, ok := eventStyles[kind]; ok {
		return s.verb, s.icon
	}
	return "Interacted with", IconActivity
}

// FormatEvent renders an event as "<verb> <repo>".
func FormatEvent(e domain.ActivityEvent) string {
	verb, _ := DescribeEvent(e.Kind)
	return verb + " " + e.RepoName
}

// Ago renders the distance between t and now in words, e.g. "3 days ago".
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return plural(min(int(d/(30*24*time.Hour)), 11), "month")
	}
	return plural(int(d/(365*24*time.Hour)), "year")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// Package domain contains the core data structures of the application.
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// NoLanguage is reported as the dominant language when no repository declares one.
const NoLanguage = "none"

// Profile is a snapshot of a GitHub user's public profile.
type Profile struct {
	Login           string    `json:"login"`
	Name            string    `json:"name,omitempty"`
	AvatarURL       string    `json:"avatar_url"`
	HTMLURL         string    `json:"html_url"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Company         string    `json:"company,omitempty"`
	Blog            string    `json:"blog,omitempty"`
	TwitterUsername string    `json:"twitter_username,omitempty"`
	Followers       int       `json:"followers"`
	Following       int       `json:"following"`
	PublicRepos     int       `json:"public_repos"`
	PublicGists     int       `json:"public_gists"`
	CreatedAt       time.Time `json:"created_at"`
}

// DisplayName returns the profile's name, or the login when no name is set.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Initials returns the first two characters of the login in upper case.
func (p Profile) Initials() string {
	r := []rune(p.Login)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}

// Repository is a single public repository owned by a profile.
// An empty Language means GitHub detected no primary language.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	HTMLURL     string    `json:"html_url"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Language    string    `json:"language,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []string  `json:"topics,omitempty"`
}

// ActivityEvent is a public event performed by the user.
// Payload is kept opaque; only Kind is interpreted.
type ActivityEvent struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	RepoName  string          `json:"repo_name"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"-"`
}

// Issue is an open issue authored by the user.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	HTMLURL   string    `json:"html_url"`
	RepoName  string    `json:"repo_name"`
	CreatedAt time.Time `json:"created_at"`
}

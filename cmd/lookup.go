package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gitfinder/internal/domain"
	"github.com/naka-gawa/gitfinder/internal/usecase"
)

// lookupResult is the JSON document printed by `lookup --json`.
type lookupResult struct {
	State     string                 `json:"state"`
	Profile   *domain.Profile        `json:"profile"`
	Selection domain.Selection       `json:"selection"`
	Stats     domain.RepoStats       `json:"stats"`
	Events    []domain.ActivityEvent `json:"events"`
	Issues    []domain.Issue         `json:"issues"`
	Readme    string                 `json:"readme,omitempty"`
	Failures  []domain.Part          `json:"failures,omitempty"`
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <username>",
	Short: "Looks up a GitHub user once and prints the result",
	Long:  `Fetches the profile of a GitHub user together with repositories, recent activity and open issues, then prints a styled summary or, with --json, a JSON document.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		language, _ := cmd.Flags().GetString("language")
		sortKey, _ := cmd.Flags().GetString("sort")
		asJSON, _ := cmd.Flags().GetBool("json")

		session := usecase.NewSession(a.cfg.TopLanguages)
		v, err := session.Search(a.finder, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, usecase.UserMessage(err))
			a.logger.Printf("lookup failed: %v", err)
			os.Exit(1)
		}
		// Begin resets the selection, so it is applied after the search.
		session.Select(domain.Selection{Language: language, Sort: domain.SortKey(sortKey)})
		v = session.View()

		if asJSON {
			if err := writeJSON(os.Stdout, v); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}
		fmt.Println(a.renderer.Render(v))
	},
}

func writeJSON(w io.Writer, v usecase.SessionView) error {
	result := lookupResult{
		State:     v.State.String(),
		Profile:   v.Profile,
		Selection: v.Selection,
		Stats:     v.Stats,
		Events:    v.Events,
		Issues:    v.Issues,
		Readme:    v.Readme,
		Failures:  v.Failures,
	}
	// Marshal the results into a pretty-printed JSON string.
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.Flags().StringP("language", "l", domain.FilterAll, "Only list repositories in this language")
	lookupCmd.Flags().StringP("sort", "s", string(domain.SortUpdated), "Sort repositories by updated, stars or forks")
	lookupCmd.Flags().Bool("json", false, "Print the result as JSON")
}

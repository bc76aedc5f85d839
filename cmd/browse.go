package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/gitfinder/internal/usecase"
	"github.com/naka-gawa/gitfinder/internal/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Opens the interactive search screen",
	Long:  `Opens a terminal screen where usernames can be searched repeatedly. A new search discards whatever the previous one was still loading.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		a, err := newApp(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// Logging to stderr would corrupt the alternate screen.
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			f, err := tea.LogToFile("gitfinder-debug.log", "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			a.logger.SetOutput(f)
		}

		browser := view.NewBrowser(usecase.NewSession(a.cfg.TopLanguages), a.finder, a.renderer)
		if _, err := tea.NewProgram(browser, tea.WithAltScreen()).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

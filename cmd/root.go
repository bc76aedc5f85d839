// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/gitfinder/internal/config"
	"github.com/naka-gawa/gitfinder/internal/gateway"
	"github.com/naka-gawa/gitfinder/internal/usecase"
	"github.com/naka-gawa/gitfinder/internal/view"
)

var rootCmd = &cobra.Command{
	Use:   "gitfinder",
	Short: "Look up a GitHub user's profile, repositories and activity.",
	Long: `gitfinder queries the public GitHub REST API for a username and shows
the profile, its repositories, recent public activity, open issues and
derived statistics such as top languages and total stars.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	addGlobalFlags(rootCmd)
}

// addGlobalFlags defines the persistent flags available to all commands.
func addGlobalFlags(c *cobra.Command) {
	c.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	c.PersistentFlags().String("config", "", "Config file (default ./gitfinder.yaml)")
	c.PersistentFlags().String("env-file", "", "Dotenv file to load (default .env)")
	c.PersistentFlags().StringP("preset", "p", "", "View preset: basic, insights or full")
	c.PersistentFlags().String("theme", "", "Color theme: emerald, violet or mono")
}

// app bundles the dependencies shared by every command.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	finder   *usecase.Finder
	renderer *view.Renderer
}

// newApp loads configuration and wires the gateway, use cases and view.
func newApp(cmd *cobra.Command) (*app, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
	if verbose {
		logger.SetOutput(os.Stderr) // If verbose, log to standard error.
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(config.Options{File: cfgFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	// Flags override configuration.
	if p, _ := cmd.Flags().GetString("preset"); p != "" {
		cfg.Preset = p
	}
	if t, _ := cmd.Flags().GetString("theme"); t != "" {
		cfg.Theme = t
	}

	preset, err := view.LookupPreset(cfg.Preset)
	if err != nil {
		return nil, err
	}
	theme, err := view.LookupTheme(cfg.Theme)
	if err != nil {
		return nil, err
	}

	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	finder := usecase.NewFinder(githubGateway, logger, usecase.FinderOptions{
		RepoPageSize: cfg.RepoPageSize,
		EventLimit:   cfg.EventLimit,
		IssueLimit:   cfg.IssueLimit,
		Parts:        preset.Parts(),
	})

	return &app{
		cfg:      cfg,
		logger:   logger,
		finder:   finder,
		renderer: view.NewRenderer(preset, theme),
	}, nil
}

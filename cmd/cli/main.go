package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hoshino0112/github-issue-exporter/internal/config"
	"github.com/hoshino0112/github-issue-exporter/internal/domain"
	"github.com/hoshino0112/github-issue-exporter/internal/exporter"
	"github.com/hoshino0112/github-issue-exporter/internal/githubapi"
	"github.com/hoshino0112/github-issue-exporter/internal/importer"
	"github.com/hoshino0112/github-issue-exporter/internal/storage"
	"github.com/hoshino0112/github-issue-exporter/internal/storage/postgres"
	"github.com/hoshino0112/github-issue-exporter/internal/storage/sqlite"
)

var (
	outfile      string
	includePRs   bool
	deleteIssues bool
	ignoreClosed bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "gh-issue-exporter",
	Short: "GitHub issue export/import tool",
	Long: `A CLI tool for exporting issues from a GitHub repository to a local
JSON file and importing them back into a repository, great for backups
and repository migrations.`,
}

var exportCmd = &cobra.Command{
	Use:   "export [repo]",
	Short: "Export issues from a repository to a file",
	Long:  `Fetch all issues (and optionally pull requests) from a GitHub repository and write them to a local JSON file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [repo] [issues_file] [token]",
	Short: "Import issues from a file to a repository",
	Long: `Read issues from a local export file and create the ones missing from
the repository. Pass an empty token to fall back to GITHUB_TOKEN.`,
	Args: cobra.ExactArgs(3),
	RunE: runImport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the contents of an export file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var historyCmd = &cobra.Command{
	Use:   "history [repo]",
	Short: "Show recorded export runs",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&ignoreClosed, "ignore-closed", "c", false, "don't import/export closed issues")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show more info, useful for debugging")

	exportCmd.Flags().StringVarP(&outfile, "outfile", "o", "", "name of output file (default <repo>.json)")
	exportCmd.Flags().BoolVar(&includePRs, "prs", false, "also export pull requests")
	importCmd.Flags().BoolVarP(&deleteIssues, "delete-issues", "d", false, "delete issues from the repository that are not present in the local issues file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getArchive(cfg *config.Config) (storage.Archive, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresArchive(cfg.PostgresURL)
	default:
		return sqlite.NewSQLiteArchive(cfg.SQLitePath)
	}
}

// debugLogger is handed to the API client; its request-level output only
// shows up with --verbose
func debugLogger() *log.Logger {
	if verbose {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(io.Discard, "", log.LstdFlags)
}

// progressLogger carries run progress and warnings, always visible
func progressLogger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func runExport(cmd *cobra.Command, args []string) error {
	repoURL := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	archive, err := getArchive(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	defer archive.Close()

	client := githubapi.NewClient(cfg.APIURL, cfg.GitHubToken, debugLogger())
	exp := exporter.New(client, cfg.BaseURL, archive, progressLogger())

	return exp.Run(context.Background(), repoURL, exporter.Options{
		Outfile:             outfile,
		IncludePullRequests: includePRs,
		IgnoreClosed:        ignoreClosed,
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	repoURL, issuesFile, token := args[0], args[1], args[2]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if token == "" {
		token = cfg.GitHubToken
	}

	client := githubapi.NewClient(cfg.APIURL, token, debugLogger())
	imp := importer.New(client, cfg.BaseURL, progressLogger())

	return imp.Run(context.Background(), repoURL, issuesFile, importer.Options{
		IgnoreClosed:  ignoreClosed,
		DeleteMissing: deleteIssues,
	})
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	bundle, err := domain.DecodeBundle(data)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", args[0], err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Number", "State", "Title", "Labels"})
	for _, issue := range bundle.Issues {
		table.Append([]string{"issue", fmt.Sprintf("%d", issue.Number), issue.State, issue.Title, labelList(issue.Labels)})
	}
	for _, pr := range bundle.PullRequests {
		table.Append([]string{"pr", fmt.Sprintf("%d", pr.Number), pr.State, pr.Title, labelList(pr.Labels)})
	}
	table.Render()

	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	repo := ""
	if len(args) > 0 {
		repo = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	archive, err := getArchive(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize archive: %w", err)
	}
	defer archive.Close()

	runs, err := archive.ListRuns(context.Background(), repo)
	if err != nil {
		return fmt.Errorf("failed to list export runs: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"When", "Repository", "Issues", "PRs", "Outfile"})
	for _, run := range runs {
		table.Append([]string{
			run.CreatedAt.Format("2006-01-02 15:04"),
			run.Owner + "/" + run.Repo,
			fmt.Sprintf("%d", run.Issues),
			fmt.Sprintf("%d", run.PullRequests),
			run.Outfile,
		})
	}
	table.Render()

	return nil
}

func labelList(labels []domain.Label) string {
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = string(label)
	}
	return strings.Join(names, ", ")
}

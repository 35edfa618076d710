package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"skim/internal/config"
	"skim/internal/fetch"
	"skim/internal/llm"
	"skim/internal/pipeline"
	"skim/internal/storage"
	"skim/internal/tui"
	"skim/internal/tui/skin"
)

var (
	uiFlag string
	dbFlag string
)

var rootCmd = &cobra.Command{
	Use:   "skim [url]",
	Short: "A terminal browser that reads pages so you don't have to",
	Long: `skim fetches a page, strips it down to readable text, summarizes it
with an LLM and lists the numbered links so the next hop is one keystroke
away. Requires OPENAI_API_KEY.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowser,

	SilenceUsage:  true,
	SilenceErrors: false,
}

var visitsLimit int

var visitsCmd = &cobra.Command{
	Use:   "visits",
	Short: "Print the most recent entries of the visit log",
	Args:  cobra.NoArgs,
	RunE:  runVisits,

	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "path to the visit log database (default $SKIM_DB_PATH or skim.db)")
	rootCmd.Flags().StringVar(&uiFlag, "ui", "", fmt.Sprintf("skin to render with (available: %v, default %s)", skin.Names(), skin.DefaultName))
	visitsCmd.Flags().IntVarP(&visitsLimit, "limit", "n", 20, "number of visits to print")
	rootCmd.AddCommand(visitsCmd)
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if dbFlag != "" {
		cfg.DBPath = dbFlag
	}

	selected, err := skin.ByName(uiFlag)
	if err != nil {
		return err
	}

	var visits tui.VisitRecorder
	repo, err := storage.NewRepository(cfg.DBPath)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = repo.Init(ctx)
		cancel()
	}
	if err != nil {
		// Browsing works without the visit log.
		fmt.Fprintf(os.Stderr, "warning: visit log unavailable (%v)\n", err)
	} else {
		defer repo.Close()
		visits = repo
	}

	llmClient := llm.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.Model, nil)
	loader := pipeline.New(fetch.NewClient(nil), llmClient)

	startURL := ""
	if len(args) == 1 {
		startURL = args[0]
	}

	model := tui.NewModel(loader, llmClient, visits, selected, startURL)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func runVisits(cmd *cobra.Command, args []string) error {
	dbPath := dbFlag
	if dbPath == "" {
		dbPath = os.Getenv("SKIM_DB_PATH")
	}
	if dbPath == "" {
		dbPath = "skim.db"
	}

	repo, err := storage.NewRepository(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		return err
	}
	visits, err := repo.RecentVisits(ctx, visitsLimit)
	if err != nil {
		return err
	}

	for _, visit := range visits {
		fmt.Printf("%s  %s  %s\n", visit.VisitedAt.Local().Format("2006-01-02 15:04"), visit.URL, visit.Title)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

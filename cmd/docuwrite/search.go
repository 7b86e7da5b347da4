package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"docuwrite/internal/domain"
	"docuwrite/internal/index"
	"docuwrite/internal/prompt"
	"docuwrite/internal/service"
	"docuwrite/internal/summary"
	"docuwrite/internal/tui"
)

var (
	searchIndexPath string
	searchTopK      int
	searchType      string
	searchMinScore  float64
	searchFull      bool
	searchPrompt    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Retrieve the most relevant reference excerpts for a query",
	Long:  "Embeds the query and ranks the indexed reference chunks by cosine similarity. With no query, opens an interactive browser over the index.",
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchIndexPath, "index", "", "index file location (default from config)")
	searchCmd.Flags().IntVarP(&searchTopK, "top", "k", 0, "number of results (default from config)")
	searchCmd.Flags().StringVar(&searchType, "type", "", "restrict results to a document type (mfr, opord)")
	searchCmd.Flags().Float64Var(&searchMinScore, "min-score", 0, "drop results below this similarity")
	searchCmd.Flags().BoolVar(&searchFull, "full", false, "print chunk text, not just provenance")
	searchCmd.Flags().BoolVar(&searchPrompt, "prompt", false, "print the assembled prompt context block")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newService(cfg, searchIndexPath)
	if err != nil {
		return err
	}
	filter, err := domain.ParseDocumentType(searchType)
	if err != nil {
		return err
	}

	ix, err := svc.OpenIndex()
	if err != nil {
		var corrupt *domain.CorruptIndexError
		if !errors.As(err, &corrupt) {
			return err
		}
		// degraded mode: run without retrieved context, but tell the operator
		fmt.Fprintf(os.Stderr, "Warning: %v; continuing with an empty index\n", err)
		ix = &index.Index{}
	}

	if len(args) == 0 {
		return runInteractive(svc, ix)
	}

	query := strings.Join(args, " ")
	results, err := svc.Query(context.Background(), ix, query, searchTopK, filter)
	if err != nil {
		var provider *domain.ProviderError
		if searchPrompt && errors.As(err, &provider) {
			// the generation pipeline proceeds without context on a failed query
			fmt.Fprintf(os.Stderr, "Warning: %v; emitting empty context\n", err)
			return nil
		}
		return err
	}
	if searchMinScore > 0 {
		kept := results[:0]
		for _, res := range results {
			if res.Score >= searchMinScore {
				kept = append(kept, res)
			}
		}
		results = kept
	}

	if searchPrompt {
		fmt.Print(prompt.NewAssembler().Context(results))
		return nil
	}
	if len(results) == 0 {
		fmt.Println("No results found")
		return nil
	}
	for _, res := range results {
		fmt.Printf("%.3f  %-7s %s\n", res.Score, res.Record.Type, res.Record.SourceDocument)
		if searchFull {
			fmt.Println()
			fmt.Println(strings.TrimSpace(res.Record.Text))
			fmt.Println()
		}
	}
	return nil
}

func runInteractive(svc *service.Service, ix *index.Index) error {
	gist := summary.NewFrequency().Records(ix.Records, 3)
	if gist == "" {
		gist = fmt.Sprintf("Empty index at %s. Run 'docuwrite build' first.", svc.IndexPath())
	}
	m := tui.New(queryAdapter{svc: svc, ix: ix}, gist, 10)
	_, err := tea.NewProgram(m).Run()
	return err
}

// queryAdapter narrows the service to the TUI's port.
type queryAdapter struct {
	svc *service.Service
	ix  *index.Index
}

func (q queryAdapter) Query(query string, k int, filter domain.DocumentType) ([]domain.SearchResult, error) {
	return q.svc.Query(context.Background(), q.ix, query, k, filter)
}

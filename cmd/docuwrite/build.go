package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	buildCorpusDir string
	buildIndexPath string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the reference index from a corpus directory",
	Long:  "Chunks every reference document under the corpus directory, embeds the chunks and atomically persists the index. A failed build leaves any existing index untouched.",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildCorpusDir, "corpus", "references", "directory holding reference documents (.txt, .md)")
	buildCmd.Flags().StringVar(&buildIndexPath, "index", "", "index file location (default from config)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, err := newService(cfg, buildIndexPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ix, skipped, err := svc.BuildIndex(ctx, buildCorpusDir)
	for _, path := range skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s (not plain text or empty)\n", path)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d chunks (model=%s, dim=%d) to %s\n", ix.Len(), ix.Model, ix.Dimension, svc.IndexPath())
	return nil
}

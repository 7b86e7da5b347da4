package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"docuwrite/internal/chunker"
	"docuwrite/internal/config"
	"docuwrite/internal/embedding"
	"docuwrite/internal/embedding/openai"
	"docuwrite/internal/index"
	"docuwrite/internal/retriever"
	"docuwrite/internal/service"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "docuwrite",
	Short:         "Retrieval-augmented drafting support for MFR and OPORD documents",
	Long:          "docuwrite maintains an embedded index of reference documents and retrieves the most relevant excerpts to steer generated drafts toward established structure and tone.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config (default: ./docuwrite.yaml, then ~/.config/docuwrite/config.yaml)")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(searchCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

// newService assembles the retrieval pipeline from configuration.
func newService(cfg *config.AppConfig, indexPath string) (*service.Service, error) {
	client, err := openai.NewClient(openai.Config{
		Model:     cfg.Embedder.Model,
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	policy := embedding.DefaultPolicy()
	policy.MaxAttempts = cfg.Embedder.MaxAttempts
	emb := embedding.WithRetry(client, policy)

	ch, err := chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
	if err != nil {
		return nil, err
	}
	if indexPath == "" {
		indexPath = cfg.Index.Path
	}
	builder := index.NewBuilder(ch, emb, cfg.Index.Workers)
	store := index.NewFileStore(indexPath)
	ret := retriever.New(emb)
	return service.New(builder, store, ret, cfg.Retrieval.TopK), nil
}

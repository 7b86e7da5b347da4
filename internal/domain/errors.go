package domain

import "fmt"

// ConfigError reports invalid chunking or retrieval parameters.
// It is raised before any I/O happens.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

// ProviderError reports an embedding call that failed after retries were
// exhausted. Callers may retry the whole operation or fall back to running
// without retrieved context.
type ProviderError struct {
	Attempts int
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("embedding provider failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// CorruptIndexError reports a persisted index that failed validation on load,
// or a query vector whose dimension does not match the loaded index.
type CorruptIndexError struct {
	Reason string
}

func (e *CorruptIndexError) Error() string { return "corrupt index: " + e.Reason }

// BuildError reports a failed corpus build. Nothing partial is persisted
// when a build fails.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string { return "index build failed: " + e.Err.Error() }

func (e *BuildError) Unwrap() error { return e.Err }

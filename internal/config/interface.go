package config

import "context"

// Loader is the interface for a format-specific maze loader.
type Loader interface {
	// Extensions lists the file extensions, dot included, the loader reads.
	Extensions() []string
	// Load reads every given file and translates it into the model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

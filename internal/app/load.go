package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/cargogo/internal/config"
	"github.com/specialistvlad/cargogo/internal/ctxlog"
	"github.com/specialistvlad/cargogo/internal/fsutil"
)

// loadLevels hands every file under path to the loader claiming its
// extension and merges the results in path order.
func loadLevels(ctx context.Context, path string, loaders ...config.Loader) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading levels...", "path", path, "loaders", len(loaders))

	var models []*config.Model
	for _, l := range loaders {
		files, err := fsutil.FindFilesByExtension(path, l.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", path, err)
		}
		if len(files) == 0 {
			continue
		}
		m, err := l.Load(ctx, files...)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}

	model, err := config.Merge(models...)
	if err != nil {
		return nil, err
	}
	if len(model.Levels) == 0 {
		return nil, fmt.Errorf("no maze definitions found in %s", path)
	}

	logger.Info("Levels loaded.", "count", len(model.Levels), "names", model.Names())
	return model, nil
}

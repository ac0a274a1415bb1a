package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/vlist/internal/logging"
)

// ProjectFileName is the project-local overlay searched for from the working
// directory upward.
const ProjectFileName = ".vlist.yaml"

// EnvProjectConfig names an explicit project overlay.
const EnvProjectConfig = "VLIST_PROJECT_CONFIG"

// ResolveProjectFile locates the project overlay. It checks (in order):
//  1. VLIST_PROJECT_CONFIG
//  2. .vlist.yaml in startDir or the nearest parent that has one
//
// Returns an absolute path or "" when no overlay exists.
func ResolveProjectFile(ctx context.Context, startDir string) string {
	if env := os.Getenv(EnvProjectConfig); env != "" {
		return toAbs(ctx, env)
	}

	dir := toAbs(ctx, startDir)
	for dir != "" {
		candidate := filepath.Join(dir, ProjectFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func toAbs(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path")
		return dir
	}
	return abs
}

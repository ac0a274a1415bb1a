package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/columns"
	"github.com/rshade/vlist/internal/config"
)

// isolate points every discovery source at empty temp locations.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectConfig, "")
	for _, env := range []string{
		config.EnvLogLevel, config.EnvItemsPerPage, config.EnvLayoutMode, config.EnvSelectionMode,
	} {
		t.Setenv(env, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(context.Background(), config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
}

func TestLoad_GlobalYAMLKeepsUnsetDefaults(t *testing.T) {
	isolate(t)
	writeFile(t, os.Getenv(config.EnvHome), config.FileNameYAML, "list:\n  items_per_page: 40\n")

	cfg, err := config.Load(context.Background(), config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.List.ItemsPerPage)
	assert.Equal(t, "key", cfg.List.KeyField)
}

func TestLoad_GlobalTOML(t *testing.T) {
	isolate(t)
	writeFile(t, os.Getenv(config.EnvHome), config.FileNameTOML, `
[table]
layout_mode = "fixed"
selection_mode = "single"
header_case = "upper"

[[table.columns]]
key = "name"
name = "Name"
field_name = "name"
min_width = 8
`)

	cfg, err := config.Load(context.Background(), config.LoadOptions{})
	require.NoError(t, err)

	sel, err := cfg.SelectionMode()
	require.NoError(t, err)
	assert.Equal(t, columns.SelectionSingle, sel)
	require.Len(t, cfg.Table.Columns, 1)
	assert.Equal(t, 8, cfg.Table.Columns[0].MinWidth)
}

func TestLoad_LayeringOrder(t *testing.T) {
	isolate(t)
	global := writeFile(t, t.TempDir(), "explicit.yaml",
		"list:\n  items_per_page: 40\n  key_field: id\n  estimated_item_height: 1\n")
	project := t.TempDir()
	writeFile(t, project, config.ProjectFileName,
		"list:\n  items_per_page: 7\n  key_field: name\n  estimated_item_height: 2\n")
	t.Setenv(config.EnvItemsPerPage, "3")
	t.Setenv(config.EnvLayoutMode, "fixed")

	cfg, err := config.Load(context.Background(), config.LoadOptions{Path: global, WorkDir: project})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.List.ItemsPerPage, "env beats project overlay")
	assert.Equal(t, "name", cfg.List.KeyField, "project overlay beats global file")
	assert.InDelta(t, 2.0, cfg.List.EstimatedItemHeight, 0.0001)
	assert.Equal(t, "fixed", cfg.Table.LayoutMode)
}

func TestLoad_PartialProjectOverlay(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, project, config.ProjectFileName, "list:\n  items_per_page: 20\n")

	cfg, err := config.Load(context.Background(), config.LoadOptions{WorkDir: project})
	require.NoError(t, err)

	defaults := config.New()
	assert.Equal(t, 20, cfg.List.ItemsPerPage)
	assert.Equal(t, defaults.List.KeyField, cfg.List.KeyField)
	assert.InDelta(t, defaults.List.EstimatedItemHeight, cfg.List.EstimatedItemHeight, 0.0001)
	assert.Equal(t, defaults.List.Overscan, cfg.List.Overscan)
}

func TestLoad_InvalidEnvIntegerIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvItemsPerPage, "lots")

	cfg, err := config.Load(context.Background(), config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.List.ItemsPerPage)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := config.Load(context.Background(), config.LoadOptions{Path: filepath.Join(t.TempDir(), "none.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, t.TempDir(), "bad.ini", "x=1")
	_, err = config.Load(context.Background(), config.LoadOptions{Path: bad})
	require.ErrorIs(t, err, config.ErrUnsupportedFile)

	t.Setenv(config.EnvSelectionMode, "several")
	_, err = config.Load(context.Background(), config.LoadOptions{})
	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSaveAndReload(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "yaml", file: "out.yaml"},
		{name: "toml", file: "out.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cfg := config.New()
			cfg.List.ItemsPerPage = 12
			cfg.Table.Columns = []columns.Column{{Key: "a", Name: "A", FieldName: "a", MinWidth: 4}}

			path := filepath.Join(t.TempDir(), "nested", tt.file)
			require.NoError(t, config.Save(cfg, path, false))
			require.ErrorIs(t, config.Save(cfg, path, false), os.ErrExist)
			require.NoError(t, config.Save(cfg, path, true))

			loaded, err := config.Load(context.Background(), config.LoadOptions{Path: path})
			require.NoError(t, err)
			assert.Equal(t, 12, loaded.List.ItemsPerPage)
			require.Len(t, loaded.Table.Columns, 1)
			assert.Equal(t, 4, loaded.Table.Columns[0].MinWidth)
		})
	}
}

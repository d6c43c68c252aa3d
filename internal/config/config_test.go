package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauern/agentsync/internal/model"
	"github.com/klauern/agentsync/internal/sync"
	"github.com/klauern/agentsync/internal/util"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	util.AssertEqual(t, cfg.Sync.Mode, "replace")
	util.AssertEqual(t, cfg.Validation.MinBodyLength, 100)
	util.AssertEqual(t, cfg.Output.Format, "text")
	if len(cfg.Validation.Patterns) == 0 {
		t.Error("expected default validation patterns")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	util.WriteFile(t, path, `
mappings:
  - name: vue
    source: lib/vue
    target: out/vue
sync:
  mode: incremental
validation:
  patterns: ["lib/**/*.md"]
  extra_frameworks: [gatsby]
  workers: 4
output:
  format: json
`)

	cfg, err := LoadFromPath(path)
	util.AssertNoError(t, err)

	util.AssertEqual(t, cfg.Sync.Mode, "incremental")
	util.AssertEqual(t, cfg.Validation.Workers, 4)
	util.AssertEqual(t, cfg.Output.Format, "json")
	util.AssertEqual(t, len(cfg.Mappings), 1)
	// Unset keys keep their defaults.
	util.AssertEqual(t, cfg.Validation.MinBodyLength, 100)
	util.AssertEqual(t, cfg.Output.Color, "auto")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := map[string]struct {
		content string
		wantErr string
	}{
		"bad yaml":        {content: "sync: [", wantErr: "failed to parse"},
		"bad mode":        {content: "sync:\n  mode: merge\n", wantErr: "invalid config"},
		"bad format":      {content: "output:\n  format: xml\n", wantErr: "invalid config"},
		"bad extension":   {content: "sync:\n  extensions: [md]\n", wantErr: "invalid config"},
		"negative length": {content: "validation:\n  min_body_length: -1\n", wantErr: "invalid config"},
		"duplicate mapping": {
			content: "mappings:\n  - {name: vue, source: a, target: b}\n  - {name: vue, source: c, target: d}\n",
			wantErr: "duplicate",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			util.WriteFile(t, path, tt.content)

			_, err := LoadFromPath(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFromPath() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("AGENTSYNC_HOME", t.TempDir())

	cfg, err := Load()
	util.AssertNoError(t, err)
	util.AssertEqual(t, cfg.Sync.Mode, "replace")
	if Exists() {
		t.Error("Exists() should be false without a config file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("AGENTSYNC_HOME", t.TempDir())

	cfg := Default()
	cfg.Validation.Strict = true
	util.AssertNoError(t, cfg.Save())
	if !Exists() {
		t.Fatal("Exists() should be true after Save")
	}

	loaded, err := Load()
	util.AssertNoError(t, err)
	if !loaded.Validation.Strict {
		t.Error("expected strict setting to round-trip")
	}
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv("AGENTSYNC_SYNC_MODE", "incremental")
	t.Setenv("AGENTSYNC_SYNC_EXTENSIONS", ".md, .mdx")
	t.Setenv("AGENTSYNC_VALIDATION_PATTERNS", "a/*.md,b/**/*.md")
	t.Setenv("AGENTSYNC_VALIDATION_MIN_BODY_LENGTH", "50")
	t.Setenv("AGENTSYNC_VALIDATION_WORKERS", "not-a-number")
	t.Setenv("AGENTSYNC_VALIDATION_STRICT", "yes")
	t.Setenv("AGENTSYNC_OUTPUT_COLOR", "never")
	t.Setenv("AGENTSYNC_LOG_LEVEL", "DEBUG")

	cfg := Default()
	cfg.applyEnvironment()

	util.AssertEqual(t, cfg.Sync.Mode, "incremental")
	util.AssertEqual(t, len(cfg.Sync.Extensions), 2)
	util.AssertEqual(t, cfg.Sync.Extensions[1], ".mdx")
	util.AssertEqual(t, len(cfg.Validation.Patterns), 2)
	util.AssertEqual(t, cfg.Validation.MinBodyLength, 50)
	util.AssertEqual(t, cfg.Validation.Workers, 1)
	util.AssertEqual(t, cfg.Validation.Strict, true)
	util.AssertEqual(t, cfg.Output.Color, "never")
	util.AssertEqual(t, cfg.Logging.Level, "debug")
}

func TestMappingTable(t *testing.T) {
	base := t.TempDir()

	t.Run("default", func(t *testing.T) {
		table, err := Default().MappingTable(base)
		util.AssertNoError(t, err)
		m, ok := table.Lookup("react")
		if !ok || m.Source != filepath.Join(base, "agents", "react") {
			t.Errorf("react = %+v", m)
		}
	})

	t.Run("inline", func(t *testing.T) {
		cfg := Default()
		cfg.Mappings = []model.Mapping{{Name: "vue", Source: "lib/vue", Target: "out/vue"}}
		table, err := cfg.MappingTable(base)
		util.AssertNoError(t, err)
		util.AssertEqual(t, len(table), 1)
		util.AssertEqual(t, table[0].Target, filepath.Join(base, "out", "vue"))
	})

	t.Run("mapping file wins", func(t *testing.T) {
		util.WriteFile(t, filepath.Join(base, "mappings.toml"),
			"[[mapping]]\nname = \"svelte\"\nsource = \"s\"\ntarget = \"t\"\n")
		cfg := Default()
		cfg.Mappings = []model.Mapping{{Name: "vue", Source: "lib/vue", Target: "out/vue"}}
		cfg.MappingFile = "mappings.toml"
		table, err := cfg.MappingTable(base)
		util.AssertNoError(t, err)
		util.AssertEqual(t, table.Names()[0], "svelte")
	})

	t.Run("missing mapping file", func(t *testing.T) {
		cfg := Default()
		cfg.MappingFile = filepath.Join(base, "nope.toml")
		if _, err := cfg.MappingTable(base); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSchemaFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Validation.ExtraFrameworks = []string{"gatsby"}
	cfg.Validation.MinBodyLength = 10
	cfg.Validation.RequiredSections = []string{"## Scope"}

	s := cfg.Schema()
	if !s.Frameworks.Contains("gatsby") || !s.Frameworks.Contains("react") {
		t.Error("expected extra frameworks on top of the built-in vocabulary")
	}
	util.AssertEqual(t, s.MinBodyLength, 10)
	util.AssertEqual(t, s.Sections[0], "## Scope")
}

func TestSyncOptions(t *testing.T) {
	cfg := Default()
	cfg.Sync.Mode = "incremental"
	cfg.Sync.Extensions = []string{".mdx"}

	opts := cfg.SyncOptions()
	util.AssertEqual(t, opts.Mode, sync.ModeIncremental)
	util.AssertEqual(t, opts.Extensions[0], ".mdx")

	cfg.Sync.Mode = "bogus"
	util.AssertEqual(t, cfg.SyncOptions().Mode, sync.ModeReplace)
}

func TestSaveToPath_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	util.AssertNoError(t, Default().SaveToPath(path))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file at %s: %v", path, err)
	}
}

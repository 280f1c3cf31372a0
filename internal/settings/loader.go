package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrInvalidPermissions is returned when a settings file is world-writable.
var ErrInvalidPermissions = errors.New("settings file has insecure permissions")

const (
	// GlobalSettingsDir is the directory under $HOME holding global settings.
	GlobalSettingsDir = ".checkpatch"

	// GlobalSettingsFile is the global settings file name.
	GlobalSettingsFile = "settings.toml"

	// ProjectSettingsFile is the per-project settings file name.
	ProjectSettingsFile = ".checkpatch.toml"

	defaultTimeoutStr = "60s"

	// DefaultRulesFile is the rules document path used when neither the
	// settings nor --config-file name one.
	DefaultRulesFile = "checkpatch.yaml"
)

// defaultBinaries are the checker binary names tried in order.
var defaultBinaries = []string{"checkpatch.pl", "checkpatch"}

// Loader loads settings from layered sources.
// Precedence order (highest to lowest):
// 1. CLI flags
// 2. Environment variables (CHECKPATCH_*)
// 3. Project settings (.checkpatch.toml)
// 4. Global settings (~/.checkpatch/settings.toml)
// 5. Defaults
type Loader struct {
	homeDir string
	workDir string
}

// NewLoader creates a Loader rooted at the user's home and working
// directories.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get home directory")
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get working directory")
	}

	return NewLoaderWithDirs(homeDir, workDir), nil
}

// NewLoaderWithDirs creates a Loader with custom directories (for testing).
func NewLoaderWithDirs(homeDir, workDir string) *Loader {
	return &Loader{
		homeDir: homeDir,
		workDir: workDir,
	}
}

// Load loads settings from all sources with precedence.
func (l *Loader) Load(flags map[string]any) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	globalPath := filepath.Join(l.homeDir, GlobalSettingsDir, GlobalSettingsFile)
	if err := l.loadTOMLFile(k, globalPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load global settings")
	}

	projectPath := filepath.Join(l.workDir, ProjectSettingsFile)
	if err := l.loadTOMLFile(k, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load project settings")
	}

	envOpt := env.Opt{
		Prefix:        "CHECKPATCH_",
		TransformFunc: envTransform,
	}

	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var s Settings

	unmarshalConf := koanf.UnmarshalConf{
		Tag:       "koanf",
		FlatPaths: false,
	}

	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}

	return &s, nil
}

// loadTOMLFile loads a TOML settings file with a permission check.
func (*Loader) loadTOMLFile(k *koanf.Koanf, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.Mode().Perm()&0o002 != 0 {
		return errors.Wrapf(
			ErrInvalidPermissions,
			"%s is world-writable (mode: %s)",
			path,
			info.Mode().Perm(),
		)
	}

	return k.Load(file.Provider(path), tomlparser.Parser())
}

// envTransform maps environment variable names to settings paths.
// CHECKPATCH_CHECKER_TIMEOUT → checker.timeout
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, "CHECKPATCH_")
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", ".")

	return key, value
}

// defaultsMap holds the lowest-precedence settings layer.
func defaultsMap() map[string]any {
	return map[string]any{
		"checker": map[string]any{
			"binaries": defaultBinaries,
			"timeout":  defaultTimeoutStr,
		},
		"rules": map[string]any{
			"file": DefaultRulesFile,
		},
		"output": map[string]any{
			"color": "auto",
		},
	}
}

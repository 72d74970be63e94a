package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is the application name used for configuration directories.
const AppName = "fmcheck"

// ConfigDirEnv overrides the user configuration directory when set.
const ConfigDirEnv = "FMCHECK_CONFIG_DIR"

// projectConfigNames are the file names searched in the working directory,
// in order of precedence. The last one is the name used by earlier releases.
var projectConfigNames = []string{
	".fmcheck.yaml",
	".fmcheck.yml",
	".fmcheck.toml",
	".frontmatter_check_config.yaml",
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns the user configuration directory for fmcheck.
// Returns: $FMCHECK_CONFIG_DIR or <ConfigHome>/fmcheck/
func AppConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ProjectConfigNames returns the configuration file names searched in a
// project directory.
func ProjectConfigNames() []string {
	out := make([]string, len(projectConfigNames))
	copy(out, projectConfigNames)
	return out
}

// ConfigCandidates returns every path searched for a configuration file,
// project files in dir first, then the user configuration file.
func ConfigCandidates(dir string) []string {
	candidates := make([]string, 0, len(projectConfigNames)+1)
	for _, name := range projectConfigNames {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	return append(candidates, filepath.Join(AppConfigDir(), "config.yaml"))
}

// FindConfig returns the first existing candidate from ConfigCandidates.
// The boolean is false when no configuration file exists.
func FindConfig(dir string) (string, bool) {
	for _, p := range ConfigCandidates(dir) {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Package paths resolves the locations fmcheck searches for its
// configuration file.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance. The
// user-level configuration lives in <ConfigHome>/fmcheck/ and can be moved
// with the FMCHECK_CONFIG_DIR environment variable.
//
// Project-level configuration files are looked up in the working directory
// first, so a repository can carry its own rules:
//
//	for _, p := range paths.ConfigCandidates(".") {
//		// .fmcheck.yaml, .fmcheck.yml, ... then ~/.config/fmcheck/config.yaml
//	}
package paths

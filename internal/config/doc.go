// Package config loads and validates fmcheck rule configuration.
//
// # Configuration File
//
// Without an explicit path the file is searched with [paths.FindConfig]:
// .fmcheck.yaml, .fmcheck.yml, .fmcheck.toml and
// .frontmatter_check_config.yaml in the working directory, then
// ~/.config/fmcheck/config.yaml. The structure is:
//
//	settings:
//	  level: warn
//	  fail_fast: false
//	  extensions: [.md, .markdown]
//	patterns:
//	  - name: Blog Posts
//	    pattern: "posts/**/*.md"
//	    rules:
//	      - field_name: title
//	        type: string
//	        level: error
//	        is_missing: warn
//
// A YAML file may contain several documents separated by "---"; their top
// level keys are merged, later documents winning.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load(path)
//	if err != nil {
//	    var cfgErr *config.ConfigError
//	    if errors.As(err, &cfgErr) {
//	        for _, p := range cfgErr.Problems {
//	            fmt.Println(p)
//	        }
//	    }
//	    return err
//	}
//
// # Validation
//
// All loaded configurations are validated automatically and every problem is
// reported, not only the first. Settings can be overridden from the
// environment with the FMCHECK_ prefix, e.g. FMCHECK_SETTINGS_LEVEL=error.
package config

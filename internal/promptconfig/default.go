package promptconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultConfigName is the file name under the resolved config directory,
// named after the original tool this evaluator's behavior is grounded on.
const defaultConfigName = "pretty-git-prompt.yml"

// defaultConfigYAML renders "branch│markers" joined by │, matching the
// end-to-end scenarios this evaluator is tested against: a bare merge
// indicator, the branch/detached label, remote ahead/behind, then the
// four working-tree counts and the stash count, each separated by a
// surrounded │ so empty markers never leave a stray separator behind.
const defaultConfigYAML = `---
version: '1'
values:
  - type: merge
    pre_format: 'merge'
    post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: name
    pre_format: ''
    post_format: ''
  - type: remote_difference
    display_if_uptodate: false
    pre_format: ''
    post_format: ''
    values:
      - type: ahead
        pre_format: '↑'
        post_format: ''
      - type: behind
        pre_format: '↓'
        post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: difference
    pre_format: '✚'
    post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: staged
    pre_format: '▶'
    post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: changed
    pre_format: 'Δ'
    post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: conflicts
    pre_format: '✖'
    post_format: ''
  - type: separator
    display: surrounded
    pre_format: '│'
    post_format: ''
  - type: stashed
    pre_format: '☐'
    post_format: ''
`

// DefaultPath resolves the default configuration file location per spec:
// $XDG_CONFIG_HOME/pretty-git-prompt.yml if set, else
// ~/.config/pretty-git-prompt.yml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, defaultConfigName), nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("cannot resolve default config path: HOME is not set")
	}
	return filepath.Join(home, ".config", defaultConfigName), nil
}

// DefaultDocument parses the built-in default configuration. It is used
// whenever no --config flag was given and the default path does not exist.
func DefaultDocument() *Document {
	doc, err := Parse(strings.NewReader(defaultConfigYAML))
	if err != nil {
		// The built-in default is a compile-time constant; a parse failure
		// here is a programming error, not a runtime condition to recover.
		panic(fmt.Sprintf("promptconfig: built-in default config is invalid: %v", err))
	}
	return doc
}

// WriteDefault writes the built-in default configuration to path, creating
// its parent directory as needed. It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Load resolves and parses the active configuration. explicitPath, when
// non-empty, is read and parsed unconditionally and any failure is fatal
// (the ConfigSyntaxError / IOError-on-explicit-path rule). Otherwise the
// default path is tried and, if absent, the built-in default is used.
func Load(explicitPath string) (*Document, error) {
	if explicitPath != "" {
		f, err := os.Open(explicitPath)
		if err != nil {
			return nil, fmt.Errorf("open config %s: %w", explicitPath, err)
		}
		defer f.Close()
		return Parse(f)
	}

	path, err := DefaultPath()
	if err != nil {
		return DefaultDocument(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultDocument(), nil
		}
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

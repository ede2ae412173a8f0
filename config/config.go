package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"

	"pic-to-github/model"
)

// RelPath is where the config file lives, relative to the user's home directory.
const RelPath = ".config/pic_to_github.toml"

// Config represents the application configuration
type Config struct {
	Token       string          `toml:"token"`
	GithubProxy string          `toml:"github_proxy"`
	Repo        model.Repo      `toml:"repo"`
	Committer   model.Committer `toml:"committer"`
}

// Error is returned for anything that prevents a usable Config from being loaded.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	requiredKeys = []string{"token", "repo.owner", "repo.repo", "committer.name", "committer.email"}
	optionalKeys = []string{"github_proxy", "repo.path"}
	tables       = []string{"repo", "committer"}
)

// Path returns the absolute location of the config file.
func Path() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", &Error{Err: fmt.Errorf("can't get home directory: %w", err)}
	}
	return filepath.Join(home, filepath.FromSlash(RelPath)), nil
}

// Load reads and parses the config file from its fixed location.
func Load() (Config, error) {
	configPath, err := Path()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, &Error{Path: configPath, Err: fmt.Errorf("error reading config file: %w", err)}
	}

	config, err := Parse(data)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = configPath
		}
		return Config{}, err
	}
	return config, nil
}

// Parse decodes TOML text into a Config, checking that every required key
// is present with the right type.
func Parse(data []byte) (Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return Config{}, &Error{Err: fmt.Errorf("error parsing config file: %w", err)}
	}

	for _, table := range tables {
		if !tree.Has(table) {
			return Config{}, &Error{Err: fmt.Errorf("missing table [%s]", table)}
		}
		if _, ok := tree.Get(table).(*toml.Tree); !ok {
			return Config{}, &Error{Err: fmt.Errorf("%s must be a table", table)}
		}
	}

	for _, key := range requiredKeys {
		if !tree.Has(key) {
			return Config{}, &Error{Err: fmt.Errorf("missing required key %s", key)}
		}
		if err := checkString(tree, key); err != nil {
			return Config{}, err
		}
	}

	for _, key := range optionalKeys {
		if !tree.Has(key) {
			continue
		}
		if err := checkString(tree, key); err != nil {
			return Config{}, err
		}
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return Config{}, &Error{Err: fmt.Errorf("error decoding config file: %w", err)}
	}

	return config, nil
}

func checkString(tree *toml.Tree, key string) error {
	value := tree.Get(key)
	if _, ok := value.(string); !ok {
		return &Error{Err: fmt.Errorf("%s must be a string, got %T", key, value)}
	}
	return nil
}

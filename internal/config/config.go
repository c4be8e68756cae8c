// Package config loads branchkit settings.
//
// Precedence, highest first:
//  1. BRANCHKIT_* environment variables (BRANCHKIT_ARCHIVE_DIR -> archive_dir)
//  2. the YAML file, by default .branchkit.yaml in the repository root
//  3. built-in defaults
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/aezell/branchkit/internal/logging"
)

// FileName is the per-repository config file.
const FileName = ".branchkit.yaml"

const envPrefix = "BRANCHKIT_"

// PR creators.
const (
	CreatorAuto = "auto"
	CreatorAPI  = "api"
	CreatorGH   = "gh"
)

// Config holds every setting.
type Config struct {
	Trunk          string `koanf:"trunk"`
	Remote         string `koanf:"remote"`
	ArchiveDir     string `koanf:"archive_dir"`
	GitHubToken    string `koanf:"github_token"`
	GitHubAPIURL   string `koanf:"github_api_url"`
	PRCreator      string `koanf:"pr_creator"`
	LogLevel       string `koanf:"log_level"`
	LogFormat      string `koanf:"log_format"`
	NonInteractive bool   `koanf:"non_interactive"`
	RecentCommits  int    `koanf:"recent_commits"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Trunk:         "main",
		Remote:        "origin",
		ArchiveDir:    filepath.Join("docs", "archives"),
		PRCreator:     CreatorAuto,
		LogLevel:      "warn",
		LogFormat:     "console",
		RecentCommits: 5,
	}
}

// DefaultPath returns the config file location inside a repository.
func DefaultPath(repoRoot string) string {
	return filepath.Join(repoRoot, FileName)
}

// Load reads path and the environment over the defaults. A missing file is
// only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "parsing config file %s", path)
			}
		case os.IsNotExist(err) && !required:
		default:
			return nil, errors.Wrapf(err, "reading config file %s", path)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "loading environment")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = firstEnv("GITHUB_TOKEN", "GH_TOKEN")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// Validate rejects settings the commands cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Trunk) == "" {
		return errors.New("config: trunk must not be empty")
	}
	if strings.TrimSpace(c.Remote) == "" {
		return errors.New("config: remote must not be empty")
	}
	if strings.TrimSpace(c.ArchiveDir) == "" {
		return errors.New("config: archive_dir must not be empty")
	}
	switch c.PRCreator {
	case CreatorAuto, CreatorAPI, CreatorGH:
	default:
		return errors.Newf("config: pr_creator must be auto, api or gh, got %q", c.PRCreator)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Newf("config: log_format must be console or json, got %q", c.LogFormat)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	if c.RecentCommits <= 0 {
		return errors.Newf("config: recent_commits must be positive, got %d", c.RecentCommits)
	}
	return nil
}

// internal/cli/config.go
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds everything one run needs. URLs and tokens can come from
// the environment (or a .env file loaded by main); flags override env.
type Config struct {
	SourceURL   string `env:"GZCTF_URL"`
	SourceToken string `env:"GZCTF_TOKEN"`
	DestURL     string `env:"GZCTF_DST_URL"`
	DestToken   string `env:"GZCTF_DST_TOKEN"`

	InviteCode string
	NewGame    bool
	Export     bool
	ImportPath string
	Verbose    bool
}

// ParseConfig reads the environment, then the flags, then validates.
func ParseConfig(fs *flag.FlagSet, args []string) (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.SourceURL, "url", cfg.SourceURL, "source instance base URL")
	fs.StringVar(&cfg.SourceToken, "token", cfg.SourceToken, "GZCTF_Token cookie value for the source session")
	fs.StringVar(&cfg.DestURL, "dst-url", cfg.DestURL, "destination instance base URL (defaults to the source)")
	fs.StringVar(&cfg.DestToken, "dst-token", cfg.DestToken, "GZCTF_Token cookie value for the destination session")
	fs.StringVar(&cfg.InviteCode, "invite-code", "", "invite code for the created game (generated when empty)")
	fs.BoolVar(&cfg.NewGame, "newgame", false, "assemble a new game from challenges picked across all games")
	fs.BoolVar(&cfg.Export, "export", false, "export a game to an on-disk archive")
	fs.StringVar(&cfg.ImportPath, "import", "", "path to a backup.json (or its folder) to restore")
	fs.BoolVar(&cfg.Verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.SourceURL = strings.TrimSuffix(c.SourceURL, "/")
	c.DestURL = strings.TrimSuffix(c.DestURL, "/")

	if c.SourceURL == "" {
		return fmt.Errorf("source URL is required (-url or GZCTF_URL)")
	}
	if c.SourceToken == "" {
		return fmt.Errorf("source token is required (-token or GZCTF_TOKEN)")
	}

	modes := 0
	if c.NewGame {
		modes++
	}
	if c.Export {
		modes++
	}
	if c.ImportPath != "" {
		modes++
	}
	if modes > 1 {
		return fmt.Errorf("-newgame, -export and -import are mutually exclusive")
	}

	// Cross-instance is opt-in: with no destination the source instance
	// is both ends.
	if c.DestURL == "" {
		c.DestURL = c.SourceURL
	}
	if c.DestToken == "" {
		c.DestToken = c.SourceToken
	}
	return nil
}

package cards

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Public URL prefixes baked into rendered pages. The server mounts the assets
// directory at /assets, so these stay fixed regardless of where the files
// live on disk.
const (
	publicAssetsBaseURL    = "/assets"
	publicMonsterImagesURL = publicAssetsBaseURL + "/monster_cards/monster_card_images"
	publicTypeIconsURL     = publicAssetsBaseURL + "/monster_cards/types_icons"
)

// Card images are normalized to this pixel size before rendering.
const (
	cardImageWidth  = 230
	cardImageHeight = 150
)

// Config holds the service's runtime configuration.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL" envDefault:"postgres://localhost/cards?sslmode=disable"`
	Port        string `env:"PORT"`
	AssetsDir   string `env:"ASSETS_DIR" envDefault:"assets"`
}

// LoadConfig reads configuration from the environment, honoring a local .env
// file when one exists.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) monsterDir() string {
	return filepath.Join(c.AssetsDir, "monster_cards")
}

// TemplatesDir is where the per-variant display templates live.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.monsterDir(), "card_templates")
}

// ImagesDir is where the card images live.
func (c *Config) ImagesDir() string {
	return filepath.Join(c.monsterDir(), "monster_card_images")
}

// IconsDir is where the type icons live.
func (c *Config) IconsDir() string {
	return filepath.Join(c.monsterDir(), "types_icons")
}

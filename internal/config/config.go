package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Port         string `json:"port"`
	TemplatesDir string `json:"templates_dir"`
	PostsFile    string `json:"posts_file"`
	StaticDir    string `json:"static_dir"` // root for the static file fallback
	AboutFile    string `json:"about_file"`
	EmptyMessage string `json:"empty_message"`
	Title        string `json:"title"`
}

// DefaultConfig returns the default configuration based on environment variables
func DefaultConfig() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	return Config{
		Port:         port,
		TemplatesDir: "templates",
		PostsFile:    "posts.json",
		StaticDir:    ".",
		AboutFile:    "acerca.md",
		EmptyMessage: "No hay posts todavía. ¡Agrega uno nuevo!",
		Title:        "Historia Argentina",
	}
}

// Load reads the settings file and overlays it on top of defaults.
// A missing settings file is fine; fields absent from the JSON keep their
// defaults because Unmarshal does not reset them.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading settings file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing settings file: %w", err)
	}

	return cfg, nil
}

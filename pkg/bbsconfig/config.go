// Package bbsconfig loads and hot-reloads the runtime configuration map
// described in spec.md §6.4: BBS identity, which games are enabled, and
// the storage root. It is deliberately small — mesh radio configuration,
// logger setup, and CLI flag parsing belong to the collaborator that
// embeds this module, not to the core.
package bbsconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// BBS holds identity/branding settings shown in banners and prompts.
type BBS struct {
	Name string `yaml:"name"`
}

// Games toggles the optional subsystems layered on top of the message
// board core.
type Games struct {
	TinyhackEnabled  bool   `yaml:"tinyhack_enabled"`
	TinymushEnabled  bool   `yaml:"tinymush_enabled"`
	TinymushDBPath   string `yaml:"tinymush_db_path"`
}

// Storage points at the on-disk root all persistence is rooted under.
type Storage struct {
	DataDir string `yaml:"data_dir"`
}

// MessageTopic is fallback display metadata for a topic not (yet)
// present in the runtime topic config file — used only for cosmetic
// listings before a sysop has created matching topics on disk.
type MessageTopic struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Config is the full runtime configuration map named in spec.md §6.4.
type Config struct {
	BBS           BBS            `yaml:"bbs"`
	Games         Games          `yaml:"games"`
	Storage       Storage        `yaml:"storage"`
	MessageTopics []MessageTopic `yaml:"message_topics"`
}

// Default returns the built-in defaults used when no config file is
// present, so a fresh collaborator can boot without authoring YAML.
func Default() Config {
	return Config{
		BBS:     BBS{Name: "MeshBBS"},
		Games:   Games{TinyhackEnabled: true, TinymushEnabled: true, TinymushDBPath: "tinymush.json"},
		Storage: Storage{DataDir: "./data"},
	}
}

// Load reads and parses path, layering it over Default() so a partial
// config file only overrides the keys it sets.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

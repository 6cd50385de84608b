package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "medremind.db"
	DefaultLogName        = "medremind.log"
	DefaultStoreKey       = "reminders"
	DefaultCompletedLimit = 100

	appDirName = "medremind"
	envPrefix  = "MEDREMIND"
	envConfig  = "MEDREMIND_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	NextTab  string `toml:"next_tab"`
	PrevTab  string `toml:"prev_tab"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Add      string `toml:"add"`
	Complete string `toml:"complete"`
	Delete   string `toml:"delete"`
	Edit     string `toml:"edit"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
}

type Config struct {
	DBPath         string `toml:"db_path" envconfig:"DB_PATH"`
	StoreKey       string `toml:"store_key" envconfig:"STORE_KEY"`
	LogFile        string `toml:"log_file" envconfig:"LOG_FILE"`
	LogLevel       string `toml:"log_level" envconfig:"LOG_LEVEL"`
	CompletedLimit int    `toml:"completed_limit" envconfig:"COMPLETED_LIMIT"`
	DefaultTab     string `toml:"default_tab" envconfig:"DEFAULT_TAB"`
	Keys           Keymap `toml:"keys" ignored:"true"`
}

// ResolveConfigPath returns $MEDREMIND_CONFIG when set, otherwise
// config.toml under the user config directory. It falls back to the
// working directory when no config directory is available.
func ResolveConfigPath() string {
	if p := os.Getenv(envConfig); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing defaults on first launch.
// Relative db and log paths resolve against the config file's directory.
// MEDREMIND_* environment variables override file values.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.StoreKey == "" {
		c.StoreKey = def.StoreKey
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.CompletedLimit <= 0 {
		c.CompletedLimit = def.CompletedLimit
	}
	if c.DefaultTab == "" {
		c.DefaultTab = def.DefaultTab
	}
	k := &c.Keys
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&k.Quit, def.Keys.Quit)
	fill(&k.NextTab, def.Keys.NextTab)
	fill(&k.PrevTab, def.Keys.PrevTab)
	fill(&k.Up, def.Keys.Up)
	fill(&k.Down, def.Keys.Down)
	fill(&k.Add, def.Keys.Add)
	fill(&k.Complete, def.Keys.Complete)
	fill(&k.Delete, def.Keys.Delete)
	fill(&k.Edit, def.Keys.Edit)
	fill(&k.Confirm, def.Keys.Confirm)
	fill(&k.Cancel, def.Keys.Cancel)
}

func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.DBPath) && !hasScheme(c.DBPath) {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if c.LogFile != "" && !filepath.IsAbs(c.LogFile) {
		c.LogFile = filepath.Join(base, c.LogFile)
	}
}

func hasScheme(p string) bool {
	return len(p) > 5 && p[:5] == "file:"
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:         DefaultDBName,
		StoreKey:       DefaultStoreKey,
		LogFile:        DefaultLogName,
		LogLevel:       "info",
		CompletedLimit: DefaultCompletedLimit,
		DefaultTab:     "remind",
		Keys: Keymap{
			Quit:     "q",
			NextTab:  "tab",
			PrevTab:  "shift+tab",
			Up:       "k",
			Down:     "j",
			Add:      "a",
			Complete: "c",
			Delete:   "d",
			Edit:     "e",
			Confirm:  "enter",
			Cancel:   "esc",
		},
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "daylist.db"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Add        string `toml:"add"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Delete     string `toml:"delete"`
	Undo       string `toml:"undo"`
	MoveUp     string `toml:"move_up"`
	MoveDown   string `toml:"move_down"`
	CycleSort  string `toml:"cycle_sort"`
	Search     string `toml:"search"`
	TrashView  string `toml:"trash_view"`
	Restore    string `toml:"restore"`
	EmptyTrash string `toml:"empty_trash"`
	Help       string `toml:"help"`
	Cancel     string `toml:"cancel"`
}

type Config struct {
	DBPath          string `toml:"db_path"`
	LogDir          string `toml:"log_dir"`
	UndoSeconds     int    `toml:"undo_seconds"`
	TrashMaxAgeDays int    `toml:"trash_max_age_days"`
	DefaultSort     string `toml:"default_sort"`
	Keys            Keymap `toml:"keys"`
}

// LoadOrCreate reads the config file, writing defaults first when it does
// not exist yet. Env overrides apply on top of whatever was loaded.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return applyEnv(cfg), err
		}
		return applyEnv(cfg), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnv(cfg), err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return applyEnv(Default()), err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.UndoSeconds <= 0 {
		cfg.UndoSeconds = 5
	}
	if cfg.TrashMaxAgeDays <= 0 {
		cfg.TrashMaxAgeDays = 7
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("DAYLIST_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYLIST_LOG_DIR")); v != "" {
		cfg.LogDir = v
	}
	if v, ok := getEnvInt("DAYLIST_UNDO_SECONDS"); ok && v > 0 {
		cfg.UndoSeconds = v
	}
	if v, ok := getEnvInt("DAYLIST_TRASH_MAX_AGE_DAYS"); ok && v > 0 {
		cfg.TrashMaxAgeDays = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYLIST_DEFAULT_SORT")); v != "" {
		cfg.DefaultSort = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the built-in configuration, also written to disk on the
// first run.
func Default() Config {
	return Config{
		DBPath:          DefaultDBName,
		LogDir:          "logs",
		UndoSeconds:     5,
		TrashMaxAgeDays: 7,
		DefaultSort:     "manual",
		Keys: Keymap{
			Quit:       "q",
			Add:        "a",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Delete:     "d",
			Undo:       "u",
			MoveUp:     "K",
			MoveDown:   "J",
			CycleSort:  "s",
			Search:     "/",
			TrashView:  "t",
			Restore:    "enter",
			EmptyTrash: "X",
			Help:       "?",
			Cancel:     "esc",
		},
	}
}

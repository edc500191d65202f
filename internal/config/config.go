package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Veraticus/mathnote/internal/common"
	"github.com/Veraticus/mathnote/internal/model"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyDatabasePath = "database.path"
	KeyDefaultParty = "ledger.default_party"
	KeyWorkers      = "import.workers"
	KeyCategories   = "magicnote.categories"
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
)

// Settings is the resolved application configuration.
type Settings struct {
	CategoryKeywords map[model.ExpenseCategory][]string
	DatabasePath     string
	DefaultParty     string
	LogLevel         string
	LogFormat        string
	Workers          int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyDefaultParty, model.DefaultParty)
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// LoadEnvFile loads variables from a .env file into the process environment.
// An empty path tries ./.env and ignores it when missing.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
		return nil
	}
	if err := godotenv.Load(ExpandPath(path)); err != nil {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

// Load resolves Settings from v. Category keywords are read from a map of
// category name to keyword list, for example:
//
//	magicnote:
//	  categories:
//	    food: [samosa, chai]
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		DefaultParty: strings.TrimSpace(v.GetString(KeyDefaultParty)),
		Workers:      v.GetInt(KeyWorkers),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}

	if s.DatabasePath == "" {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyDatabasePath)
	}
	if s.DefaultParty == "" {
		s.DefaultParty = model.DefaultParty
	}
	if s.Workers < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyWorkers, s.Workers)
	}

	raw := v.GetStringMapStringSlice(KeyCategories)
	if len(raw) > 0 {
		s.CategoryKeywords = make(map[model.ExpenseCategory][]string, len(raw))
		for name, keywords := range raw {
			category, ok := model.ParseExpenseCategory(name)
			if !ok {
				return nil, fmt.Errorf("%w: unknown expense category %q in %s", common.ErrInvalidConfig, name, KeyCategories)
			}
			s.CategoryKeywords[category] = append(s.CategoryKeywords[category], keywords...)
		}
	}

	return s, nil
}

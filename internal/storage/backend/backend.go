// Package backend picks a storage.Provider from the --config value.
package backend

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitcards/internal/constants"
	"github.com/julianstephens/habitcards/internal/keyring"
	"github.com/julianstephens/habitcards/internal/logger"
	"github.com/julianstephens/habitcards/internal/storage"
	"github.com/julianstephens/habitcards/internal/storage/jsonfile"
	"github.com/julianstephens/habitcards/internal/storage/postgres"
	"github.com/julianstephens/habitcards/internal/storage/redis"
	"github.com/julianstephens/habitcards/internal/storage/sqlite"
)

// Kind identifies a storage backend
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindJSON     Kind = "json"
)

// ErrEmbeddedCredentials is returned when a password is passed on the command line
var ErrEmbeddedCredentials = errors.New("connection strings with embedded passwords are not allowed on the command line; store them with 'habitcards keyring set'")

// Detect classifies a config value without opening anything
func Detect(config string) Kind {
	switch {
	case strings.HasPrefix(config, "postgres://"), strings.HasPrefix(config, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(config, "host="), strings.Contains(config, " dbname="):
		return KindPostgres
	case strings.HasPrefix(config, "redis://"), strings.HasPrefix(config, "rediss://"):
		return KindRedis
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Open builds the provider for config. The value "keyring" reads the real
// connection string from the OS keyring, where embedded passwords are allowed.
func Open(config string) (storage.Provider, error) {
	fromKeyring := false
	if config == constants.KeyringConfigValue {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		config = connStr
		fromKeyring = true
	}

	kind := Detect(config)
	logger.Debug("Selecting storage backend", "kind", kind, "keyring", fromKeyring)

	switch kind {
	case KindPostgres:
		if !fromKeyring {
			if _, err := postgres.ValidateConnString(config); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return nil, ErrEmbeddedCredentials
				}
				return nil, err
			}
		}
		return postgres.New(config), nil

	case KindRedis:
		u, err := url.Parse(config)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		if _, hasPassword := u.User.Password(); hasPassword && !fromKeyring {
			return nil, ErrEmbeddedCredentials
		}
		return redis.New(config), nil

	case KindJSON:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return jsonfile.NewStore(path), nil

	default:
		path, err := ExpandPath(config)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

// ConfigDir returns the directory used for logs and backups. Network backends
// fall back to the directory of the default SQLite path.
func ConfigDir(config string) string {
	path := config
	if k := Detect(config); (k != KindSQLite && k != KindJSON) || config == constants.KeyringConfigValue {
		path = constants.DefaultConfigPath
	}
	expanded, err := ExpandPath(path)
	if err != nil {
		return filepath.Dir(path)
	}
	return filepath.Dir(expanded)
}

package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/admin/sqlloader/internal/errors"
)

const (
	ConfigFile  = "config.json"
	DefaultPort = 5432
)

// Config is the resolved connection configuration of a dataset. Host and
// Driver may stay empty, in which case the tool wide defaults apply.
type Config struct {
	DBName   string `json:"dbname"`
	User     string `json:"user"`
	Password string `json:"password"`
	Port     Port   `json:"port"`
	Host     string `json:"host"`
	Driver   string `json:"driver"`
}

// Port accepts both 5432 and "5432" in config.json.
type Port int

func (p *Port) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid port %s", b)
	}
	*p = Port(n)
	return nil
}

// Overrides holds the values supplied on the command line. Nil fields were
// not given and leave the directory config untouched.
type Overrides struct {
	DBName   *string
	User     *string
	Password *string
	Port     *int
	Host     *string
	Driver   *string
}

func (o Overrides) apply(cfg Config) Config {
	if o.DBName != nil {
		cfg.DBName = *o.DBName
	}
	if o.User != nil {
		cfg.User = *o.User
	}
	if o.Password != nil {
		cfg.Password = *o.Password
	}
	if o.Port != nil {
		cfg.Port = Port(*o.Port)
	}
	if o.Host != nil {
		cfg.Host = *o.Host
	}
	if o.Driver != nil {
		cfg.Driver = *o.Driver
	}
	return cfg
}

func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// Resolve reads dir/config.json, lays the overrides on top and fills in the
// user and port defaults.
func Resolve(dir string, overrides Overrides) (Config, error) {
	path := ConfigPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapConfigRead(path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapConfigRead(path, err)
	}

	cfg = overrides.apply(cfg)
	if cfg.DBName == "" {
		return Config{}, errors.ErrInsufficientConfig
	}
	if cfg.User == "" {
		cfg.User = cfg.DBName
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}

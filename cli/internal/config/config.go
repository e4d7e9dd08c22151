// Package config resolves the CLI configuration from flags, environment,
// dotenv files and an optional .oria.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oria-mc/oria/convert"
)

// AppFs is the filesystem config and dotenv files are read from.
var AppFs = afero.NewOsFs()

const (
	// FileName is the config file name without extension.
	FileName = ".oria"

	// EnvPrefix prefixes every environment override, e.g. ORIA_WORKERS.
	EnvPrefix = "ORIA"
)

// Config keys.
const (
	KeyInputDir        = "input_dir"
	KeyOutputDir       = "output_dir"
	KeyDirection       = "direction"
	KeyVerbose         = "verbose"
	KeyWorkers         = "workers"
	KeyForce           = "force"
	KeyReport          = "report"
	KeyRequiredVersion = "required_version"
)

// Config holds the application configuration.
type Config struct {
	InputDir        string `mapstructure:"input_dir" yaml:"input_dir"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir"`
	Direction       string `mapstructure:"direction" yaml:"direction"`
	Verbose         bool   `mapstructure:"verbose" yaml:"verbose"`
	Workers         int    `mapstructure:"workers" yaml:"workers"`
	Force           bool   `mapstructure:"force" yaml:"force"`
	Report          bool   `mapstructure:"report" yaml:"report"`
	RequiredVersion string `mapstructure:"required_version" yaml:"required_version"`
}

// ConvertDirection parses Direction.
func (c *Config) ConvertDirection() (convert.Direction, error) {
	return convert.ParseDirection(c.Direction)
}

// Manager owns a viper instance. Values resolve in the order flag, env,
// config file, default.
type Manager struct {
	fs   afero.Fs
	v    *viper.Viper
	home string
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem used for config and dotenv files.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) { m.fs = fs }
}

// WithHome overrides the home directory used in the search path.
func WithHome(dir string) Option {
	return func(m *Manager) { m.home = dir }
}

// NewManager creates a Manager with defaults applied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{fs: AppFs}
	for _, opt := range opts {
		opt(m)
	}
	if m.home == "" {
		if home, err := homedir.Dir(); err == nil {
			m.home = home
		}
	}

	v := viper.New()
	v.SetFs(m.fs)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyInputDir, "")
	v.SetDefault(KeyOutputDir, "")
	v.SetDefault(KeyDirection, convert.ItemsAdderToOxaren.String())
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyWorkers, convert.DefaultWorkers)
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyReport, false)
	v.SetDefault(KeyRequiredVersion, "")

	m.v = v
	return m
}

// BindFlags binds the flags that share a name with a config key.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	for key, name := range map[string]string{
		KeyVerbose: "verbose",
		KeyWorkers: "workers",
		KeyForce:   "force",
		KeyReport:  "report",
	} {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := m.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// SearchPaths returns the directories searched for .oria.yaml.
func (m *Manager) SearchPaths() []string {
	paths := []string{"."}
	if m.home != "" {
		paths = append(paths, m.home, filepath.Join(m.home, ".config", "oria"))
	}
	return paths
}

// Load loads dotenv files and the config file, then resolves the
// configuration. An explicit configFile must exist; otherwise a missing
// config file is not an error.
func (m *Manager) Load(configFile string) (*Config, error) {
	if err := m.loadDotenv(); err != nil {
		return nil, err
	}

	if configFile != "" {
		m.v.SetConfigFile(configFile)
	} else {
		m.v.SetConfigName(FileName)
		m.v.SetConfigType("yaml")
		for _, p := range m.SearchPaths() {
			m.v.AddConfigPath(p)
		}
	}

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigFileUsed returns the config file that was read, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// DefaultSavePath is where Save writes.
func (m *Manager) DefaultSavePath() string {
	return filepath.Join(m.home, ".config", "oria", FileName+".yaml")
}

// Save writes cfg to DefaultSavePath and returns the path.
func (m *Manager) Save(cfg *Config) (string, error) {
	m.v.Set(KeyInputDir, cfg.InputDir)
	m.v.Set(KeyOutputDir, cfg.OutputDir)
	m.v.Set(KeyDirection, cfg.Direction)
	m.v.Set(KeyVerbose, cfg.Verbose)
	m.v.Set(KeyWorkers, cfg.Workers)
	m.v.Set(KeyForce, cfg.Force)
	m.v.Set(KeyReport, cfg.Report)
	m.v.Set(KeyRequiredVersion, cfg.RequiredVersion)

	path := m.DefaultSavePath()
	if err := m.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := m.v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// Validate checks values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	if _, err := c.ConvertDirection(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// loadDotenv loads .env, then .env.local with precedence over it. Variables
// already present in the environment win over .env but not over .env.local.
func (m *Manager) loadDotenv() error {
	for _, f := range []struct {
		name      string
		overwrite bool
	}{
		{".env", false},
		{".env.local", true},
	} {
		file, err := m.fs.Open(f.name)
		if err != nil {
			continue
		}
		values, err := godotenv.Parse(file)
		file.Close()
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", f.name, err)
		}

		for k, v := range values {
			if _, set := os.LookupEnv(k); set && !f.overwrite {
				continue
			}
			if err := os.Setenv(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

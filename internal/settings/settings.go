// Package settings loads application configuration from an optional config
// file, a .env file, environment variables and command-line flags.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/mathgen/internal/config"
)

// EnvPrefix is prepended to every environment variable, e.g. MATHGEN_DB.
const EnvPrefix = "MATHGEN"

// Settings holds application configuration.
type Settings struct {
	Env        string `mapstructure:"env"`         // local, development, production
	BackendURL string `mapstructure:"backend_url"` // generator service base address
	DBPath     string `mapstructure:"db"`          // empty selects the XDG default
	LogFile    string `mapstructure:"log_file"`    // empty disables TUI logging
	LogLevel   string `mapstructure:"log_level"`

	// RequestTimeout bounds one generate request from the client.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	Server   Server   `mapstructure:"server"`
	Defaults Defaults `mapstructure:"defaults"`
}

// Server configures the generator service started by `mathgen serve`.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Defaults overrides the initial generation parameters. Values go through
// config.Config.Set, so out-of-domain values are rejected at load time.
type Defaults struct {
	YearLevel    string `mapstructure:"year_level"`
	Difficulty   string `mapstructure:"difficulty"`
	QuestionType string `mapstructure:"question_type"`
	Topic        string `mapstructure:"topic"`
	NumQuestions string `mapstructure:"num_questions"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, mathgen.yaml
	// is searched in the working directory and $HOME/.config/mathgen.
	ConfigFile string

	// DotEnvFiles are loaded into the process environment before reading
	// variables. Missing files are ignored. Defaults to ".env".
	DotEnvFiles []string

	// Bind registers command-line flags on the viper instance.
	Bind func(v *viper.Viper) error
}

// Load reads configuration in increasing priority: defaults, config file,
// environment (including .env), flags.
func Load(opts Options) (*Settings, error) {
	if err := loadDotEnv(opts.DotEnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("mathgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mathgen")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// React deployments exported the address under this name.
	_ = v.BindEnv("backend_url", EnvPrefix+"_BACKEND_URL", "REACT_APP_BACKEND_URL")

	if opts.Bind != nil {
		if err := opts.Bind(v); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	s.BackendURL = strings.TrimSpace(s.BackendURL)

	if _, err := s.InitialConfig(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Env:            "local",
		LogLevel:       "info",
		RequestTimeout: 2 * time.Minute,
		Server: Server{
			Addr:            ":8000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    3 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("env", d.Env)
	v.SetDefault("backend_url", d.BackendURL)
	v.SetDefault("db", d.DBPath)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	for _, f := range config.AllFields() {
		v.SetDefault("defaults."+string(f), "")
	}
}

// InitialConfig applies Defaults on top of config.Default.
func (s Settings) InitialConfig() (config.Config, error) {
	cfg := config.Default()
	overrides := []struct {
		field config.Field
		raw   string
	}{
		{config.FieldYearLevel, s.Defaults.YearLevel},
		{config.FieldDifficulty, s.Defaults.Difficulty},
		{config.FieldQuestionType, s.Defaults.QuestionType},
		{config.FieldTopic, s.Defaults.Topic},
		{config.FieldNumQuestions, s.Defaults.NumQuestions},
	}
	for _, o := range overrides {
		if strings.TrimSpace(o.raw) == "" {
			continue
		}
		next, err := cfg.Set(o.field, o.raw)
		if err != nil {
			return config.Default(), fmt.Errorf("defaults.%s: %w", o.field, err)
		}
		cfg = next
	}
	return cfg, nil
}

// IsProduction reports whether Env selects production logging.
func (s Settings) IsProduction() bool {
	return s.Env == "production"
}

func loadDotEnv(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

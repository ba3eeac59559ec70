package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"yadro.com/comicbot/poster/core"
)

const (
	// DefaultEnvFile is read when present in the working directory.
	DefaultEnvFile = ".env"
	envFileVar     = "ENV_FILE"
)

var (
	tokenRe   = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9_-]+$`)
	channelRe = regexp.MustCompile(`^(-?[0-9]+|@[A-Za-z0-9_]{4,})$`)
)

type Config struct {
	LogLevel      string        `env:"LOG_LEVEL" env-default:"INFO"`
	LogFile       string        `env:"LOG_FILE"`
	BotToken      string        `env:"TG_BOT_TOKEN"`
	ChannelID     string        `env:"TG_CHANNEL_ID"`
	XKCDURL       string        `env:"XKCD_URL" env-default:"https://xkcd.com"`
	TelegramURL   string        `env:"TG_API_URL" env-default:"https://api.telegram.org"`
	Timeout       time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
	BrokerAddress string        `env:"BROKER_ADDRESS"`
	BrokerSubject string        `env:"BROKER_SUBJECT" env-default:"xkcd.comic.posted"`
}

// Source picks the env file to read: ENV_FILE when set, .env when it exists,
// or "" for plain environment.
func Source() string {
	if path := os.Getenv(envFileVar); path != "" {
		return path
	}
	if _, err := os.Stat(DefaultEnvFile); err == nil {
		return DefaultEnvFile
	}
	return ""
}

// Load reads the process environment, filling unset variables from the
// env file at path, if any. Exported variables win over the file.
func Load(path string) (Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%w: configuration source not found: %s", core.ErrConfig, path)
			}
			return Config{}, fmt.Errorf("%w: %v", core.ErrConfig, err)
		}
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("%w: cannot read %s: %v", core.ErrConfig, path, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", core.ErrConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	c.BotToken = strings.TrimSpace(c.BotToken)
	c.ChannelID = strings.TrimSpace(c.ChannelID)

	switch {
	case c.BotToken == "":
		return fmt.Errorf("%w: TG_BOT_TOKEN is not set", core.ErrConfig)
	case !tokenRe.MatchString(c.BotToken):
		return fmt.Errorf("%w: TG_BOT_TOKEN is malformed", core.ErrConfig)
	case c.ChannelID == "":
		return fmt.Errorf("%w: TG_CHANNEL_ID is not set", core.ErrConfig)
	case !channelRe.MatchString(c.ChannelID):
		return fmt.Errorf("%w: TG_CHANNEL_ID is malformed: %q", core.ErrConfig, c.ChannelID)
	case c.Timeout <= 0:
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", core.ErrConfig)
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
		c.LogLevel = strings.ToUpper(c.LogLevel)
	default:
		return fmt.Errorf("%w: LOG_LEVEL %q is unknown", core.ErrConfig, c.LogLevel)
	}
	return nil
}

func (c Config) Credentials() core.Credentials {
	return core.Credentials{BotToken: c.BotToken, ChannelID: c.ChannelID}
}

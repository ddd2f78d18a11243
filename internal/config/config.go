package config

import (
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	TelegramBot TelegramBot
	Data        Data
	HTTP        HTTP
	Analysis    Analysis
}

// TelegramBot is optional; without a token the bot and scheduled pushes stay off.
type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID" validate:"required_with=Token"`
}

type Data struct {
	SnapshotPath    string        `envconfig:"SNAPSHOT_PATH" required:"true" validate:"required"`
	PlayersPath     string        `envconfig:"PLAYERS_PATH" required:"true" validate:"required"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"1h" validate:"gte=1m"`
}

type HTTP struct {
	Addr string `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
}

type Analysis struct {
	ConflictPolicy string `envconfig:"CONFLICT_POLICY" default:"independent" validate:"oneof=independent higher-count"`
	Timezone       string `envconfig:"TIMEZONE" default:"America/Chicago" validate:"required"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, crerr.Wrap(err, "processing environment")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return crerr.Wrap(err, "invalid configuration")
	}
	return nil
}

func (c *Config) BotEnabled() bool {
	return c.TelegramBot.Token != ""
}

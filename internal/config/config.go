package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	HTTP struct {
		Addr         string
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"http"`

	Postgres struct {
		DSN        string
		Migrations string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	// Backend внешний REST, куда уходят лоты при sink=http
	Backend struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"backend"`

	// Sink: db | http; LotPolicy: either | both
	Receiving struct {
		Sink      string
		LotPolicy string `mapstructure:"lot_policy"`
	} `mapstructure:"receiving"`
}

func Load(path string) (Config, error) {
	// .env рядом с бинарником — необязателен
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	// APP_POSTGRES_DSN переопределяет postgres.dsn и т.д.
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("app.env", "prod")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.write_timeout", 60*time.Second)
	v.SetDefault("postgres.migrations", "migrations")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("receiving.sink", "db")
	v.SetDefault("receiving.lot_policy", "both")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

/*
адрес и порт запуска сервиса: RUN_ADDRESS или флаг -a;
адрес подключения к базе данных: DATABASE_URI или флаг -d (пусто: CSV-файлы);
файлы заказов и пользователей: ORDERS_FILE / -o, USERS_FILE / -u.
*/

var ErrNegativeHistoryLimit = errors.New("history limit must not be negative")

var DefaultRooms = []string{"المكتب الرئيسي", "غرفة الاجتماعات", "المكتب الجانبي", "الاستقبال"}

type ServerConfig struct {
	RunAddress          string        `env:"RUN_ADDRESS"`
	DatabaseDSN         string        `env:"DATABASE_URI"`
	OrdersFile          string        `env:"ORDERS_FILE"`
	UsersFile           string        `env:"USERS_FILE"`
	Secret              string        `env:"SECRET"`
	AuthCookieExpiresIn int           `env:"AUTH_COOKIE_EXPIRES_IN"`
	RefreshInterval     time.Duration `env:"REFRESH_INTERVAL"`
	HistoryLimit        int           `env:"HISTORY_LIMIT" envDefault:"-1"`
	AnimationTimeout    time.Duration `env:"ANIMATION_TIMEOUT" envDefault:"3s"`
	AnimationCacheTTL   time.Duration `env:"ANIMATION_CACHE_TTL" envDefault:"10m"`
	LogLevel            string        `env:"LOG_LEVEL"`
	Rooms               []string      `env:"ROOMS" envSeparator:","`
}

// NewConfig reads .env (if present), then the environment, then args.
// A value set in the environment wins over the flag.
func NewConfig(args []string) (*ServerConfig, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var params ServerConfig
	err = env.Parse(&params)
	if err != nil {
		return nil, err
	}

	var commandLineParams ServerConfig

	flags := flag.NewFlagSet("orderboard", flag.ContinueOnError)
	flags.StringVar(&commandLineParams.RunAddress, "a", "localhost:8080", "Base address to listen on")
	flags.StringVar(&commandLineParams.DatabaseDSN, "d", "", "Database DSN, CSV files are used when empty")
	flags.StringVar(&commandLineParams.OrdersFile, "o", "orders.csv", "Orders CSV file")
	flags.StringVar(&commandLineParams.UsersFile, "u", "users.csv", "Users CSV file")
	flags.StringVar(&commandLineParams.Secret, "s", "orderboard-dev-secret", "Secret for signing session cookies")
	flags.IntVar(&commandLineParams.AuthCookieExpiresIn, "e", 24*60*60, "Session cookie lifetime in seconds")
	flags.DurationVar(&commandLineParams.RefreshInterval, "r", 15*time.Second, "Board refresh interval")
	flags.IntVar(&commandLineParams.HistoryLimit, "n", 10, "Number of done orders shown in history")
	flags.StringVar(&commandLineParams.LogLevel, "l", "info", "Log level")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if commandLineParams.HistoryLimit < 0 {
		return nil, fmt.Errorf("%w: -n %d", ErrNegativeHistoryLimit, commandLineParams.HistoryLimit)
	}

	if params.RunAddress == "" {
		params.RunAddress = commandLineParams.RunAddress
	}
	if params.DatabaseDSN == "" {
		params.DatabaseDSN = commandLineParams.DatabaseDSN
	}
	if params.OrdersFile == "" {
		params.OrdersFile = commandLineParams.OrdersFile
	}
	if params.UsersFile == "" {
		params.UsersFile = commandLineParams.UsersFile
	}
	if params.Secret == "" {
		params.Secret = commandLineParams.Secret
	}
	if params.AuthCookieExpiresIn == 0 {
		params.AuthCookieExpiresIn = commandLineParams.AuthCookieExpiresIn
	}
	if params.RefreshInterval == 0 {
		params.RefreshInterval = commandLineParams.RefreshInterval
	}
	if params.HistoryLimit < 0 {
		params.HistoryLimit = commandLineParams.HistoryLimit
	}
	if params.LogLevel == "" {
		params.LogLevel = commandLineParams.LogLevel
	}
	if len(params.Rooms) == 0 {
		params.Rooms = DefaultRooms
	}

	return &params, nil
}

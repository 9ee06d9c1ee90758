package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = ".env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":9480"
	defaultSQLitePath = "folharh.db"
	defaultMigrations = "migrations"
)

type Config struct {
	Env      string
	Province string
	DB       db
	Server   server
	Logger   logger
}

type defaultConfig struct {
	RunAddress  string
	DatabaseURI string
	SQLitePath  string
	Migrations  string
	LogLevel    string
	Province    string
	Env         string
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// MustLoad reads the server configuration from the environment.
// DATABASE_URI selects the Postgres row store; when empty the server
// falls back to the embedded SQLite database at SQLITE_PATH.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	d := defaultConfig{
		RunAddress:  viper.GetString("run_address"),
		DatabaseURI: viper.GetString("database_uri"),
		SQLitePath:  viper.GetString("sqlite_path"),
		Migrations:  viper.GetString("migrations_path"),
		LogLevel:    viper.GetString("log_level"),
		Province:    viper.GetString("province"),
		Env:         viper.GetString("app_env"),
	}
	if d.RunAddress == "" {
		d.RunAddress = defaultRunAddress
	}
	if d.SQLitePath == "" {
		d.SQLitePath = defaultSQLitePath
	}
	if d.Migrations == "" {
		d.Migrations = defaultMigrations
	}

	config := Config{
		Env:      d.Env,
		Province: d.Province,
		DB: db{
			DatabaseURI: d.DatabaseURI,
			SQLitePath:  d.SQLitePath,
			Migrations:  d.Migrations,
		},
		Server: server{RunAddress: d.RunAddress},
		Logger: logger{LogLevel: d.LogLevel},
	}

	return &config
}

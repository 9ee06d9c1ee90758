package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel   = "info"
	defaultEnv        = "local"
	defaultConfigDir  = ".folharh"
	defaultMode       = "standalone"
	defaultServerPort = 9480
)

type Config struct {
	Env         string `mapstructure:"app_env"`
	LogLevel    string `mapstructure:"log_level"`
	ConfigDir   string `mapstructure:"config_dir"`
	DataPath    string `mapstructure:"data_path"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	Province    string `mapstructure:"province"`
	NetworkMode string `mapstructure:"network_mode"`
	ServerIP    string `mapstructure:"server_ip"`
	ServerPort  int    `mapstructure:"server_port"`
}

// MustLoad reads the client configuration. The values here are only the
// bootstrap defaults: the persisted company settings override the network
// topology once the data files exist.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Erro ao carregar o ficheiro .env: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("NETWORK_MODE", defaultMode)
	viper.SetDefault("SERVER_PORT", defaultServerPort)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("Erro ao criar a directoria de configuração: %v\n", err)
	}

	dataPath := filepath.Join(configDir, "data.json")
	sqlitePath := filepath.Join(configDir, "folharh.db")

	config := &Config{
		Env:         viper.GetString("APP_ENV"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		ConfigDir:   configDir,
		DataPath:    dataPath,
		SQLitePath:  sqlitePath,
		Province:    viper.GetString("PROVINCE"),
		NetworkMode: viper.GetString("NETWORK_MODE"),
		ServerIP:    viper.GetString("SERVER_IP"),
		ServerPort:  viper.GetInt("SERVER_PORT"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Erro de configuração: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path não pode ser vazio")
	}
	if c.NetworkMode == "client" && c.ServerIP == "" {
		return fmt.Errorf("network_mode=client exige server_ip")
	}
	return nil
}

// IsProd reports whether the environment is prod.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal reports whether the environment is local.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"folharh/cmd/client/cmd/types"
	"folharh/internal/app/client"
	"folharh/internal/app/client/config"
	"folharh/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	app        *client.App
	debug      bool
	jsonOutput bool
	serverIP   string
)

var rootCmd = &cobra.Command{
	Use:   "folharh",
	Short: "FolhaRH - gestão de salários e recursos humanos",
	Long: `FolhaRH é a aplicação de gestão de salários e recursos humanos
para empresas angolanas com filiais em várias províncias.

Os dados de cada província são guardados localmente e, quando a aplicação
funciona em modo cliente, lidos e gravados num servidor central na rede.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("erro ao carregar a configuração: %w", err)
	}

	if serverIP != "" {
		cfg.ServerIP = serverIP
	}
	if debug {
		cfg.Env = "local"
	}

	log = logger.New(cfg.Env)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("erro ao inicializar a aplicação: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.AppKey, app))
	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		configDir := filepath.Join(home, ".folharh")
		viper.AddConfigPath(configDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file, defaults and environment take over.
	}

	return config.MustLoad(), nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "ficheiro de configuração")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "activar o modo de depuração")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "saída em formato JSON")
	rootCmd.PersistentFlags().StringVar(&serverIP, "server", "", "endereço IP do servidor FolhaRH")
}

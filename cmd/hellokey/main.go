package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/hellokey/internal/config"

	// registra memory, redis, postgres, sqlite y mongo
	_ "github.com/dropDatabas3/hellokey/internal/store/adapters/all"
)

func newRootCmd() *cobra.Command {
	var (
		cfgPath = envOr("HELLOKEY_CONFIG", "")
		envFile = ".env"
	)

	root := &cobra.Command{
		Use:           "hellokey",
		Short:         "API facade: login con GitHub, credenciales de API y bearer tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env es opcional; las vars del proceso tienen prioridad
			if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", cfgPath, "Archivo YAML de configuración (env HELLOKEY_CONFIG)")
	root.PersistentFlags().StringVar(&envFile, "env-file", envFile, "Archivo .env a cargar si existe")

	load := func() (*config.Config, error) {
		return config.Load(cfgPath)
	}

	root.AddCommand(newServeCmd(load))
	root.AddCommand(newCredsCmd(load))
	root.AddCommand(newTokenCmd(load))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type loadFunc func() (*config.Config, error)

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

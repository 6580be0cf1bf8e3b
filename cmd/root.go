package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/journey/cart/cmd"
	catalogCmd "github.com/Alturino/journey/catalog/cmd"
	"github.com/Alturino/journey/internal/constants"
)

func Start() {
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str(constants.KEY_APP_NAME, constants.APP_MAIN_JOURNEY).
		Str(constants.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "journey"}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "catalog",
			Short: "Run catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}

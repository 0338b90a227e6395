// Command artgallery runs the art marketplace API and its maintenance tasks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Deepender31/artwork-backend/internal/pkg/config"
	"github.com/Deepender31/artwork-backend/pkg/logger"
)

// @title                      Art Gallery API
// @version                    1.0
// @description                Marketplace for artists to publish artworks and for buyers to like, comment on and order them.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "artgallery",
		Short:         "Art marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newSeedCmd())
	return root
}

// bootstrap loads the configuration and initialises the logger. Every
// subcommand starts with it.
func bootstrap(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "artgallery",
	})
	return cfg, nil
}

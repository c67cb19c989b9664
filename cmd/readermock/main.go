// readermock runs the mock reader application standalone, for developing
// tests against a browser by hand instead of through the test runner.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenfeed/reader-e2e/cmd/readermock/server"
	"github.com/lumenfeed/reader-e2e/internal/config"
	"github.com/lumenfeed/reader-e2e/internal/logger"
)

func main() {
	cfg := config.Load()

	var (
		addr     string
		articles int
	)

	root := &cobra.Command{
		Use:          "readermock",
		Short:        "Mock reader application used by the E2E suite",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock reader until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(cfg.LogLevel, cfg.LogPretty)
			log := logger.Get()

			srvCfg := server.DefaultConfig()
			srvCfg.Addr = addr
			srvCfg.ArticleCount = articles

			srv, err := server.New(srvCfg)
			if err != nil {
				return err
			}
			if _, err := srv.Start(); err != nil {
				return err
			}
			log.Info().Str("url", srv.BaseURL()+"/reader").Msg("reader ready")

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}
	serve.Flags().StringVar(&addr, "addr", cfg.Addr, "listen address")
	serve.Flags().IntVar(&articles, "articles", cfg.ArticleCount, "fixture articles to seed")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

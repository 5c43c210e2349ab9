package main

import (
	"os"
	"os/signal"
	"syscall"

	"compliance/app/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ServerAddr = addr
		}
		s := server.NewServer(cfg, logger)

		errCh := make(chan error, 1)
		go func() { errCh <- s.Run() }()

		sigch := make(chan os.Signal, 1)
		signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sigch:
			logger.Info("Received shutdown signal, shutting down server...")
			return s.Stop()
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides SERVER_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

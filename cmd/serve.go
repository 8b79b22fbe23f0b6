package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"github.com/dmcfuji/studiosite/internal/pkg/env"
	"github.com/dmcfuji/studiosite/internal/pkg/server"
)

func newServeCmd() *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Example: `  # Listen on APP_HOST:APP_PORT (default localhost:4000)
  studiosite serve

  # Listen on all interfaces
  studiosite serve --host 0.0.0.0 --port 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			basePath := server.FindBasePath()
			if basePath == "" {
				return errors.New("could not find project root directory (views/ missing)")
			}

			svcs, err := server.BuildServices()
			if err != nil {
				return err
			}
			defer svcs.Close()

			app := server.NewApplication(svcs, basePath)
			svcs.Monitor.Start()

			if host == "" {
				host = env.GetEnv("APP_HOST", "localhost")
			}
			if port == "" {
				port = env.GetEnv("APP_PORT", "4000")
			}
			addr := fmt.Sprintf("%s:%s", host, port)

			serverErr := make(chan error, 1)
			go func() {
				log.Infof("[Server] Listening on %s", addr)
				serverErr <- app.Listen(addr)
			}()

			select {
			case <-cmd.Context().Done():
				log.Info("[Server] Shutting down...")
				if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
					return err
				}
				log.Info("[Server] Stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host to bind (default APP_HOST)")
	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default APP_PORT)")

	return cmd
}

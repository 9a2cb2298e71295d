package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/tasktracker/internal/api"
	"github.com/jon4hz/tasktracker/internal/credential"
	"github.com/jon4hz/tasktracker/internal/engine"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tasktracker server",
	Long:  `Start the tasktracker web server.`,
	Example: `tasktracker serve --config config.yml
tasktracker serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(cmd *cobra.Command, _ []string) {
	cfg, db, err := openDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close() //nolint: errcheck

	credentials := credential.NewStore(db, credential.NewPasswordHasher(cfg.Auth.BcryptCost))

	server, err := api.New(cfg, db, engine.New(db), credentials, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("tasktracker started successfully")
	select {
	case <-c:
	case <-cmd.Context().Done():
	}
	log.Info("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shut down server", "error", err)
	}
}

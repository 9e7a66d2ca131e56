package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/filemanager-agent/filemanager-go/pkg/config"
	"github.com/filemanager-agent/filemanager-go/pkg/server"
	"github.com/filemanager-agent/filemanager-go/pkg/telemetry"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the file manager agent server",
	Long: `Start the HTTP server that answers chat requests, selects file
operations via the configured language model (with a keyword fallback), and
executes them below the sandbox base path.`,
	RunE: runServer,
}

func init() {
	viper.AutomaticEnv()
	// Replace . with _ in env var names (e.g., server.port becomes SERVER_PORT)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	rootCmd.AddCommand(serverCmd)

	// Server-specific flags
	serverCmd.Flags().IntP("port", "p", 5001, "Port to listen on")
	serverCmd.Flags().String("base-path", "", "Sandbox base path (default is the user home directory)")
	serverCmd.Flags().Int("max-results", 100, "Maximum result count per listing query")
	serverCmd.Flags().Bool("llm-enabled", true, "Enable model-assisted tool selection")
	serverCmd.Flags().String("llm-host", "http://localhost:11434", "Ollama host")
	serverCmd.Flags().String("llm-model", "llama3.1:8b", "Model with function calling support")
	serverCmd.Flags().Int("llm-timeout", 10, "Model call timeout in seconds")
	serverCmd.Flags().Bool("enable-telemetry", true, "Enable OpenTelemetry tracing")
	serverCmd.Flags().String("otel-endpoint", "", "OpenTelemetry endpoint (if empty, uses auto-export)")

	// Bind flags to viper
	_ = viper.BindPFlag("server.port", serverCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.base_path", serverCmd.Flags().Lookup("base-path"))
	_ = viper.BindPFlag("server.max_results", serverCmd.Flags().Lookup("max-results"))
	_ = viper.BindPFlag("llm.enabled", serverCmd.Flags().Lookup("llm-enabled"))
	_ = viper.BindPFlag("llm.host", serverCmd.Flags().Lookup("llm-host"))
	_ = viper.BindPFlag("llm.model", serverCmd.Flags().Lookup("llm-model"))
	_ = viper.BindPFlag("llm.timeout_seconds", serverCmd.Flags().Lookup("llm-timeout"))
	_ = viper.BindPFlag("telemetry.enabled", serverCmd.Flags().Lookup("enable-telemetry"))
	_ = viper.BindPFlag("telemetry.endpoint", serverCmd.Flags().Lookup("otel-endpoint"))
}

func runServer(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	logger.Info("Starting file manager agent")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Infof("Base path: %s", cfg.Server.BasePath)
	if cfg.LLM.Enabled {
		logger.Infof("Model: %s at %s", cfg.LLM.Model, cfg.LLM.Host)
	} else {
		logger.Info("Model-assisted selection disabled, using keyword fallback only")
	}

	// Initialize telemetry if enabled
	var cleanup func()
	if cfg.Telemetry.Enabled {
		logger.Info("Initializing OpenTelemetry")
		cleanup, err = telemetry.Initialize(logger)
		if err != nil {
			logger.Warnf("Failed to initialize telemetry: %v", err)
		} else {
			defer cleanup()
		}
	}

	// Create and start server
	srv, err := server.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %d", cfg.Server.Port)
		serverErrors <- srv.Start()
	}()

	// Wait for interrupt signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-interrupt:
		logger.Infof("Received signal %v, shutting down...", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
			return err
		}

		logger.Info("Server stopped gracefully")
		return nil
	}
}

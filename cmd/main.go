// Command process-text runs the ProcessText function locally through the
// Functions Framework, the same way Cloud Functions serves it.
//
// Usage:
//
//	# Serve on :8080 using OPENAI_API_KEY from the environment or .env
//	process-text
//
//	# Custom port and config file
//	process-text --port 9090 --config config.yaml
package main

import (
	"context"
	"fmt"
	"os"

	processtext "process-text-function"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flags struct {
	port       string
	configFile string
}

var rootCmd = &cobra.Command{
	Use:   "process-text",
	Short: "Run the ProcessText function locally",
	Long: `Run the ProcessText function locally.

The function accepts {"text": "..."} and answers with {"reply": "..."}
generated by the configured chat completion service.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	rootCmd.Flags().StringVarP(&flags.port, "port", "p", port, "port to listen on")
	rootCmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "optional YAML config file")
}

func run(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if flags.configFile != "" {
		if err := os.Setenv(processtext.ConfigPathEnv, flags.configFile); err != nil {
			return err
		}
	}
	if os.Getenv("FUNCTION_TARGET") == "" {
		if err := os.Setenv("FUNCTION_TARGET", "ProcessText"); err != nil {
			return err
		}
	}

	// Fail here rather than on the first request.
	if err := processtext.Setup(context.Background(), os.Getenv(processtext.ConfigPathEnv)); err != nil {
		return fmt.Errorf("failed to initialize function: %w", err)
	}

	logrus.Infof("Serving ProcessText on http://localhost:%s", flags.port)
	return funcframework.Start(flags.port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

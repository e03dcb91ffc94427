// Package processtext is the Cloud Functions entry point. It registers the
// ProcessText HTTP function, which sends the request's text to a chat
// completion service and returns the reply.
package processtext

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"process-text-function/config"
	"process-text-function/handler"
	"process-text-function/logging"
	"process-text-function/metrics"
	"process-text-function/models"
	"process-text-function/openai"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// ConfigPathEnv names an optional YAML config file.
const ConfigPathEnv = "PROCESS_TEXT_CONFIG"

var (
	setupOnce sync.Once
	entry     http.HandlerFunc
	setupErr  error
)

func init() {
	functions.HTTP("ProcessText", ProcessText)
}

// Setup builds the function's dependencies once per process. Later calls
// return the first result whatever their arguments.
func Setup(ctx context.Context, configPath string) error {
	setupOnce.Do(func() {
		entry, setupErr = newFunction(ctx, configPath)
	})
	return setupErr
}

// ProcessText is the HTTP entry point registered with the Functions Framework.
func ProcessText(w http.ResponseWriter, r *http.Request) {
	if err := Setup(context.Background(), os.Getenv(ConfigPathEnv)); err != nil {
		logrus.WithError(err).Error("process-text function is not configured")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(models.Failure("An error occurred: " + err.Error()))
		return
	}
	entry(w, r)
}

func newFunction(ctx context.Context, configPath string) (http.HandlerFunc, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	client, err := openai.NewClient(ctx, cfg.Completion)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	app := handler.New(handler.Options{
		Model:          cfg.Completion.Model,
		Completer:      client,
		Logger:         log,
		Metrics:        metrics.New(),
		AllowOrigins:   cfg.CORS.AllowOrigins,
		MetricsPath:    cfg.Metrics.Path,
		RequestTimeout: cfg.RequestTimeout,
	})

	log.WithFields(logrus.Fields{
		"model":     cfg.Completion.Model,
		"base_url":  cfg.Completion.BaseURL,
		"auth_mode": cfg.Completion.AuthMode,
	}).Info("process-text function initialized")

	return adaptor.FiberApp(app), nil
}

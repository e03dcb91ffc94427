package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"process-text-function/metrics"
	"process-text-function/models"
	"process-text-function/openai"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Completer is the outbound completion capability the handler depends on.
type Completer interface {
	Complete(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
}

type Options struct {
	// Model is sent with every completion request.
	Model     string
	Completer Completer
	Logger    *logrus.Logger
	Metrics   *metrics.Metrics

	// AllowOrigins enables CORS for the listed origins ("*" for any).
	AllowOrigins []string
	// MetricsPath serves Prometheus metrics when non-empty.
	MetricsPath string
	// RequestTimeout bounds the completion call; zero means no bound.
	RequestTimeout time.Duration
}

type Handler struct {
	model     string
	completer Completer
	log       *logrus.Logger
	metrics   *metrics.Metrics
	timeout   time.Duration
}

// New builds the Fiber app serving the function. Every method and path
// reaches ProcessText except the metrics path and CORS preflights.
func New(opts Options) *fiber.App {
	h := &Handler{
		model:     opts.Model,
		completer: opts.Completer,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		timeout:   opts.RequestTimeout,
	}
	if h.log == nil {
		h.log = logrus.New()
		h.log.SetOutput(io.Discard)
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          h.errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(h.logRequest)
	app.Use(recover.New())
	if len(opts.AllowOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.AllowOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Content-Type",
		}))
	}
	if opts.MetricsPath != "" {
		app.Get(opts.MetricsPath, adaptor.HTTPHandler(h.metrics.Handler()))
	}
	app.All("/*", h.ProcessText)

	return app
}

// ProcessText answers one invocation with either a reply or an error body.
func (h *Handler) ProcessText(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	reply, err := h.process(ctx, c.Body())
	if err != nil {
		return h.fail(c, asError(err))
	}

	h.metrics.RecordRequest(metrics.OutcomeOK)
	return c.Status(fiber.StatusOK).JSON(models.Reply(reply))
}

func (h *Handler) process(ctx context.Context, body []byte) (string, error) {
	text, err := parseText(body)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := h.completer.Complete(ctx, openai.NewUserRequest(h.model, text))
	h.metrics.ObserveCompletion(time.Since(start))
	if err != nil {
		return "", serviceFailure(err)
	}

	reply, err := openai.FirstContent(resp)
	if err != nil {
		return "", serviceFailure(err)
	}
	return reply, nil
}

// parseText extracts the required "text" string. A body that is not a
// non-empty JSON object, or whose "text" is absent, null or not a string,
// is an invalid request.
func parseText(body []byte) (string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", invalidRequest(err)
	}
	if len(payload) == 0 {
		return "", invalidRequest(errors.New("empty payload"))
	}

	raw, ok := payload["text"]
	if !ok {
		return "", invalidRequest(errors.New("text field missing"))
	}

	var text *string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", invalidRequest(err)
	}
	if text == nil {
		return "", invalidRequest(errors.New("text field is null"))
	}
	return *text, nil
}

func (h *Handler) fail(c *fiber.Ctx, e *Error) error {
	c.Locals(errorLocalKey, e)
	if e.Kind == InvalidRequest {
		h.metrics.RecordRequest(metrics.OutcomeInvalidRequest)
	} else {
		h.metrics.RecordRequest(metrics.OutcomeServiceFailure)
	}
	return c.Status(e.Status()).JSON(models.Failure(e.Message()))
}

// errorHandler turns errors escaping a route, including recovered panics,
// into the same JSON error shape.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		c.Locals(errorLocalKey, err)
		return c.Status(fe.Code).JSON(models.Failure(fe.Message))
	}
	return h.fail(c, serviceFailure(err))
}

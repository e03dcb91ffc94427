package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const errorLocalKey = "processTextError"

// logRequest writes one entry per invocation. Request text and replies are
// never logged.
func (h *Handler) logRequest(c *fiber.Ctx) error {
	start := time.Now()

	if chainErr := c.Next(); chainErr != nil {
		if err := c.App().ErrorHandler(c, chainErr); err != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	entry := h.log.WithFields(logrus.Fields{
		"request_id": c.Locals("requestid"),
		"remote_ip":  c.IP(),
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"latency_ms": time.Since(start).Milliseconds(),
	})

	if err, ok := c.Locals(errorLocalKey).(error); ok {
		entry = entry.WithError(err)
		if status >= fiber.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Warn("request rejected")
		}
		return nil
	}
	entry.Info("request served")
	return nil
}

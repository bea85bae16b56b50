package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	utils "quote-service/shared/utils"

	"github.com/gofiber/fiber/v3"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Register(app *fiber.App) {
	app.Get("/checkhealth", h.CheckHealth)
	app.Get("/api/v1/diagnostic", h.Diagnostic)
}

func (h *HealthHandler) CheckHealth(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Quote service is healthy")
}

type dependencyStatus struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *HealthHandler) Diagnostic(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	statuses := make([]dependencyStatus, 0, len(names))
	for _, name := range names {
		status := dependencyStatus{Name: name, Status: "up"}
		if err := h.checks[name](ctx); err != nil {
			healthy = false
			status.Status = "down"
			status.Error = err.Error()
		}
		statuses = append(statuses, status)
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	return c.Status(code).JSON(utils.CreateSuccessResponse(map[string]any{
		"healthy":      healthy,
		"dependencies": statuses,
	}))
}

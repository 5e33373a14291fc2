package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Checker reports whether a dependency is usable.
type Checker func(ctx context.Context) error

const (
	statusOK   = "ok"
	statusFail = "fail"
)

type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type HealthHandler struct {
	checks  map[string]Checker
	timeout time.Duration
}

// NewHealthHandler creates a handler probing every named check.
func NewHealthHandler(checks map[string]Checker) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 5 * time.Second}
}

// Live reports that the process is running
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusOK,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready checks every dependency; any failure answers 503
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := statusOK
	results := make(map[string]checkResult, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			overall = statusFail
			results[name] = checkResult{Status: statusFail, Message: err.Error()}
			continue
		}
		results[name] = checkResult{Status: statusOK}
	}

	code := http.StatusOK
	if overall == statusFail {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    overall,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    results,
	})
}

package http

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
)

// DigestHandler expone el disparo del digest para el programador externo
// (cron). No pasa por AuthMiddleware: se protege con el secreto compartido.
type DigestHandler struct {
	dispatcher *digest.Dispatcher
	cronSecret string
}

// NewDigestHandler construye el handler.
func NewDigestHandler(dispatcher *digest.Dispatcher, cronSecret string) *DigestHandler {
	return &DigestHandler{dispatcher: dispatcher, cronSecret: cronSecret}
}

// Run godoc
// @Summary      Ejecutar el digest de alertas (invocado por cron)
// @Tags         cron
// @Produce      json
// @Param        Authorization  header  string  true  "Bearer <CRON_SECRET>"
// @Success      200  {object}  dto.DigestResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/cron/alert-digest [get]
func (h *DigestHandler) Run(c *fiber.Ctx) error {
	// La autorización se resuelve antes de tocar datos. Con el secreto sin
	// configurar el endpoint queda cerrado.
	if !h.authorized(c.Get("Authorization")) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	res, err := h.dispatcher.Run(c.UserContext(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.DigestResponse{
		Success:     true,
		Sent:        res.Sent,
		TotalAlerts: res.TotalAlerts,
	})
}

func (h *DigestHandler) authorized(header string) bool {
	if h.cronSecret == "" {
		return false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cronSecret)) == 1
}

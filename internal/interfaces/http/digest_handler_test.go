package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/LabStock-api/internal/interfaces/http"
)

const testCronSecret = "cron-secret-for-tests"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para armar un Dispatcher real detrás del handler
// ──────────────────────────────────────────────────────────────────────────────

type stubSubscribers struct {
	subs  []*entity.User
	calls int
}

func (s *stubSubscribers) ListSubscribers() ([]*entity.User, error) {
	s.calls++
	return s.subs, nil
}

type stubReagents struct{ reagents []*entity.Reagent }

func (s *stubReagents) ListActive() ([]*entity.Reagent, error) { return s.reagents, nil }

type stubLots struct{}

func (s *stubLots) ListExpiring(time.Time) ([]*entity.Lot, error) { return nil, nil }

type stubNotifications struct{ created int }

func (s *stubNotifications) Create(*entity.AlertNotification) error { s.created++; return nil }
func (s *stubNotifications) ExistsSentSince(string, time.Time) (bool, error) {
	return false, nil
}

type stubMail struct{ sent int }

func (s *stubMail) Send(_ context.Context, _ digest.Message) error { s.sent++; return nil }

func buildDigestApp(subs *stubSubscribers, reagents []*entity.Reagent, notifs *stubNotifications, mail *stubMail) *fiber.App {
	d := digest.NewDispatcher(subs, &stubReagents{reagents: reagents}, &stubLots{}, notifs, mail, nil)
	app := fiber.New()
	handler := apphttp.NewDigestHandler(d, testCronSecret)
	app.Get("/api/cron/alert-digest", handler.Run)
	return app
}

func digestRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/cron/alert-digest", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Sin secreto o con secreto incorrecto el endpoint responde 401 con el cuerpo
// {"error":"Unauthorized"} y no toca datos.
func TestDigestEndpoint_SinSecreto_Retorna401SinEfectos(t *testing.T) {
	subs := &stubSubscribers{}
	app := buildDigestApp(subs, nil, &stubNotifications{}, &stubMail{})

	for _, header := range []string{"", "Bearer secreto-incorrecto", "Basic " + testCronSecret, testCronSecret} {
		resp := digestRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Unauthorized", body["error"])
		resp.Body.Close()
	}
	assert.Equal(t, 0, subs.calls, "una petición no autorizada no debe consultar datos")
}

// Con el secreto vacío en configuración el endpoint queda cerrado para todos.
func TestDigestEndpoint_SecretoNoConfigurado_Retorna401(t *testing.T) {
	subs := &stubSubscribers{}
	d := digest.NewDispatcher(subs, &stubReagents{}, &stubLots{}, &stubNotifications{}, &stubMail{}, nil)
	app := fiber.New()
	app.Get("/api/cron/alert-digest", apphttp.NewDigestHandler(d, "").Run)

	resp := digestRequest(t, app, "Bearer ")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, subs.calls)
}

func TestDigestEndpoint_Autorizado_EjecutaYReportaConteos(t *testing.T) {
	subs := &stubSubscribers{subs: []*entity.User{
		{ID: "u1", Email: "a@lab.local", Name: "Ana", Status: "active", ReceiveAlerts: true},
	}}
	reagents := []*entity.Reagent{
		{ID: "r1", Name: "Etanol", TotalQuantity: 0, MinimumStock: 2, Active: true},
	}
	notifs := &stubNotifications{}
	mail := &stubMail{}
	app := buildDigestApp(subs, reagents, notifs, mail)

	resp := digestRequest(t, app, "Bearer "+testCronSecret)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success     bool `json:"success"`
		Sent        int  `json:"sent"`
		TotalAlerts int  `json:"totalAlerts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Sent)
	assert.Equal(t, 1, body.TotalAlerts)
	assert.Equal(t, 1, mail.sent)
	assert.Equal(t, 1, notifs.created)
}

// Sin alertas el endpoint sigue respondiendo 200 con conteos a cero.
func TestDigestEndpoint_SinAlertas_Retorna200ConCeros(t *testing.T) {
	subs := &stubSubscribers{subs: []*entity.User{
		{ID: "u1", Email: "a@lab.local", Name: "Ana", Status: "active", ReceiveAlerts: true},
	}}
	mail := &stubMail{}
	app := buildDigestApp(subs, nil, &stubNotifications{}, mail)

	resp := digestRequest(t, app, "Bearer "+testCronSecret)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(0), body["sent"])
	assert.Equal(t, float64(0), body["totalAlerts"])
	assert.Equal(t, 0, mail.sent)
}

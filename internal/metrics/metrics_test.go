package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_SweepFinished(t *testing.T) {
	r := NewRecorder()

	r.SweepFinished(3, 0.2, nil)
	r.SweepFinished(0, 0.1, nil)
	r.SweepFinished(0, 0.1, errors.New("db down"))

	assert.Equal(t, float64(3), testutil.ToFloat64(r.SweepExpired))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.SweepRuns.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.SweepRuns.WithLabelValues("error")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.RenewalUpdated("autofill")
	r.StatusWritten("expired")

	app := fiber.New()
	app.Get("/metrics", r.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `crm_renewal_updates_total{mode="autofill"} 1`))
	assert.True(t, strings.Contains(text, `crm_subscription_status_writes_total{status="expired"} 1`))
}

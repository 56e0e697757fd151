package cards

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"pocket-cards/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) *fiber.App {
	store := setupStore(t)
	_, _, err := store.SaveRun(context.Background(), sampleRun())
	require.NoError(t, err)

	app := fiber.New()
	NewHandler(NewService(store, zap.NewNop())).RegisterRoutes(app)
	return app
}

func TestHandleListSet(t *testing.T) {
	app := setupTestApp(t)

	t.Run("Saved set", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/cards/en/A3b", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var records []reconcile.CardRecord
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
		require.Len(t, records, 3)
		assert.Equal(t, "PK_10_001", records[0].CanonicalID)
	})

	t.Run("Unknown set", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/cards/en/Z9", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Unsupported language", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/cards/de/A1", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})
}

func TestHandleEligible(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cards/en/eligible", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string][]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"PK_10_080"}, body["A3b"])
}

func TestHandleSchema(t *testing.T) {
	app := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cards/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report SchemaReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.OK)
	assert.Equal(t, "cards", report.Table)
}

func TestFeature(t *testing.T) {
	disabled := NewFeature(nil)
	assert.Equal(t, "cards", disabled.Name())
	assert.False(t, disabled.IsEnabled())

	enabled := NewFeature(NewService(setupStore(t), nil))
	assert.True(t, enabled.IsEnabled())

	app := fiber.New()
	require.NoError(t, enabled.Load(app))
	resp, err := app.Test(httptest.NewRequest("GET", "/cards/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestService_RejectsUnknownLanguage(t *testing.T) {
	svc := NewService(setupStore(t), nil)

	_, err := svc.ListSet(context.Background(), "jp", "A1")
	assert.ErrorContains(t, err, "unsupported language")

	_, err = svc.Eligible(context.Background(), "jp")
	assert.ErrorContains(t, err, "unsupported language")
}

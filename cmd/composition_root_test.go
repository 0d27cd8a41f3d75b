package cmd_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos/cmd"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() cmd.Config {
	return cmd.Config{
		StoreDriver:        cmd.StoreDriverMemory,
		TaxRate:            "0.16",
		MaxLocations:       14,
		AllowNegativeStock: true,
		LowStockThreshold:  5,
		PrinterType:        "none",
		PrinterWidth:       42,
		AdminPassword:      "secret",
	}
}

func TestCompositionRoot_MemoryStore(t *testing.T) {
	app, err := cmd.NewCompositionRoot(t.Context(), memoryConfig(), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer app.Close()

	server, err := app.CreateHTTPServer(t.Context())
	require.NoError(t, err)
	e := echo.New()
	server.Register(e)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations?type=barra", nil)
	req.SetBasicAuth("admin", "secret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	jm, err := app.CreateJobManager(t.Context())
	require.NoError(t, err)
	require.NoError(t, jm.StartAll())
	jm.StopAll()
}

func TestCompositionRoot_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*cmd.Config)
	}{
		{"tax rate", func(c *cmd.Config) { c.TaxRate = "abc" }},
		{"store driver", func(c *cmd.Config) { c.StoreDriver = "sqlite" }},
		{"printer type", func(c *cmd.Config) { c.PrinterType = "bluetooth" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := memoryConfig()
			tt.modify(&cfg)

			_, err := cmd.NewCompositionRoot(t.Context(), cfg, slog.New(slog.DiscardHandler))

			require.Error(t, err)
		})
	}
}

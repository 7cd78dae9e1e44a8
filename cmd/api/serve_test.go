package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-inventario-api/internal/infrastructure/memory"
	httpRouter "github.com/jhoicas/tienda-inventario-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-inventario-api/pkg/config"
	"github.com/jhoicas/tienda-inventario-api/pkg/logger"
)

func TestOpenStorage_Memoria(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverMemory, TxTimeout: time.Second}}

	store, closeStore, err := openStorage(context.Background(), cfg, true, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	_, ok := store.(*memory.Store)
	assert.True(t, ok)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestBuildRouterDeps_SirveHealth(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Name: "tienda"},
		DB:  config.DBConfig{Driver: config.DriverMemory, TxTimeout: time.Second},
	}
	store, closeStore, err := openStorage(context.Background(), cfg, false, zerolog.Nop())
	require.NoError(t, err)
	defer closeStore()

	app := fiber.New(fiber.Config{ErrorHandler: httpRouter.ErrorHandler})
	httpRouter.Router(app, buildRouterDeps(store, cfg, logger.New(logger.Config{Level: "error"})))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

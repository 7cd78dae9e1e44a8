package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jhoicas/tienda-inventario-api/pkg/config"
)

func TestSetupTracing_SinEndpointNoInstalaProvider(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown, err := SetupTracing(context.Background(), config.OtelConfig{})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	assert.Equal(t, before, otel.GetTracerProvider())
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupTracing_ConEndpointRegistraProviderGlobal(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown, err := SetupTracing(context.Background(), config.OtelConfig{
		Endpoint:    "localhost:4318",
		Insecure:    true,
		ServiceName: "tienda-test",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx))
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions(config.OtelConfig{Endpoint: "collector:4318"}), 1)
	assert.Len(t, exporterOptions(config.OtelConfig{Endpoint: "http://collector:4318", Insecure: true}), 2)
}

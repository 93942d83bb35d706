package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aidlink/aidlink/internal/shared/config"
)

func TestInit_DisabledIsNoop(t *testing.T) {
	shutdown, err := Init(&config.TracingConfig{Enabled: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_StdoutExporterWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := Init(&config.TracingConfig{Enabled: true, ServiceName: "aidlink-test"}, &buf)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), "distribution.calculate")
	EndSpan(span, nil)
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "distribution.calculate")
}

func TestEndSpan_RecordsStatus(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	shutdown, err := InitWithExporter("aidlink-test", exporter)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, ok := StartSpan(context.Background(), "ok", attribute.String("item_type", "rice"))
	EndSpan(ok, nil)
	_, failed := StartSpan(context.Background(), "failed")
	EndSpan(failed, errors.New("boom"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("item_type", "rice"))
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "boom", spans[1].Status.Description)
}

func TestEndSpan_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() { EndSpan(nil, errors.New("x")) })
}

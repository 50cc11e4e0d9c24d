package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupWithoutEndpoint(t *testing.T) {
	t.Setenv(endpointEnv, "")

	if Enabled() {
		t.Fatal("Enabled() should be false without an endpoint")
	}

	shutdown, err := Setup(context.Background())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
}

func TestTracerRecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Tracer("test").Start(context.Background(), "unit.span")
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if ended[0].Name() != "unit.span" {
		t.Errorf("span name = %q, want unit.span", ended[0].Name())
	}
	if got := ended[0].InstrumentationScope().Name; got != "overworld/test" {
		t.Errorf("tracer name = %q, want overworld/test", got)
	}
}

func TestFail(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer("test").Start(context.Background(), "failing")
	Fail(span, errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected 1 ended span, got %d", len(ended))
	}
	if st := ended[0].Status(); st.Code != codes.Error || st.Description != "boom" {
		t.Errorf("status = %+v, want error boom", st)
	}
	if len(ended[0].Events()) != 1 || ended[0].Events()[0].Name != "exception" {
		t.Errorf("events = %+v, want one exception event", ended[0].Events())
	}
}

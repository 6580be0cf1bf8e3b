package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/journey/internal/constants"
)

var (
	Tracer = otel.Tracer(
		constants.APP_CART_SERVICE,
		trace.WithInstrumentationAttributes(semconv.ServiceName(constants.APP_CART_SERVICE)),
	)
	Meter = otel.Meter(
		constants.APP_CART_SERVICE,
		metric.WithInstrumentationAttributes(semconv.ServiceName(constants.APP_CART_SERVICE)),
	)
)

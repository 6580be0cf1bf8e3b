package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/journey/internal/constants"
)

var Tracer = otel.Tracer(constants.APP_MAIN_JOURNEY)

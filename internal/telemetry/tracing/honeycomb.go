package tracing

import (
	"fmt"

	_ "github.com/honeycombio/honeycomb-opentelemetry-go"
	"github.com/honeycombio/otel-config-go/otelconfig"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

// HoneycombSetup configures the OpenTelemetry SDK to export to honeycomb.
// It reads HONEYCOMB_API_KEY and the OTEL_* env vars. The returned func
// flushes and stops the exporter and is a no-op when tracing is disabled.
func HoneycombSetup(enabled bool, serviceName string) (func(), error) {
	if !enabled {
		log.Debugln("honeycomb tracing not enabled")
		return func() {}, nil
	}

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(serviceName),
	)
	if err != nil {
		return nil, fmt.Errorf("configure open telemetry: %w", err)
	}

	GlobalTracer = otel.Tracer(serviceName)
	log.Debugf("honeycomb tracing enabled for service [%s]", serviceName)

	return otelShutdown, nil
}

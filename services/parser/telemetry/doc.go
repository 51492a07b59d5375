// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry sets up OpenTelemetry tracing and metrics for sqlfront.
//
// The parser packages use the OTel API directly (otel.Tracer, otel.Meter)
// and never see an exporter. Init installs the SDK providers that give those
// calls somewhere to go; without Init every span and instrument is a no-op.
//
// # Trace Exporters
//
//   - "otlp": OTLP over gRPC to OTLPEndpoint
//   - "stdout": pretty-printed JSON to Config.Writer
//   - "none": tracing disabled
//
// # Metric Exporters
//
//   - "prometheus": OTel instruments are exposed through the default
//     Prometheus registry next to the promauto counters
//   - "stdout": periodic pretty-printed JSON to Config.Writer
//   - "none": metrics disabled
//
// # Usage
//
//	shutdown, err := telemetry.Init(ctx, cfg)
//	if err != nil {
//	    return fmt.Errorf("init telemetry: %w", err)
//	}
//	defer shutdown(context.Background())
//
// # Thread Safety
//
// Init should be called once at startup. Everything else is safe for
// concurrent use.
package telemetry

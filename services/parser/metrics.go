// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package parser

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for parse operations.
var (
	tracer = otel.Tracer("sqlfront.parser")
	meter  = otel.Meter("sqlfront.parser")
)

// OTel instruments, created on first use.
var (
	parseLatency    metric.Float64Histogram
	parseTotal      metric.Int64Counter
	parseInputBytes metric.Int64Histogram
	batchSize       metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

var (
	// parseOutcomes counts finished parses.
	// Labels: dialect, kind (statement kind, "none" on failure),
	// error_class (none, lexical, syntax, semantic, input, canceled, internal)
	parseOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sqlfront",
		Subsystem: "parser",
		Name:      "parses_total",
		Help:      "Total statements parsed by outcome",
	}, []string{"dialect", "kind", "error_class"})

	// cacheLookups counts statement cache lookups.
	// Labels: dialect, result (hit, miss)
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sqlfront",
		Subsystem: "parser",
		Name:      "cache_lookups_total",
		Help:      "Total statement cache lookups",
	}, []string{"dialect", "result"})
)

// initMetrics initializes the OTel instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		parseLatency, err = meter.Float64Histogram(
			"sqlfront_parse_duration_seconds",
			metric.WithDescription("Duration of single statement parses"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseTotal, err = meter.Int64Counter(
			"sqlfront_parse_total",
			metric.WithDescription("Total number of parse operations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		parseInputBytes, err = meter.Int64Histogram(
			"sqlfront_parse_input_bytes",
			metric.WithDescription("Size of parsed input"),
			metric.WithUnit("By"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		batchSize, err = meter.Int64Histogram(
			"sqlfront_batch_statements",
			metric.WithDescription("Number of statements per batch"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startParseSpan creates a span for one parse.
func startParseSpan(ctx context.Context, name, dialect string, size int) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("sqlfront.dialect", dialect),
			attribute.Int("sqlfront.input_bytes", size),
		),
	)
}

// setParseSpanResult sets the result attributes on a parse span.
func setParseSpanResult(span trace.Span, kind string, err error) {
	span.SetAttributes(
		attribute.String("sqlfront.statement_kind", kind),
		attribute.String("sqlfront.error_class", errorClass(err)),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordParseMetrics records metrics for one finished parse.
func recordParseMetrics(ctx context.Context, dialect, kind string, size int, duration time.Duration, err error) {
	class := errorClass(err)
	parseOutcomes.WithLabelValues(dialect, kind, class).Inc()

	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("dialect", dialect),
		attribute.String("error_class", class),
	)
	parseLatency.Record(ctx, duration.Seconds(), attrs)
	parseTotal.Add(ctx, 1, attrs)
	parseInputBytes.Record(ctx, int64(size))
}

// recordBatchMetrics records the statement count of a split batch.
func recordBatchMetrics(ctx context.Context, dialect string, statements int) {
	if initMetrics() != nil {
		return
	}
	batchSize.Record(ctx, int64(statements), metric.WithAttributes(
		attribute.String("dialect", dialect),
	))
}

func recordCacheLookup(dialect string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(dialect, result).Inc()
}

package observability

import (
	"context"
	"time"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const defaultServiceName = "zoneworld"

// ShutdownFunc останавливает экспорт и сбрасывает буферы спанов
type ShutdownFunc func(context.Context) error

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// Пустой OTLPEndpoint означает адрес по умолчанию (localhost:4318).
// Если телеметрия выключена, возвращается пустая функция shutdown, а глобальный
// провайдер остаётся no-op: спаны генерации чанков ничего не стоят.
func InitTelemetry(ctx context.Context, cfg config.ServerConfig) (ShutdownFunc, error) {
	if !cfg.Telemetry {
		return func(context.Context) error { return nil }, nil
	}

	var opts []otlptracehttp.Option
	if cfg.OTLPEndpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint), otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	tp, err := newTracerProvider(ctx, cfg.ServiceName, trace.WithBatcher(exp))
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	logging.Info("📡 OpenTelemetry инициализирован (endpoint=%q, service=%s)", cfg.OTLPEndpoint, serviceName(cfg.ServiceName))

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}, nil
}

// newTracerProvider собирает провайдер с ресурсом сервиса и переданными опциями
func newTracerProvider(ctx context.Context, name string, opts ...trace.TracerProviderOption) (*trace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName(name))),
	)
	if err != nil {
		return nil, err
	}
	opts = append(opts, trace.WithResource(res))
	return trace.NewTracerProvider(opts...), nil
}

func serviceName(name string) string {
	if name == "" {
		return defaultServiceName
	}
	return name
}

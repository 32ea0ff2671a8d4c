package tracing

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitGlobalTracer installs a jaeger tracer configured from the JAEGER_*
// environment. When disabled the global no-op tracer stays in place.
func InitGlobalTracer(serviceName string, enabled bool) (io.Closer, error) {
	if !enabled {
		return nopCloser{}, nil
	}
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}
	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	logrus.WithField("serviceName", cfg.ServiceName).Info("jaeger tracer installed")
	return closer, nil
}

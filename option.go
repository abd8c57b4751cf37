package procgraph

import (
	"fmt"

	"github.com/viant/afs/storage"
	"github.com/viant/procgraph/service/dao"
	"github.com/viant/procgraph/service/dao/deployment"
	"github.com/viant/procgraph/service/meta"
	"github.com/viant/procgraph/tracing"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures Service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger shared by the compiler and deployment service
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the definition base URL, overriding definition.baseURL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithRepository sets the deployment repository, overriding repository.url
func WithRepository(repository dao.Service[deployment.Key, deployment.Deployment]) Option {
	return func(s *Service) {
		s.repository = repository
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; the first successful initialisation wins. New
// fails when the exporter cannot be installed.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.tracingErr = fmt.Errorf("failed to init tracing: %w", err)
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom exporter
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.tracingErr = fmt.Errorf("failed to init tracing: %w", err)
		}
	}
}

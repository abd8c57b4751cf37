package deployment

import (
	"github.com/viant/procgraph/compiler"
	"github.com/viant/procgraph/service/dao"
	ddeployment "github.com/viant/procgraph/service/dao/deployment"
	"go.uber.org/zap"
)

type Option func(s *Service)

// WithCompiler sets the compiler
func WithCompiler(compiler *compiler.Compiler) Option {
	return func(s *Service) {
		s.compiler = compiler
	}
}

// WithRepository sets the deployment repository
func WithRepository(repository dao.Service[ddeployment.Key, ddeployment.Deployment]) Option {
	return func(s *Service) {
		s.repository = repository
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

package procgraph

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/procgraph/compiler"
	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/processgraph"
	"github.com/viant/procgraph/service/dao"
	"github.com/viant/procgraph/service/dao/definition"
	ddeployment "github.com/viant/procgraph/service/dao/deployment"
	"github.com/viant/procgraph/service/dao/deployment/fs"
	"github.com/viant/procgraph/service/dao/deployment/memory"
	"github.com/viant/procgraph/service/deployment"
	"github.com/viant/procgraph/service/meta"
	"go.uber.org/zap"
)

type Service struct {
	config        *Config
	logger        *zap.Logger
	metaService   *meta.Service
	metaBaseURL   string
	metaFsOptions []storage.Option
	repository    dao.Service[ddeployment.Key, ddeployment.Deployment]
	compiler      *compiler.Compiler
	definitions   *definition.Service
	deployments   *deployment.Service
	tracingErr    error
}

// Compiler returns the process compiler
func (s *Service) Compiler() *compiler.Compiler {
	return s.compiler
}

// Definitions returns the YAML definition loader
func (s *Service) Definitions() *definition.Service {
	return s.definitions
}

// Deployments returns the deployment service
func (s *Service) Deployments() *deployment.Service {
	return s.deployments
}

// LoadProcess loads a process definition relative to the definition base URL
func (s *Service) LoadProcess(ctx context.Context, URL string) (*model.Process, error) {
	return s.definitions.Load(ctx, URL)
}

// Compile loads and compiles a process definition
func (s *Service) Compile(ctx context.Context, URL string, numericID uint64) (*processgraph.ProcessGraph, error) {
	process, err := s.LoadProcess(ctx, URL)
	if err != nil {
		return nil, err
	}
	return s.compiler.Compile(ctx, process, numericID)
}

// Deploy loads a process definition and deploys it as a new version
func (s *Service) Deploy(ctx context.Context, URL string) (*ddeployment.Deployment, error) {
	process, err := s.LoadProcess(ctx, URL)
	if err != nil {
		return nil, err
	}
	return s.deployments.Deploy(ctx, process)
}

func (s *Service) init(ctx context.Context) error {
	if s.tracingErr != nil {
		return s.tracingErr
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metaService == nil {
		baseURL := s.metaBaseURL
		if baseURL == "" {
			baseURL = s.config.Definition.BaseURL
		}
		s.metaService = meta.New(afs.New(), baseURL, s.metaFsOptions...)
	}
	if s.repository == nil {
		if URL := s.config.Repository.URL; URL != "" {
			repository, err := fs.New(ctx, URL, fs.WithLogger(s.logger))
			if err != nil {
				return fmt.Errorf("failed to create deployment repository: %w", err)
			}
			s.repository = repository
		} else {
			s.repository = memory.New()
		}
	}
	s.compiler = compiler.New(
		compiler.WithLogger(s.logger),
		compiler.WithScratchSize(s.config.Compiler.ScratchSize),
		compiler.WithMaxDescriptorSize(s.config.Compiler.MaxDescriptorSize))
	s.definitions = definition.New(definition.WithMetaService(s.metaService))
	s.deployments = deployment.New(
		deployment.WithCompiler(s.compiler),
		deployment.WithRepository(s.repository),
		deployment.WithLogger(s.logger))
	return nil
}

// New creates a service; with no options it keeps deployments in memory and
// resolves definitions relative to the working directory
func New(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	for _, option := range options {
		option(ret)
	}
	if err := ret.init(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/procgraph/service/dao"
	"github.com/viant/procgraph/service/dao/criteria"
	"github.com/viant/procgraph/service/dao/deployment"
	"go.uber.org/zap"
)

// Service stores deployments as JSON records at <baseURL>/<processKey>/<version>.json
type Service struct {
	baseURL string
	fs      afs.Service
	logger  *zap.Logger
	mu      sync.RWMutex
}

var _ dao.Service[deployment.Key, deployment.Deployment] = (*Service)(nil)

type Option func(s *Service)

// WithLogger sets the logger used to report unreadable records
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Save persists a deployment
func (s *Service) Save(ctx context.Context, d *deployment.Deployment) error {
	if d == nil {
		return dao.ErrNilEntity
	}
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal deployment %v: %w", d.Key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.recordURL(d.Key)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save deployment to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a deployment by key
func (s *Service) Load(ctx context.Context, key deployment.Key) (*deployment.Deployment, error) {
	if key.Version < 1 {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.recordURL(key)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check if deployment %v exists: %w", key, err)
	}
	if !exists {
		return nil, fmt.Errorf("deployment %v: %w", key, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment %v: %w", key, err)
	}
	return decode(data)
}

// Delete removes a deployment
func (s *Service) Delete(ctx context.Context, key deployment.Key) error {
	if key.Version < 1 {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.recordURL(key)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check if deployment %v exists: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("deployment %v: %w", key, dao.ErrNotFound)
	}
	if err = s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete deployment %v: %w", key, err)
	}
	return nil
}

// List returns deployments matching parameters; unreadable records are logged and skipped
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*deployment.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.baseURL, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	var result []*deployment.Deployment
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			s.logger.Warn("failed to read deployment", zap.String("url", object.URL()), zap.Error(err))
			continue
		}
		d, err := decode(data)
		if err != nil {
			s.logger.Warn("failed to decode deployment", zap.String("url", object.URL()), zap.Error(err))
			continue
		}
		if !criteria.FilterByProcessID(d.ProcessID, parameters) {
			continue
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *Service) recordURL(key deployment.Key) string {
	return url.Join(s.baseURL, strconv.FormatUint(key.ProcessKey, 10), strconv.Itoa(key.Version)+".json")
}

func decode(data []byte) (*deployment.Deployment, error) {
	var ret deployment.Deployment
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deployment: %w", err)
	}
	return &ret, nil
}

// New creates a deployment repository rooted at baseURL, creating it if needed
func New(ctx context.Context, baseURL string, opts ...Option) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	ret := &Service{
		baseURL: url.Normalize(baseURL, file.Scheme),
		fs:      afs.New(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	exists, _ := ret.fs.Exists(ctx, ret.baseURL)
	if !exists {
		if err := ret.fs.Create(ctx, ret.baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %v: %w", ret.baseURL, err)
		}
	}
	return ret, nil
}

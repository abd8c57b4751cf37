// Package deployment versions compiled process graphs.
//
// Each process string id owns a stable numeric process key; every deploy of a
// changed definition adds version latest+1 under that key. Deploying a
// definition that compiles to the bytes of the latest version returns that
// version instead of adding a new one.
package deployment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/procgraph/compiler"
	"github.com/viant/procgraph/internal/clock"
	"github.com/viant/procgraph/internal/idgen"
	"github.com/viant/procgraph/model"
	"github.com/viant/procgraph/processgraph"
	"github.com/viant/procgraph/service/dao"
	ddeployment "github.com/viant/procgraph/service/dao/deployment"
	"github.com/viant/procgraph/service/dao/deployment/memory"
	"github.com/viant/procgraph/tracing"
	"go.uber.org/zap"
)

// ErrChecksumMismatch is returned when a stored graph does not match its checksum
var ErrChecksumMismatch = errors.New("deployment: checksum mismatch")

type Service struct {
	compiler   *compiler.Compiler
	repository dao.Service[ddeployment.Key, ddeployment.Deployment]
	logger     *zap.Logger
	// mu serialises key and version assignment
	mu sync.Mutex
}

// Deploy compiles the process and stores it as a new version
func (s *Service) Deploy(ctx context.Context, process *model.Process) (ret *ddeployment.Deployment, err error) {
	if process == nil {
		return nil, dao.ErrNilEntity
	}
	ctx, span := tracing.StartSpan(ctx, "procgraph.deploy", "INTERNAL")
	span.WithAttributes(map[string]string{"process.id": process.ID})
	defer func() { tracing.EndSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}
	processKey, latest := assignKey(all, process.ID)
	compiled, err := s.compiler.Compile(ctx, process, processKey)
	if err != nil {
		return nil, fmt.Errorf("failed to compile process %q: %w", process.ID, err)
	}
	encoded := compiled.Bytes()
	checksum := ddeployment.Checksum(encoded)
	if latest != nil && latest.Checksum == checksum {
		s.logger.Info("process unchanged", zap.String("process", process.ID), zap.Stringer("key", latest.Key))
		return latest, nil
	}
	version := 1
	if latest != nil {
		version = latest.Key.Version + 1
	}
	ret = &ddeployment.Deployment{
		ID:        idgen.New(),
		Key:       ddeployment.Key{ProcessKey: processKey, Version: version},
		ProcessID: process.ID,
		Checksum:  checksum,
		Graph:     encoded,
		Created:   clock.Now(),
	}
	if err = s.repository.Save(ctx, ret); err != nil {
		return nil, fmt.Errorf("failed to save deployment %v: %w", ret.Key, err)
	}
	s.logger.Info("deployed process",
		zap.String("process", process.ID),
		zap.Stringer("key", ret.Key),
		zap.Int("nodes", compiled.NodeCount()))
	return ret, nil
}

// assignKey returns the process key of processID, or the next free key, and
// the latest deployment of processID if any
func assignKey(deployments []*ddeployment.Deployment, processID string) (uint64, *ddeployment.Deployment) {
	var maxKey uint64
	var latest *ddeployment.Deployment
	for _, candidate := range deployments {
		if candidate.Key.ProcessKey > maxKey {
			maxKey = candidate.Key.ProcessKey
		}
		if candidate.ProcessID != processID {
			continue
		}
		if latest == nil || candidate.Key.Version > latest.Key.Version {
			latest = candidate
		}
	}
	if latest != nil {
		return latest.Key.ProcessKey, latest
	}
	return maxKey + 1, nil
}

// Versions returns deployments of processID ordered by version
func (s *Service) Versions(ctx context.Context, processID string) ([]*ddeployment.Deployment, error) {
	ret, err := s.repository.List(ctx, dao.WithProcessID(processID))
	if err != nil {
		return nil, err
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].Key.Version < ret[j].Key.Version
	})
	return ret, nil
}

// Latest returns the most recent deployment of processID or dao.ErrNotFound
func (s *Service) Latest(ctx context.Context, processID string) (*ddeployment.Deployment, error) {
	versions, err := s.Versions(ctx, processID)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("process %q: %w", processID, dao.ErrNotFound)
	}
	return versions[len(versions)-1], nil
}

// Graph loads a deployment and wraps its encoded graph
func (s *Service) Graph(ctx context.Context, key ddeployment.Key) (*processgraph.ProcessGraph, error) {
	d, err := s.repository.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if ddeployment.Checksum(d.Graph) != d.Checksum {
		return nil, fmt.Errorf("deployment %v: %w", key, ErrChecksumMismatch)
	}
	return processgraph.Wrap(d.Graph)
}

// Verify recompiles process and reports whether the result is byte-identical
// to the stored deployment
func (s *Service) Verify(ctx context.Context, key ddeployment.Key, process *model.Process) (bool, error) {
	if process == nil {
		return false, dao.ErrNilEntity
	}
	d, err := s.repository.Load(ctx, key)
	if err != nil {
		return false, err
	}
	compiled, err := s.compiler.Compile(ctx, process, key.ProcessKey)
	if err != nil {
		return false, fmt.Errorf("failed to compile process %q: %w", process.ID, err)
	}
	if !bytes.Equal(compiled.Bytes(), d.Graph) {
		s.logger.Warn("deployment differs from definition",
			zap.Stringer("key", key),
			zap.String("process", process.ID),
			zap.String("checksum", d.Checksum))
		return false, nil
	}
	return true, nil
}

func New(opts ...Option) *Service {
	ret := &Service{
		compiler:   compiler.New(),
		repository: memory.New(),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

package memory

import (
	"context"

	"github.com/viant/procgraph/service/dao"
	"github.com/viant/procgraph/service/dao/criteria"
	"github.com/viant/procgraph/service/dao/deployment"
	"github.com/viant/procgraph/service/dao/store"
)

// Service keeps deployments in memory
type Service struct {
	*store.MemoryStore[deployment.Key, deployment.Deployment]
}

var _ dao.Service[deployment.Key, deployment.Deployment] = (*Service)(nil)

// Save validates and stores a deployment
func (s *Service) Save(ctx context.Context, d *deployment.Deployment) error {
	if d == nil {
		return dao.ErrNilEntity
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return s.MemoryStore.Save(ctx, d)
}

func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[deployment.Key, deployment.Deployment](func(d *deployment.Deployment) deployment.Key {
			return d.Key
		}).WithFilter(func(d *deployment.Deployment, parameters []*dao.Parameter) bool {
			return criteria.FilterByProcessID(d.ProcessID, parameters)
		}),
	}
}

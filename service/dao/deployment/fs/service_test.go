package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/procgraph/service/dao"
	"github.com/viant/procgraph/service/dao/deployment"
)

func newDeployment(processKey uint64, version int, processID string) *deployment.Deployment {
	graph := []byte{byte(processKey), byte(version), 0xff}
	return &deployment.Deployment{
		ID:        processID + "-id",
		Key:       deployment.Key{ProcessKey: processKey, Version: version},
		ProcessID: processID,
		Checksum:  deployment.Checksum(graph),
		Graph:     graph,
		Created:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()
	baseDir := filepath.Join(t.TempDir(), "deployments")
	service, err := New(ctx, baseDir)
	require.NoError(t, err)

	records := []*deployment.Deployment{
		newDeployment(1, 1, "order"),
		newDeployment(1, 2, "order"),
		newDeployment(2, 1, "invoice"),
	}
	for _, record := range records {
		require.NoError(t, service.Save(ctx, record))
	}
	_, err = os.Stat(filepath.Join(baseDir, "1", "2.json"))
	require.NoError(t, err)

	loaded, err := service.Load(ctx, deployment.Key{ProcessKey: 1, Version: 2})
	require.NoError(t, err)
	assert.Equal(t, records[1], loaded)

	_, err = service.Load(ctx, deployment.Key{ProcessKey: 3, Version: 1})
	assert.True(t, errors.Is(err, dao.ErrNotFound))
	_, err = service.Load(ctx, deployment.Key{ProcessKey: 3})
	assert.True(t, errors.Is(err, dao.ErrInvalidID))

	orders, err := service.List(ctx, dao.WithProcessID("order"))
	require.NoError(t, err)
	var versions []int
	for _, d := range orders {
		versions = append(versions, d.Key.Version)
	}
	sort.Ints(versions)
	assert.Equal(t, []int{1, 2}, versions)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, service.Delete(ctx, deployment.Key{ProcessKey: 2, Version: 1}))
	assert.True(t, errors.Is(service.Delete(ctx, deployment.Key{ProcessKey: 2, Version: 1}), dao.ErrNotFound))

	assert.True(t, errors.Is(service.Save(ctx, nil), dao.ErrNilEntity))
	assert.Error(t, service.Save(ctx, &deployment.Deployment{ProcessID: "x", Key: deployment.Key{Version: 1}}))
}

func TestNew_EmptyURL(t *testing.T) {
	_, err := New(context.Background(), "")
	assert.Error(t, err)
}

package materials

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestionpet/gestionpet/internal/platform/cache"
)

func TestCachedMaterialList(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mock := newMockRepository()
	svc := NewService(NewCachedRepository(mock, cache.NewStore(client, time.Minute, nil), nil))
	ctx := context.Background()

	created, err := svc.Create(ctx, Material{Name: "Bottle"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
	assert.Equal(t, 1, mock.findAllCalls)

	_, err = svc.Update(ctx, created.ID, Material{Name: "Bottle 1L"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bottle 1L", list[0].Name)
	assert.Equal(t, 2, mock.findAllCalls)
}

func TestNewCachedRepositoryWithoutStore(t *testing.T) {
	mock := newMockRepository()
	assert.Same(t, Repository(mock), NewCachedRepository(mock, nil, nil))
}

func TestCachedMaterialListStoreFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	mock := newMockRepository()
	mock.failWith = errors.New("relation \"materiales\" does not exist")
	repo := NewCachedRepository(mock, cache.NewStore(client, time.Minute, nil), nil)

	_, err := repo.FindAll(context.Background())
	require.ErrorIs(t, err, mock.failWith)
	assert.Equal(t, 1, mock.findAllCalls)
	assert.False(t, mr.Exists("gestionpet:materials:all:1"))
}

package materials

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gestionpet/gestionpet/internal/platform/cache"
)

const cacheNamespace = "materials"

type cachedRepository struct {
	Repository
	cache  *cache.Store
	logger *slog.Logger
}

// NewCachedRepository wraps repo with the list cache. A nil store returns repo
// unchanged.
func NewCachedRepository(repo Repository, store *cache.Store, logger *slog.Logger) Repository {
	if store == nil {
		return repo
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedRepository{Repository: repo, cache: store, logger: logger}
}

func (r *cachedRepository) FindAll(ctx context.Context) ([]Material, error) {
	var materials []Material
	err := r.cache.FetchJSON(ctx, cacheNamespace, &materials, func(ctx context.Context) (any, error) {
		return r.Repository.FindAll(ctx)
	})
	if err == nil {
		return materials, nil
	}
	var loadErr *cache.LoadError
	if errors.As(err, &loadErr) {
		return nil, loadErr.Err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	r.logger.Warn("material cache read failed", slog.Any("error", err))
	return r.Repository.FindAll(ctx)
}

func (r *cachedRepository) Save(ctx context.Context, material Material) (Material, error) {
	saved, err := r.Repository.Save(ctx, material)
	if err != nil {
		return Material{}, err
	}
	r.invalidate(ctx)
	return saved, nil
}

func (r *cachedRepository) Delete(ctx context.Context, material Material) error {
	if err := r.Repository.Delete(ctx, material); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Bump(ctx, cacheNamespace); err != nil {
		r.logger.Warn("material cache invalidation failed", slog.Any("error", err))
	}
}

package suppliers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gestionpet/gestionpet/internal/platform/cache"
)

const cacheNamespace = "suppliers"

type cachedRepository struct {
	Repository
	cache  *cache.Store
	logger *slog.Logger
}

// NewCachedRepository serves FindAll from store and invalidates it on writes.
// Cache failures fall back to repo.
func NewCachedRepository(repo Repository, store *cache.Store, logger *slog.Logger) Repository {
	if store == nil {
		return repo
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cachedRepository{Repository: repo, cache: store, logger: logger}
}

func (r *cachedRepository) FindAll(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	err := r.cache.FetchJSON(ctx, cacheNamespace, &suppliers, func(ctx context.Context) (any, error) {
		return r.Repository.FindAll(ctx)
	})
	if err == nil {
		return suppliers, nil
	}
	var loadErr *cache.LoadError
	if errors.As(err, &loadErr) {
		return nil, loadErr.Err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	r.logger.Warn("supplier cache read failed", slog.Any("error", err))
	return r.Repository.FindAll(ctx)
}

func (r *cachedRepository) Save(ctx context.Context, supplier Supplier) (Supplier, error) {
	saved, err := r.Repository.Save(ctx, supplier)
	if err != nil {
		return Supplier{}, err
	}
	r.invalidate(ctx)
	return saved, nil
}

func (r *cachedRepository) Delete(ctx context.Context, supplier Supplier) error {
	if err := r.Repository.Delete(ctx, supplier); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedRepository) invalidate(ctx context.Context) {
	if err := r.cache.Bump(ctx, cacheNamespace); err != nil {
		r.logger.Warn("supplier cache invalidation failed", slog.Any("error", err))
	}
}

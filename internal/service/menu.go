package service

import (
	"context"
	"strings"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/models"
	"github.com/faiadgitm-oss/trpical-try/internal/repo"
)

type MenuService struct {
	repo     *repo.GormRepo
	searcher Searcher
}

// NewMenuService builds the menu service. searcher may be nil, in which
// case search runs against the database.
func NewMenuService(r *repo.GormRepo, searcher Searcher) *MenuService {
	return &MenuService{repo: r, searcher: searcher}
}

func (svc *MenuService) Menu(ctx context.Context) ([]models.Category, error) {
	return svc.repo.Menu(ctx)
}

func (svc *MenuService) ListItems(ctx context.Context) ([]models.Item, error) {
	return svc.repo.ListItems(ctx)
}

// Search matches q case-insensitively as a substring of item name or
// description. A blank query matches nothing.
func (svc *MenuService) Search(ctx context.Context, q string) ([]models.Item, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []models.Item{}, nil
	}

	if svc.searcher != nil {
		ids, err := svc.searcher.Search(ctx, q)
		if err == nil {
			return svc.repo.ItemsByIDs(ctx, ids)
		}
		logging.FromContext(ctx).Warn("search_index_fallback", "error", err)
	}

	return svc.repo.SearchItems(ctx, q)
}

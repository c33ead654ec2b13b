package service

import (
	"context"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/repo"
)

// ContentService is plain CRUD over the notice and banner collections the
// admin dashboard edits.
type ContentService interface {
	ListNotices(ctx context.Context) ([]domain.Notice, error)
	UpdateNotice(ctx context.Context, id int64, patch domain.NoticePatch) (*domain.Notice, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
	UpdateBanner(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error)
}

type contentService struct {
	content repo.ContentRepository
}

func NewContentService(content repo.ContentRepository) ContentService {
	return &contentService{content: content}
}

func (s *contentService) ListNotices(ctx context.Context) ([]domain.Notice, error) {
	return s.content.ListNotices(ctx)
}

func (s *contentService) UpdateNotice(ctx context.Context, id int64, patch domain.NoticePatch) (*domain.Notice, error) {
	return s.content.UpdateNotice(ctx, id, patch)
}

func (s *contentService) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return s.content.ListBanners(ctx)
}

func (s *contentService) UpdateBanner(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error) {
	return s.content.UpdateBanner(ctx, id, patch)
}

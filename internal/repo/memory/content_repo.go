package memory

import (
	"context"
	"sync"

	"github.com/shoecream/shoecare-api/internal/domain"
)

// ContentRepo holds the notice and banner collections, seeded with the
// shop's launch content.
type ContentRepo struct {
	mu      sync.RWMutex
	notices []domain.Notice
	banners []domain.Banner
}

func NewContentRepo() *ContentRepo {
	return &ContentRepo{
		notices: []domain.Notice{
			{
				ID:      1,
				Type:    "필독",
				Title:   "겨울철 부츠/어그 세탁 접수 지연 안내",
				Date:    "11.20",
				Content: "현재 주문 폭주로 인해 어그 및 부츠류 세탁은 평소보다 3~4일 더 소요됩니다. 꼼꼼하게 작업해드리겠습니다.",
			},
			{
				ID:      2,
				Type:    "안내",
				Title:   "명품 운동화 밑창 보강 서비스 오픈",
				Date:    "11.01",
				Content: "비브람 솔을 이용한 프리미엄 밑창 보강 서비스가 시작되었습니다.",
			},
		},
		banners: []domain.Banner{
			{
				ID:      1,
				URL:     "https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?q=80&w=1000&auto=format&fit=crop",
				Text:    "오직 신발만 다루는\n안전한 전문가",
				SubText: "50,000켤레 이상 데이터 보유",
			},
			{
				ID:      2,
				URL:     "https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1000&auto=format&fit=crop",
				Text:    "서울 전지역\n수거/배달 서비스",
				SubText: "집 앞에서 누리는 편리한 세탁",
			},
			{
				ID:      3,
				URL:     "https://images.unsplash.com/photo-1600185365926-3a810c9d56d0?q=80&w=1000&auto=format&fit=crop",
				Text:    "장인의 손길 그대로\n명품 케어",
				SubText: "프리미엄 슈케어 전문",
			},
		},
	}
}

func (r *ContentRepo) ListNotices(_ context.Context) ([]domain.Notice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Notice, len(r.notices))
	copy(out, r.notices)
	return out, nil
}

func (r *ContentRepo) UpdateNotice(_ context.Context, id int64, patch domain.NoticePatch) (*domain.Notice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.notices {
		if r.notices[i].ID != id {
			continue
		}
		n := &r.notices[i]
		if patch.Type != nil {
			n.Type = *patch.Type
		}
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Date != nil {
			n.Date = *patch.Date
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		out := *n
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

func (r *ContentRepo) ListBanners(_ context.Context) ([]domain.Banner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Banner, len(r.banners))
	copy(out, r.banners)
	return out, nil
}

func (r *ContentRepo) UpdateBanner(_ context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.banners {
		if r.banners[i].ID != id {
			continue
		}
		b := &r.banners[i]
		if patch.URL != nil {
			b.URL = *patch.URL
		}
		if patch.Text != nil {
			b.Text = *patch.Text
		}
		if patch.SubText != nil {
			b.SubText = *patch.SubText
		}
		out := *b
		return &out, nil
	}
	return nil, domain.ErrNotFound
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoecream/shoecare-api/internal/domain"
)

type ContentRepo struct {
	pool *pgxpool.Pool
}

func NewContentRepo(pool *pgxpool.Pool) *ContentRepo {
	return &ContentRepo{pool: pool}
}

func (r *ContentRepo) ListNotices(ctx context.Context) ([]domain.Notice, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, type, title, date, content FROM notices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		var n domain.Notice
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Date, &n.Content); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (r *ContentRepo) UpdateNotice(ctx context.Context, id int64, patch domain.NoticePatch) (*domain.Notice, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `UPDATE notices SET
		type    = COALESCE($2, type),
		title   = COALESCE($3, title),
		date    = COALESCE($4, date),
		content = COALESCE($5, content)
	WHERE id=$1
	RETURNING id, type, title, date, content`

	var n domain.Notice
	err := r.pool.QueryRow(ctx, q, id, patch.Type, patch.Title, patch.Date, patch.Content).Scan(
		&n.ID, &n.Type, &n.Title, &n.Date, &n.Content,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *ContentRepo) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, url, text, sub_text FROM banners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var banners []domain.Banner
	for rows.Next() {
		var b domain.Banner
		if err := rows.Scan(&b.ID, &b.URL, &b.Text, &b.SubText); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *ContentRepo) UpdateBanner(ctx context.Context, id int64, patch domain.BannerPatch) (*domain.Banner, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `UPDATE banners SET
		url      = COALESCE($2, url),
		text     = COALESCE($3, text),
		sub_text = COALESCE($4, sub_text)
	WHERE id=$1
	RETURNING id, url, text, sub_text`

	var b domain.Banner
	err := r.pool.QueryRow(ctx, q, id, patch.URL, patch.Text, patch.SubText).Scan(
		&b.ID, &b.URL, &b.Text, &b.SubText,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoecream/shoecare-api/internal/domain"
)

type RequestRepo struct {
	pool *pgxpool.Pool
}

func NewRequestRepo(pool *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{pool: pool}
}

const requestCols = `id, type, name, phone, address, count, extra_info, date, member_id`

func (r *RequestRepo) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `INSERT INTO service_requests (type, name, phone, address, count, extra_info, date, member_id)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	RETURNING ` + requestCols

	var stored domain.ServiceRequest
	err := r.pool.QueryRow(ctx, q,
		req.Type, req.Name, req.Phone, req.Address,
		req.Count, req.ExtraInfo, req.Date, req.MemberID,
	).Scan(
		&stored.ID, &stored.Type, &stored.Name, &stored.Phone, &stored.Address,
		&stored.Count, &stored.ExtraInfo, &stored.Date, &stored.MemberID,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *RequestRepo) List(ctx context.Context, typ *domain.RequestType) ([]domain.ServiceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := `SELECT ` + requestCols + ` FROM service_requests ORDER BY id DESC`
	args := []any{}
	if typ != nil {
		q = `SELECT ` + requestCols + ` FROM service_requests WHERE type=$1 ORDER BY id DESC`
		args = append(args, *typ)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]domain.ServiceRequest, 0)
	for rows.Next() {
		var req domain.ServiceRequest
		if err := rows.Scan(
			&req.ID, &req.Type, &req.Name, &req.Phone, &req.Address,
			&req.Count, &req.ExtraInfo, &req.Date, &req.MemberID,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

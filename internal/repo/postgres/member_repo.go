package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoecream/shoecare-api/internal/domain"
)

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

const memberCols = `id, name, phone, address, joined_at, referral_code, invited_by`

func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const q = `INSERT INTO members (name, phone, address, joined_at, referral_code, invited_by)
	VALUES ($1,$2,$3,$4,$5,$6)
	RETURNING ` + memberCols

	var stored domain.Member
	err = tx.QueryRow(ctx, q, m.Name, m.Phone, m.Address, m.JoinedAt, m.ReferralCode, m.InvitedBy).Scan(
		&stored.ID, &stored.Name, &stored.Phone, &stored.Address,
		&stored.JoinedAt, &stored.ReferralCode, &stored.InvitedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "members_phone_key" {
			return nil, domain.ErrDuplicatePhone
		}
		return nil, err
	}

	for _, c := range m.Coupons {
		const cq = `INSERT INTO coupons (member_id, name, amount, used, issued_at) VALUES ($1,$2,$3,$4,$5)`
		if _, err := tx.Exec(ctx, cq, stored.ID, c.Name, c.Amount, c.Used, c.IssuedAt); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	stored.Coupons = append([]domain.Coupon(nil), m.Coupons...)
	return &stored, nil
}

func (r *MemberRepo) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE id=$1`
	return r.findOne(ctx, q, id)
}

func (r *MemberRepo) FindByNamePhone(ctx context.Context, name, phone string) (*domain.Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE name=$1 AND phone=$2 ORDER BY id LIMIT 1`
	return r.findOne(ctx, q, name, phone)
}

func (r *MemberRepo) FindByReferralCode(ctx context.Context, code string) (*domain.Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE referral_code=$1`
	m, err := r.findOne(ctx, q, code)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func (r *MemberRepo) ReferralCodeExists(ctx context.Context, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `SELECT EXISTS (SELECT 1 FROM members WHERE referral_code=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, q, code).Scan(&exists)
	return exists, err
}

func (r *MemberRepo) List(ctx context.Context) ([]domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `SELECT ` + memberCols + ` FROM members ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Phone, &m.Address, &m.JoinedAt, &m.ReferralCode, &m.InvitedBy); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range members {
		coupons, err := r.loadCoupons(ctx, members[i].ID)
		if err != nil {
			return nil, err
		}
		members[i].Coupons = coupons
	}
	return members, nil
}

func (r *MemberRepo) AppendCoupon(ctx context.Context, memberID int64, c domain.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	const q = `INSERT INTO coupons (member_id, name, amount, used, issued_at)
	SELECT $1,$2,$3,$4,$5 WHERE EXISTS (SELECT 1 FROM members WHERE id=$1)`
	tag, err := r.pool.Exec(ctx, q, memberID, c.Name, c.Amount, c.Used, c.IssuedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MemberRepo) RedeemCoupon(ctx context.Context, memberID int64, index int) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Coupon order is issue order, so the wallet index maps to the n-th
	// row by id.
	const sel = `SELECT id, name, amount, used, issued_at FROM coupons
	WHERE member_id=$1 ORDER BY id OFFSET $2 LIMIT 1 FOR UPDATE`

	var (
		couponID int64
		c        domain.Coupon
	)
	err = tx.QueryRow(ctx, sel, memberID, index).Scan(&couponID, &c.Name, &c.Amount, &c.Used, &c.IssuedAt)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Used {
		return nil, domain.ErrAlreadyUsed
	}

	if _, err := tx.Exec(ctx, `UPDATE coupons SET used=TRUE WHERE id=$1`, couponID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	c.Used = true
	return &c, nil
}

func (r *MemberRepo) findOne(ctx context.Context, q string, args ...any) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.Member
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&m.ID, &m.Name, &m.Phone, &m.Address, &m.JoinedAt, &m.ReferralCode, &m.InvitedBy,
	)
	if err == pgx.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	coupons, err := r.loadCoupons(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Coupons = coupons
	return &m, nil
}

func (r *MemberRepo) loadCoupons(ctx context.Context, memberID int64) ([]domain.Coupon, error) {
	const q = `SELECT name, amount, used, issued_at FROM coupons WHERE member_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, q, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := rows.Scan(&c.Name, &c.Amount, &c.Used, &c.IssuedAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

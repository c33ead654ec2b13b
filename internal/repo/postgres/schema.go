package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema creates the tables on boot and seeds the launch content. The
// durable deployment carries the same invariants as the in-memory store:
// phone and referral code uniqueness live on the members table.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS members (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		phone         TEXT NOT NULL,
		address       TEXT NOT NULL,
		joined_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		referral_code TEXT NOT NULL,
		invited_by    TEXT NOT NULL DEFAULT '',
		CONSTRAINT members_phone_key UNIQUE (phone),
		CONSTRAINT members_referral_code_key UNIQUE (referral_code)
	);

	CREATE TABLE IF NOT EXISTS coupons (
		id        BIGSERIAL PRIMARY KEY,
		member_id BIGINT NOT NULL REFERENCES members(id),
		name      TEXT NOT NULL,
		amount    BIGINT NOT NULL,
		used      BOOLEAN NOT NULL DEFAULT FALSE,
		issued_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS coupons_member_id_idx ON coupons(member_id);

	CREATE TABLE IF NOT EXISTS service_requests (
		id         BIGSERIAL PRIMARY KEY,
		type       TEXT NOT NULL,
		name       TEXT NOT NULL,
		phone      TEXT NOT NULL,
		address    TEXT NOT NULL,
		count      INT NOT NULL,
		extra_info TEXT NOT NULL DEFAULT '',
		date       TIMESTAMPTZ NOT NULL DEFAULT now(),
		member_id  BIGINT REFERENCES members(id)
	);
	CREATE INDEX IF NOT EXISTS service_requests_type_idx ON service_requests(type);

	CREATE TABLE IF NOT EXISTS notices (
		id      BIGINT PRIMARY KEY,
		type    TEXT NOT NULL,
		title   TEXT NOT NULL,
		date    TEXT NOT NULL,
		content TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS banners (
		id       BIGINT PRIMARY KEY,
		url      TEXT NOT NULL,
		text     TEXT NOT NULL,
		sub_text TEXT NOT NULL
	);`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return err
	}

	return seedContent(ctx, pool)
}

func seedContent(ctx context.Context, pool *pgxpool.Pool) error {
	const seed = `
	INSERT INTO notices (id, type, title, date, content) VALUES
		(1, '필독', '겨울철 부츠/어그 세탁 접수 지연 안내', '11.20',
		 '현재 주문 폭주로 인해 어그 및 부츠류 세탁은 평소보다 3~4일 더 소요됩니다. 꼼꼼하게 작업해드리겠습니다.'),
		(2, '안내', '명품 운동화 밑창 보강 서비스 오픈', '11.01',
		 '비브람 솔을 이용한 프리미엄 밑창 보강 서비스가 시작되었습니다.')
	ON CONFLICT (id) DO NOTHING;

	INSERT INTO banners (id, url, text, sub_text) VALUES
		(1, 'https://images.unsplash.com/photo-1595950653106-6c9ebd614d3a?q=80&w=1000&auto=format&fit=crop',
		 E'오직 신발만 다루는\n안전한 전문가', '50,000켤레 이상 데이터 보유'),
		(2, 'https://images.unsplash.com/photo-1542291026-7eec264c27ff?q=80&w=1000&auto=format&fit=crop',
		 E'서울 전지역\n수거/배달 서비스', '집 앞에서 누리는 편리한 세탁'),
		(3, 'https://images.unsplash.com/photo-1600185365926-3a810c9d56d0?q=80&w=1000&auto=format&fit=crop',
		 E'장인의 손길 그대로\n명품 케어', '프리미엄 슈케어 전문')
	ON CONFLICT (id) DO NOTHING;`

	_, err := pool.Exec(ctx, seed)
	return err
}

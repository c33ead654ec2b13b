package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shoecream/shoecare-api/internal/repo"
)

// NewStore wires the pgx-backed repositories for a persistent deployment.
func NewStore(pool *pgxpool.Pool) *repo.Store {
	return &repo.Store{
		Members:  NewMemberRepo(pool),
		Requests: NewRequestRepo(pool),
		Content:  NewContentRepo(pool),
	}
}

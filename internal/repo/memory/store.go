package memory

import "github.com/shoecream/shoecare-api/internal/repo"

// NewStore wires the in-memory repositories. This is the default backing
// store; all state lives for the process lifetime only.
func NewStore() *repo.Store {
	return &repo.Store{
		Members:  NewMemberRepo(),
		Requests: NewRequestRepo(),
		Content:  NewContentRepo(),
	}
}

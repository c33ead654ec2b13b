package memory

import (
	"context"
	"sync"

	"github.com/shoecream/shoecare-api/internal/domain"
)

// RequestRepo is the in-memory service request log. Requests are created
// once and never mutated afterward.
type RequestRepo struct {
	mu       sync.RWMutex
	nextID   int64
	requests []domain.ServiceRequest
}

func NewRequestRepo() *RequestRepo {
	return &RequestRepo{nextID: 1}
}

func (r *RequestRepo) Create(_ context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *req
	stored.ID = r.nextID
	r.nextID++

	if req.MemberID != nil {
		id := *req.MemberID
		stored.MemberID = &id
	}

	r.requests = append(r.requests, stored)

	out := stored
	return &out, nil
}

func (r *RequestRepo) List(_ context.Context, typ *domain.RequestType) ([]domain.ServiceRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ServiceRequest, 0, len(r.requests))
	for i := len(r.requests) - 1; i >= 0; i-- {
		req := r.requests[i]
		if typ != nil && req.Type != *typ {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/internal/repo"
	"github.com/shoecream/shoecare-api/pkg/events"
	"github.com/shoecream/shoecare-api/pkg/logger"
)

// RequestService records pickup and delivery intakes, resolving requester
// identity from either an authenticated member or ad-hoc guest fields.
type RequestService interface {
	Submit(ctx context.Context, in *domain.RequestInput) (*domain.ServiceRequest, error)
	List(ctx context.Context, typ *domain.RequestType) ([]domain.ServiceRequest, error)
}

type requestService struct {
	requests repo.RequestRepository
	members  repo.MemberRepository
	eventBus events.Publisher
}

func NewRequestService(requests repo.RequestRepository, members repo.MemberRepository, eventBus events.Publisher) RequestService {
	return &requestService{
		requests: requests,
		members:  members,
		eventBus: eventBus,
	}
}

func (s *requestService) Submit(ctx context.Context, in *domain.RequestInput) (*domain.ServiceRequest, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req := &domain.ServiceRequest{
		Type:      in.Type,
		Count:     in.Count,
		ExtraInfo: in.ExtraInfo,
		Date:      time.Now(),
	}

	if in.Identity.MemberID != nil {
		// Identity fields are snapshotted from the store at submission
		// time; later member edits never change past requests.
		member, err := s.members.FindByID(ctx, *in.Identity.MemberID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve member: %w", err)
		}
		id := member.ID
		req.MemberID = &id
		req.Name = member.Name
		req.Phone = member.Phone
		req.Address = member.Address
	} else {
		req.Name = in.Identity.Name
		req.Phone = in.Identity.Phone
		req.Address = in.Identity.Address
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to record request: %w", err)
	}

	event := events.RequestCreatedEvent{
		RequestID: created.ID,
		Type:      string(created.Type),
		Name:      created.Name,
		Phone:     created.Phone,
		Count:     created.Count,
		MemberID:  created.MemberID,
		CreatedAt: created.Date,
	}
	if err := s.eventBus.Publish(ctx, events.RequestCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish request created event", "error", err, "request_id", created.ID)
	}

	return created, nil
}

func (s *requestService) List(ctx context.Context, typ *domain.RequestType) ([]domain.ServiceRequest, error) {
	return s.requests.List(ctx, typ)
}

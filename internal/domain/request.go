package domain

import (
	"time"

	"github.com/shoecream/shoecare-api/internal/utils"
)

type RequestType string

const (
	RequestPickup   RequestType = "pickup"
	RequestDelivery RequestType = "delivery"
)

func ParseRequestType(s string) (RequestType, bool) {
	switch RequestType(s) {
	case RequestPickup, RequestDelivery:
		return RequestType(s), true
	default:
		return "", false
	}
}

// ServiceRequest records a single pickup or delivery intake. Identity
// fields are value copies taken at submission time; later member edits do
// not change past requests. A nil MemberID denotes a guest submission.
type ServiceRequest struct {
	ID        int64       `json:"id"`
	Type      RequestType `json:"type"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Count     int         `json:"count"`
	ExtraInfo string      `json:"extra_info,omitempty"`
	Date      time.Time   `json:"date"`
	MemberID  *int64      `json:"member_id,omitempty"`
}

// IdentitySource resolves who a request is for: either an authenticated
// member (MemberID set, identity fields snapshotted from the store) or a
// guest supplying identity inline.
type IdentitySource struct {
	MemberID *int64
	Name     string
	Phone    string
	Address  string
}

func Authenticated(memberID int64) IdentitySource {
	return IdentitySource{MemberID: &memberID}
}

func Guest(name, phone, address string) IdentitySource {
	return IdentitySource{Name: name, Phone: phone, Address: address}
}

type RequestInput struct {
	Type      RequestType
	Identity  IdentitySource
	Count     int
	ExtraInfo string
}

func (in *RequestInput) Normalize() {
	in.ExtraInfo = utils.NormalizeString(in.ExtraInfo)
	if in.Identity.MemberID == nil {
		in.Identity.Name = utils.NormalizeString(in.Identity.Name)
		in.Identity.Phone = utils.NormalizeString(in.Identity.Phone)
		in.Identity.Address = utils.NormalizeString(in.Identity.Address)
	}
}

func (in *RequestInput) Validate() error {
	if _, ok := ParseRequestType(string(in.Type)); !ok {
		return NewValidationError("type", "must be pickup or delivery")
	}
	if in.Count < 1 {
		return NewValidationError("count", "must be a positive integer")
	}
	// Pickup needs a building access code (or an explicit "none") so the
	// driver can reach the door; delivery tracking info is optional.
	if in.Type == RequestPickup && in.ExtraInfo == "" {
		return NewValidationError("extra_info", "required for pickup requests")
	}
	if in.Identity.MemberID == nil {
		if in.Identity.Name == "" {
			return NewValidationError("name", "required")
		}
		if !utils.IsValidPhone(in.Identity.Phone) {
			return NewValidationError("phone", "must be a valid phone number")
		}
		if in.Identity.Address == "" {
			return NewValidationError("address", "required")
		}
	}
	return nil
}

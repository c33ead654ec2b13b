package domain

import (
	"time"

	"github.com/shoecream/shoecare-api/internal/utils"
)

// Member is a registered customer identity. Phone is the unique key; the
// referral code is unique and immutable once assigned. Members are never
// deleted and are mutated only by coupon issuance and redemption.
type Member struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	JoinedAt     time.Time `json:"joined_at"`
	ReferralCode string    `json:"referral_code"`
	InvitedBy    string    `json:"invited_by,omitempty"`
	Coupons      []Coupon  `json:"coupons"`
}

// Coupon is a redeemable discount owned by exactly one member. Name and
// amount are snapshotted from the catalog template at issue time, so later
// catalog edits never alter issued coupons.
type Coupon struct {
	Name     string    `json:"name"`
	Amount   int64     `json:"amount"`
	Used     bool      `json:"used"`
	IssuedAt time.Time `json:"issued_at"`
}

type RegisterInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	InviteCode string `json:"invite_code,omitempty"`
}

// Normalize trims the outer whitespace only. The phone is stored verbatim
// so authentication stays an exact match on what the member typed at
// signup; NormalizePhone is used for format validation, not storage.
func (in *RegisterInput) Normalize() {
	in.Name = utils.NormalizeString(in.Name)
	in.Phone = utils.NormalizeString(in.Phone)
	in.Address = utils.NormalizeString(in.Address)
	in.InviteCode = utils.NormalizeString(in.InviteCode)
}

func (in *RegisterInput) Validate() error {
	if in.Name == "" {
		return NewValidationError("name", "required")
	}
	if !utils.IsValidPhone(in.Phone) {
		return NewValidationError("phone", "must be a valid phone number")
	}
	if in.Address == "" {
		return NewValidationError("address", "required")
	}
	return nil
}

type LoginInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (in *LoginInput) Normalize() {
	in.Name = utils.NormalizeString(in.Name)
	in.Phone = utils.NormalizeString(in.Phone)
}

func (in *LoginInput) Validate() error {
	if in.Name == "" {
		return NewValidationError("name", "required")
	}
	if in.Phone == "" {
		return NewValidationError("phone", "required")
	}
	return nil
}

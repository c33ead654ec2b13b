package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/shoecream/shoecare-api/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// LogEventBus is the dev fallback used when no NATS URL is configured:
// events are written to the structured log instead of a broker.
type LogEventBus struct{}

func NewLogEventBus() *LogEventBus {
	return &LogEventBus{}
}

func (l *LogEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	logger.InfoContext(ctx, "Event published (dev mode)", "subject", subject, "data", string(payload))
	return nil
}

func (l *LogEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	return nil
}

func (l *LogEventBus) Close() error {
	return nil
}

// Event subjects
const (
	MemberRegistered = "member.registered"
	CouponIssued     = "coupon.issued"
	CouponRedeemed   = "coupon.redeemed"
	ReferralRewarded = "referral.rewarded"
	RequestCreated   = "request.created"
)

// Event payloads
type MemberRegisteredEvent struct {
	MemberID     int64     `json:"member_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	ReferralCode string    `json:"referral_code"`
	InvitedBy    string    `json:"invited_by,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}

type CouponIssuedEvent struct {
	MemberID   int64     `json:"member_id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	Amount     int64     `json:"amount"`
	IssuedAt   time.Time `json:"issued_at"`
}

type CouponRedeemedEvent struct {
	MemberID   int64     `json:"member_id"`
	Index      int       `json:"index"`
	Name       string    `json:"name"`
	Amount     int64     `json:"amount"`
	RedeemedAt time.Time `json:"redeemed_at"`
}

type ReferralRewardedEvent struct {
	ReferrerID   int64     `json:"referrer_id"`
	NewMemberID  int64     `json:"new_member_id"`
	ReferralCode string    `json:"referral_code"`
	RewardedAt   time.Time `json:"rewarded_at"`
}

type RequestCreatedEvent struct {
	RequestID int64     `json:"request_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Count     int       `json:"count"`
	MemberID  *int64    `json:"member_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package coupon

import (
	"time"

	"github.com/shoecream/shoecare-api/internal/domain"
	"github.com/shoecream/shoecare-api/pkg/config"
)

// Template ids. The welcome coupon is issued on every signup; the referral
// coupon goes to the referrer when a new signup carries their code.
const (
	TemplateWelcome  = "welcome"
	TemplateReferral = "referral"
)

// Template is a catalog entry. Issued coupons copy Name and Amount at issue
// time instead of referencing the template, so editing the catalog never
// changes coupons that are already in a member's wallet.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// Catalog is the fixed set of coupon templates, the source of truth for
// issued amounts.
type Catalog struct {
	templates map[string]Template
	order     []string
}

// NewCatalog builds the shop catalog. Amounts come from configuration;
// display names match the customer app.
func NewCatalog(cfg config.CouponConfig) *Catalog {
	c := &Catalog{templates: make(map[string]Template)}
	c.add(Template{ID: TemplateWelcome, Name: "가입 환영 쿠폰", Amount: cfg.WelcomeAmount})
	c.add(Template{ID: TemplateReferral, Name: "지인 추천 감사 쿠폰", Amount: cfg.ReferralAmount})
	return c
}

func (c *Catalog) add(t Template) {
	c.templates[t.ID] = t
	c.order = append(c.order, t.ID)
}

func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.templates[id]
	return t, ok
}

func (c *Catalog) List() []Template {
	out := make([]Template, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.templates[id])
	}
	return out
}

// Stamp materializes a template into an unused coupon ready to append to a
// member's wallet.
func (t Template) Stamp(issuedAt time.Time) domain.Coupon {
	return domain.Coupon{
		Name:     t.Name,
		Amount:   t.Amount,
		Used:     false,
		IssuedAt: issuedAt,
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoecream/shoecare-api/internal/coupon"
	"github.com/shoecream/shoecare-api/internal/http/response"
	"github.com/shoecream/shoecare-api/internal/repo/memory"
	"github.com/shoecream/shoecare-api/internal/service"
	"github.com/shoecream/shoecare-api/pkg/config"
	"github.com/shoecream/shoecare-api/pkg/events"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret",
			AccessTokenTTL: time.Hour,
			GuestFlowTTL:   30 * time.Minute,
			AdminTokenTTL:  time.Hour,
		},
		Admin:   config.AdminConfig{Password: "1234"},
		Coupons: config.CouponConfig{WelcomeAmount: 5000, ReferralAmount: 4000},
	}

	store := memory.NewStore()
	catalog := coupon.NewCatalog(cfg.Coupons)
	bus := events.NewLogEventBus()
	coupons := service.NewCouponService(store.Members, catalog, bus)
	identity := service.NewIdentityService(store.Members, coupons, catalog, bus)
	requests := service.NewRequestService(store.Requests, store.Members, bus)
	content := service.NewContentService(store.Content)

	adminHash, err := argon2id.CreateHash(cfg.Admin.Password, argon2id.DefaultParams)
	require.NoError(t, err)

	return New(identity, coupons, requests, content, cfg, adminHash).Router(nil)
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func registerMember(t *testing.T, h http.Handler, name, phone, invite string) memberSessionRes {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/v1/members", "", map[string]string{
		"name":        name,
		"phone":       phone,
		"address":     "서울 강남구 테헤란로 1",
		"invite_code": invite,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res memberSessionRes
	decode(t, rec, &res)
	require.NotEmpty(t, res.AccessToken)
	return res
}

func adminToken(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/v1/admin/login", "", map[string]string{"password": "1234"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res adminLoginRes
	decode(t, rec, &res)
	return res.AccessToken
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestServer(t)

	session := registerMember(t, h, "김철수", "010-1111-2222", "")
	assert.Equal(t, "김철수", session.Member.Name)
	assert.Len(t, session.Member.ReferralCode, 6)
	require.Len(t, session.Member.Coupons, 1)
	assert.Equal(t, "가입 환영 쿠폰", session.Member.Coupons[0].Name)

	// Same phone again is refused.
	rec := doJSON(t, h, http.MethodPost, "/v1/members", "", map[string]string{
		"name": "다른사람", "phone": "010-1111-2222", "address": "부산",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	var errRes response.ErrorResponse
	decode(t, rec, &errRes)
	assert.Equal(t, "CONFLICT", errRes.Code)

	// Exact name+phone logs in.
	rec = doJSON(t, h, http.MethodPost, "/v1/session", "", map[string]string{
		"name": "김철수", "phone": "010-1111-2222",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/v1/session", "", map[string]string{
		"name": "김철수", "phone": "010-9999-0000",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegister_InvalidInput(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/members", "", map[string]string{
		"name": "", "phone": "010-1111-2222", "address": "서울",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errRes response.ErrorResponse
	decode(t, rec, &errRes)
	assert.Equal(t, "INVALID_INPUT", errRes.Code)
	assert.Equal(t, "name", errRes.Field)
}

func TestReferralRegistration(t *testing.T) {
	h := newTestServer(t)

	referrer := registerMember(t, h, "김철수", "010-1111-2222", "")
	invited := registerMember(t, h, "박영희", "010-3333-4444", referrer.Member.ReferralCode)
	assert.Equal(t, referrer.Member.ReferralCode, invited.Member.InvitedBy)

	rec := doJSON(t, h, http.MethodGet, "/v1/member/me", referrer.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Coupons []struct {
			Name   string `json:"name"`
			Amount int64  `json:"amount"`
		} `json:"coupons"`
	}
	decode(t, rec, &me)
	require.Len(t, me.Coupons, 2)
	assert.Equal(t, "지인 추천 감사 쿠폰", me.Coupons[1].Name)
	assert.Equal(t, int64(4000), me.Coupons[1].Amount)
}

func TestMemberRoutesRequireToken(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/member/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/member/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRedeemCoupon_ExactlyOnce(t *testing.T) {
	h := newTestServer(t)
	session := registerMember(t, h, "김철수", "010-1111-2222", "")

	rec := doJSON(t, h, http.MethodPost, "/v1/member/coupons/0/redeem", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var redeemed struct {
		Used bool `json:"used"`
	}
	decode(t, rec, &redeemed)
	assert.True(t, redeemed.Used)

	rec = doJSON(t, h, http.MethodPost, "/v1/member/coupons/0/redeem", session.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var errRes response.ErrorResponse
	decode(t, rec, &errRes)
	assert.Equal(t, "COUPON_USED", errRes.Code)

	rec = doJSON(t, h, http.MethodPost, "/v1/member/coupons/7/redeem", session.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuestFlow(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/v1/guest/flow", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var flow guestFlowRes
	decode(t, rec, &flow)
	require.NotEmpty(t, flow.FlowToken)

	rec = doJSON(t, h, http.MethodPost, "/v1/guest/requests", flow.FlowToken, map[string]interface{}{
		"type": "pickup", "name": "홍길동", "phone": "010-5555-6666",
		"address": "서울 마포구", "count": 1, "extra_info": "공동현관 1234#",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		MemberID *int64 `json:"member_id"`
		Name     string `json:"name"`
	}
	decode(t, rec, &created)
	assert.Nil(t, created.MemberID)
	assert.Equal(t, "홍길동", created.Name)
}

func TestGuestFlow_RefusedForMembers(t *testing.T) {
	h := newTestServer(t)
	session := registerMember(t, h, "김철수", "010-1111-2222", "")

	rec := doJSON(t, h, http.MethodPost, "/v1/guest/flow", session.AccessToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// A member token is not a guest-flow token.
	rec = doJSON(t, h, http.MethodPost, "/v1/guest/requests", session.AccessToken, map[string]interface{}{
		"type": "delivery", "name": "김철수", "phone": "010-1111-2222",
		"address": "서울", "count": 1,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMemberRequest_SnapshotsIdentity(t *testing.T) {
	h := newTestServer(t)
	session := registerMember(t, h, "김철수", "010-1111-2222", "")

	rec := doJSON(t, h, http.MethodPost, "/v1/member/requests", session.AccessToken, map[string]interface{}{
		"type": "delivery", "count": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		MemberID *int64 `json:"member_id"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
	}
	decode(t, rec, &created)
	require.NotNil(t, created.MemberID)
	assert.Equal(t, session.Member.ID, *created.MemberID)
	assert.Equal(t, "김철수", created.Name)
	assert.Equal(t, "010-1111-2222", created.Phone)
	assert.Equal(t, "서울 강남구 테헤란로 1", created.Address)
}

func TestPublicContent(t *testing.T) {
	h := newTestServer(t)

	rec := doJSON(t, h, http.MethodGet, "/v1/notices", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notices []struct {
		Title string `json:"title"`
	}
	decode(t, rec, &notices)
	assert.Len(t, notices, 2)

	rec = doJSON(t, h, http.MethodGet, "/v1/banners", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var banners []struct {
		Text string `json:"text"`
	}
	decode(t, rec, &banners)
	assert.Len(t, banners, 3)
}

func TestAdmin(t *testing.T) {
	h := newTestServer(t)
	member := registerMember(t, h, "김철수", "010-1111-2222", "")

	rec := doJSON(t, h, http.MethodPost, "/v1/admin/login", "", map[string]string{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := adminToken(t, h)

	// Member tokens do not open admin routes.
	rec = doJSON(t, h, http.MethodGet, "/v1/admin/members", member.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/admin/members", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []struct {
		Name string `json:"name"`
	}
	decode(t, rec, &members)
	require.Len(t, members, 1)
	assert.Equal(t, "김철수", members[0].Name)

	// Dashboard coupon grant shows up in the member's wallet.
	rec = doJSON(t, h, http.MethodPost, "/v1/admin/members/1/coupons", token, map[string]string{
		"template_id": "referral",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/v1/member/coupons", member.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var wallet []struct {
		Name string `json:"name"`
	}
	decode(t, rec, &wallet)
	require.Len(t, wallet, 2)
	assert.Equal(t, "지인 추천 감사 쿠폰", wallet[1].Name)
}

func TestAdmin_RequestLogAndFilter(t *testing.T) {
	h := newTestServer(t)
	token := adminToken(t, h)

	flowToken := func() string {
		rec := doJSON(t, h, http.MethodPost, "/v1/guest/flow", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var flow guestFlowRes
		decode(t, rec, &flow)
		return flow.FlowToken
	}

	submit := func(typ, extra string) {
		rec := doJSON(t, h, http.MethodPost, "/v1/guest/requests", flowToken(), map[string]interface{}{
			"type": typ, "name": "홍길동", "phone": "010-5555-6666",
			"address": "서울", "count": 1, "extra_info": extra,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	submit("pickup", "없음")
	submit("delivery", "")
	submit("pickup", "공동현관 1234#")

	rec := doJSON(t, h, http.MethodGet, "/v1/admin/requests", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []struct {
		Type string `json:"type"`
	}
	decode(t, rec, &all)
	require.Len(t, all, 3)
	assert.Equal(t, "pickup", all[0].Type)

	rec = doJSON(t, h, http.MethodGet, "/v1/admin/requests?type=delivery", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var deliveries []struct {
		Type string `json:"type"`
	}
	decode(t, rec, &deliveries)
	assert.Len(t, deliveries, 1)

	rec = doJSON(t, h, http.MethodGet, "/v1/admin/requests?type=laundry", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmin_UpdateContent(t *testing.T) {
	h := newTestServer(t)
	token := adminToken(t, h)

	rec := doJSON(t, h, http.MethodPatch, "/v1/admin/notices/1", token, map[string]string{
		"title": "접수 지연 해소 안내",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var notice struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	decode(t, rec, &notice)
	assert.Equal(t, "접수 지연 해소 안내", notice.Title)
	assert.NotEmpty(t, notice.Content)

	rec = doJSON(t, h, http.MethodPatch, "/v1/admin/notices/99", token, map[string]string{
		"title": "없는 공지",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodPatch, "/v1/admin/banners/2", token, map[string]string{
		"sub_text": "당일 수거 가능",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var banner struct {
		SubText string `json:"sub_text"`
	}
	decode(t, rec, &banner)
	assert.Equal(t, "당일 수거 가능", banner.SubText)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stadiumstories/cricket-gateway/internal/auth"
	"github.com/stadiumstories/cricket-gateway/internal/config"
	"github.com/stadiumstories/cricket-gateway/internal/external"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cashfree"
	"github.com/stadiumstories/cricket-gateway/internal/provider/cricapi"
	"github.com/stadiumstories/cricket-gateway/internal/user"
)

// --------------------------------------------------------------------------
// Fakes
// --------------------------------------------------------------------------

// fakeCric answers every endpoint with the same data/err and counts calls.
type fakeCric struct {
	calls int
	data  json.RawMessage
	err   error
}

func (f *fakeCric) answer() (json.RawMessage, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeCric) Players(ctx context.Context, offset int, search string) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) Matches(ctx context.Context, offset int) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) CurrentMatches(ctx context.Context) (json.RawMessage, error) { return f.answer() }
func (f *fakeCric) LiveScores(ctx context.Context) (json.RawMessage, error)     { return f.answer() }
func (f *fakeCric) SeriesMatches(ctx context.Context, id string) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) Countries(ctx context.Context) (json.RawMessage, error) { return f.answer() }
func (f *fakeCric) Series(ctx context.Context, offset int) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) PlayerInfo(ctx context.Context, id string) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) MatchInfo(ctx context.Context, id string) (json.RawMessage, error) {
	return f.answer()
}
func (f *fakeCric) SeriesInfo(ctx context.Context, id string) (json.RawMessage, error) {
	return f.answer()
}

type fakeNews struct {
	configured bool
	articles   []external.Article
	err        error
}

func (f *fakeNews) Configured() bool { return f.configured }
func (f *fakeNews) CricketNews(ctx context.Context) ([]external.Article, error) {
	return f.articles, f.err
}

type fakePayments struct {
	calls     int
	gotLinkID string
	gotAmount float64
	link      *cashfree.Link
	err       error
}

func (f *fakePayments) CreateTicketLink(ctx context.Context, linkID string, amount float64) (*cashfree.Link, error) {
	f.calls++
	f.gotLinkID = linkID
	f.gotAmount = amount
	return f.link, f.err
}

type fakeStore struct {
	byEmail map[string]*user.User
}

func (f *fakeStore) Create(ctx context.Context, name, email, password string) (*user.User, error) {
	if _, exists := f.byEmail[email]; exists {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{ID: primitive.NewObjectID(), Name: name, Email: email}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*user.User, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

type testDeps struct {
	cric     *fakeCric
	news     *fakeNews
	payments *fakePayments
	store    *fakeStore
}

func newTestHandler(t *testing.T, deps testDeps) *Handler {
	t.Helper()
	cfg := &config.Config{CricAPIKey: "k", NewsAPIKey: "k"}
	tokens := auth.NewTokens("test-secret", time.Hour)

	if deps.cric == nil {
		deps.cric = &fakeCric{data: json.RawMessage(`[]`)}
	}
	if deps.news == nil {
		deps.news = &fakeNews{configured: true}
	}
	if deps.payments == nil {
		deps.payments = &fakePayments{}
	}

	var store AccountStore
	if deps.store != nil {
		store = deps.store
	}
	return New(cfg, nil, deps.cric, deps.news, deps.payments, store, tokens)
}

type errorBody struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return body
}

// --------------------------------------------------------------------------
// Payment route
// --------------------------------------------------------------------------

func TestCreateQRRejectsInvalidAmounts(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative", `{"amount":-5}`},
		{"zero", `{"amount":0}`},
		{"missing", `{}`},
		{"non-numeric", `{"amount":"abc"}`},
		{"garbage body", `not json`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			payments := &fakePayments{}
			h := newTestHandler(t, testDeps{payments: payments})

			req := httptest.NewRequest(http.MethodPost, "/api/payment/create-qr", strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			h.CreateQR(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if msg := decodeError(t, rec).Error.Message; msg != "Enter a valid amount greater than 0" {
				t.Errorf("message = %q", msg)
			}
			if payments.calls != 0 {
				t.Errorf("outbound calls = %d, want 0", payments.calls)
			}
		})
	}
}

func TestCreateQRSuccess(t *testing.T) {
	payments := &fakePayments{link: &cashfree.Link{
		LinkID:  "rcb_ticket_1",
		LinkURL: "https://pay.example/x",
		QRCode:  json.RawMessage(`"qr-payload"`),
	}}
	h := newTestHandler(t, testDeps{payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-qr", strings.NewReader(`{"amount":1200}`))
	rec := httptest.NewRecorder()
	h.CreateQR(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if payments.gotAmount != 1200 {
		t.Errorf("amount = %v", payments.gotAmount)
	}
	if !strings.HasPrefix(payments.gotLinkID, "rcb_ticket_") {
		t.Errorf("linkID = %q", payments.gotLinkID)
	}

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["success"] != true {
		t.Errorf("success = %v", resp["success"])
	}
	if resp["paymentLink"] != "https://pay.example/x" {
		t.Errorf("paymentLink = %v", resp["paymentLink"])
	}
	if resp["qrCode"] != "qr-payload" {
		t.Errorf("qrCode = %v", resp["qrCode"])
	}
}

func TestCreateQRProviderFailureIncludesBody(t *testing.T) {
	payments := &fakePayments{err: &cashfree.ProviderError{
		StatusCode: http.StatusUnauthorized,
		Body:       json.RawMessage(`{"message":"authentication failed"}`),
	}}
	h := newTestHandler(t, testDeps{payments: payments})

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-qr", strings.NewReader(`{"amount":100}`))
	rec := httptest.NewRecorder()
	h.CreateQR(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeError(t, rec)
	if body.Error.Message != "Failed to create payment QR" {
		t.Errorf("message = %q", body.Error.Message)
	}
	if !strings.Contains(string(body.Error.Detail), "authentication failed") {
		t.Errorf("detail = %s", body.Error.Detail)
	}
}

// --------------------------------------------------------------------------
// Detail endpoints
// --------------------------------------------------------------------------

func TestDetailEndpointsRequireID(t *testing.T) {
	cases := []struct {
		name    string
		invoke  func(h *Handler, w http.ResponseWriter, r *http.Request)
		message string
	}{
		{"player-info", (*Handler).GetPlayerInfo, "Player ID required"},
		{"match-info", (*Handler).GetMatchInfo, "Match ID required"},
		{"series-info", (*Handler).GetSeriesInfo, "Series ID required"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cric := &fakeCric{data: json.RawMessage(`{}`)}
			h := newTestHandler(t, testDeps{cric: cric})

			req := httptest.NewRequest(http.MethodGet, "/api/"+c.name, nil)
			rec := httptest.NewRecorder()
			c.invoke(h, rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			if msg := decodeError(t, rec).Error.Message; msg != c.message {
				t.Errorf("message = %q, want %q", msg, c.message)
			}
			if cric.calls != 0 {
				t.Errorf("outbound calls = %d, want 0", cric.calls)
			}
		})
	}
}

func TestDetailEndpointPassesThrough(t *testing.T) {
	cric := &fakeCric{data: json.RawMessage(`{"id":"p1","name":"Virat Kohli"}`)}
	h := newTestHandler(t, testDeps{cric: cric})

	req := httptest.NewRequest(http.MethodGet, "/api/player-info?id=p1", nil)
	rec := httptest.NewRecorder()
	h.GetPlayerInfo(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != `{"id":"p1","name":"Virat Kohli"}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

// --------------------------------------------------------------------------
// Upstream failure policy
// --------------------------------------------------------------------------

func TestSeriesUpstreamFailure(t *testing.T) {
	cric := &fakeCric{err: &cricapi.UpstreamError{Endpoint: "series", Reason: "apikey invalid"}}
	h := newTestHandler(t, testDeps{cric: cric})

	req := httptest.NewRequest(http.MethodGet, "/api/series", nil)
	rec := httptest.NewRecorder()
	h.GetSeries(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec).Error.Message; msg != "CricAPI error" {
		t.Errorf("message = %q, want CricAPI error", msg)
	}
}

func TestMatchesNetworkFailure(t *testing.T) {
	cric := &fakeCric{err: errors.New("connection refused")}
	h := newTestHandler(t, testDeps{cric: cric})

	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	rec := httptest.NewRecorder()
	h.GetMatches(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec).Error.Message; msg != "Failed to fetch matches" {
		t.Errorf("message = %q", msg)
	}
}

func TestWorldCupNeverFails(t *testing.T) {
	cric := &fakeCric{err: errors.New("everything is down")}
	h := newTestHandler(t, testDeps{cric: cric})

	req := httptest.NewRequest(http.MethodGet, "/api/t20-world-cup-matches", nil)
	rec := httptest.NewRecorder()
	h.GetWorldCupMatches(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "[]" {
		t.Errorf("body = %s, want []", rec.Body.String())
	}
}

// --------------------------------------------------------------------------
// News routes
// --------------------------------------------------------------------------

func TestStaticNewsFixedList(t *testing.T) {
	h := newTestHandler(t, testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	rec := httptest.NewRecorder()
	h.GetStaticNews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var items []map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
}

func TestCricketNewsMissingKey(t *testing.T) {
	h := newTestHandler(t, testDeps{news: &fakeNews{configured: false}})

	req := httptest.NewRequest(http.MethodGet, "/api/cricket-news", nil)
	rec := httptest.NewRecorder()
	h.GetCricketNews(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeError(t, rec).Error.Message; msg != "News API Key is missing." {
		t.Errorf("message = %q", msg)
	}
}

func TestCricketNewsSuccess(t *testing.T) {
	h := newTestHandler(t, testDeps{news: &fakeNews{
		configured: true,
		articles:   []external.Article{{Title: "headline", Image: "img", Date: "2/5/2026"}},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/cricket-news", nil)
	rec := httptest.NewRecorder()
	h.GetCricketNews(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var articles []external.Article
	json.Unmarshal(rec.Body.Bytes(), &articles)
	if len(articles) != 1 || articles[0].Title != "headline" {
		t.Errorf("articles = %+v", articles)
	}
}

// --------------------------------------------------------------------------
// Account routes
// --------------------------------------------------------------------------

func TestAccountRoutesWithoutStore(t *testing.T) {
	h := newTestHandler(t, testDeps{store: nil})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Fan","email":"fan@rcb.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	store := &fakeStore{byEmail: map[string]*user.User{}}
	h := newTestHandler(t, testDeps{store: store})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"","email":"fan@rcb.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterAndDuplicate(t *testing.T) {
	store := &fakeStore{byEmail: map[string]*user.User{}}
	h := newTestHandler(t, testDeps{store: store})

	body := `{"name":"Fan","email":"fan@rcb.com","password":"pw"}`

	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] == "" || resp["token"] == nil {
		t.Error("missing token in response")
	}

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}
}

func TestMeWithoutUserRecord(t *testing.T) {
	h := newTestHandler(t, testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.NewContext(req.Context(), nil))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMeWithUser(t *testing.T) {
	h := newTestHandler(t, testDeps{})

	u := &user.User{ID: primitive.NewObjectID(), Name: "Fan", Email: "fan@rcb.com"}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.NewContext(req.Context(), u))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fan@rcb.com") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

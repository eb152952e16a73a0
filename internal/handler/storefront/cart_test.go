package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/cart"
	"github.com/pawluxe/storefront/internal/domain"
	"github.com/pawluxe/storefront/internal/session"
	"github.com/pawluxe/storefront/internal/vendure"
)

func newTestSessions(backend *vendure.Mock) *session.Manager {
	factory := func() *session.Visitor {
		return &session.Visitor{
			Controller: cart.NewController(backend, nil, zerolog.Nop()),
			Backend:    backend,
		}
	}
	return session.NewManager(factory, time.Minute, zerolog.Nop())
}

func doJSON(e *echo.Echo, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newCartEcho(h *CartHandler) *echo.Echo {
	e := echo.New()
	e.GET("/api/cart", h.Get)
	e.POST("/api/cart/refresh", h.Refresh)
	e.POST("/api/cart/items", h.AddItem)
	e.PUT("/api/cart/items/:lineID", h.UpdateItem)
	e.DELETE("/api/cart/items/:lineID", h.RemoveItem)
	return e
}

func TestCartGetMintsSession(t *testing.T) {
	backend := &vendure.Mock{}
	h := NewCartHandler(newTestSessions(backend), false, zerolog.Nop())
	e := newCartEcho(h)

	rec := doJSON(e, http.MethodGet, "/api/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var minted bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			minted = true
		}
	}
	if !minted {
		t.Error("expected a session cookie on first contact")
	}

	var view cartView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if view.Order != nil || len(view.Lines) != 0 || view.ItemCount != 0 {
		t.Errorf("expected an empty cart, got %+v", view)
	}
}

func TestCartSessionReuse(t *testing.T) {
	created := 0
	backend := &vendure.Mock{}
	factory := func() *session.Visitor {
		created++
		return &session.Visitor{
			Controller: cart.NewController(backend, nil, zerolog.Nop()),
			Backend:    backend,
		}
	}
	sessions := session.NewManager(factory, time.Minute, zerolog.Nop())
	h := NewCartHandler(sessions, false, zerolog.Nop())
	e := newCartEcho(h)

	first := doJSON(e, http.MethodGet, "/api/cart", "")
	var token *http.Cookie
	for _, cookie := range first.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			token = cookie
		}
	}
	if token == nil {
		t.Fatal("no session cookie on first request")
	}

	doJSON(e, http.MethodGet, "/api/cart", "", token)
	if created != 1 {
		t.Errorf("factory called %d times across two requests, want 1", created)
	}
}

func TestAddItem(t *testing.T) {
	backend := &vendure.Mock{
		AddItemFunc: func(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
			return &domain.Order{
				ID:            "order-1",
				TotalQuantity: quantity,
				Lines: []domain.OrderLine{{
					ID:       "L1",
					Quantity: quantity,
					Variant:  domain.OrderVariant{ID: variantID},
				}},
			}, nil
		},
	}
	h := NewCartHandler(newTestSessions(backend), false, zerolog.Nop())
	e := newCartEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/cart/items", `{"variantId":"variant-123","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Added domain.AddResult `json:"added"`
		Cart  cartView         `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Added.Quantity != 2 || body.Added.Line.ID != "L1" {
		t.Errorf("unexpected add result: %+v", body.Added)
	}
	if body.Cart.ItemCount != 2 || body.Cart.LineCount != 1 {
		t.Errorf("unexpected cart view: %+v", body.Cart)
	}
}

func TestAddItemValidation(t *testing.T) {
	h := NewCartHandler(newTestSessions(&vendure.Mock{}), false, zerolog.Nop())
	e := newCartEcho(h)

	tests := []struct {
		name string
		body string
	}{
		{"missing variant", `{"quantity":2}`},
		{"zero quantity", `{"variantId":"variant-123","quantity":0}`},
		{"malformed json", `{"variantId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(e, http.MethodPost, "/api/cart/items", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUpdateItemStaleLine(t *testing.T) {
	backend := &vendure.Mock{}
	h := NewCartHandler(newTestSessions(backend), false, zerolog.Nop())
	e := newCartEcho(h)

	rec := doJSON(e, http.MethodPut, "/api/cart/items/L999", `{"quantity":5}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Error.Code != domain.ESTALE {
		t.Errorf("error code = %q, want %q", body.Error.Code, domain.ESTALE)
	}
}

func TestRemoveItemBackendUnavailable(t *testing.T) {
	backend := &vendure.Mock{
		RemoveLineFunc: func(ctx context.Context, lineID string) (*domain.Order, error) {
			return nil, domain.Unavailable(http.ErrHandlerTimeout, "vendure.removeLine")
		},
	}
	h := NewCartHandler(newTestSessions(backend), false, zerolog.Nop())
	e := newCartEcho(h)

	rec := doJSON(e, http.MethodDelete, "/api/cart/items/L1", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503: %s", rec.Code, rec.Body.String())
	}
}

// Package vendure is the GraphQL-over-HTTP client for the commerce
// platform's shop API. It implements domain.OrderBackend and
// domain.CatalogBackend.
//
// The shop API scopes the active order to a session cookie, so every client
// owns a cookie jar; one client per storefront session keeps the commerce
// session and the storefront session aligned.
package vendure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/rs/zerolog"

	"github.com/pawluxe/storefront/internal/domain"
)

// Client talks to one Vendure shop API endpoint on behalf of one session.
type Client struct {
	endpoint string
	http     *http.Client
	logger   zerolog.Logger
}

// New creates a session-scoped shop API client.
func New(endpoint string, timeout time.Duration, logger zerolog.Logger) *Client {
	// cookiejar.New never fails with nil options.
	jar, _ := cookiejar.New(nil)

	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		logger: logger.With().Str("component", "vendure").Logger(),
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// orderResult decodes the Order/ErrorResult union: on success the order
// fields are populated, on failure errorCode and message.
type orderResult struct {
	domain.Order
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// do posts one GraphQL document and decodes data.<field> into out.
func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, field string, out any) error {
	start := time.Now()
	err := c.post(ctx, op, query, variables, field, out)
	observeBackendCall(op, err, time.Since(start))
	return err
}

func (c *Client) post(ctx context.Context, op, query string, variables map[string]any, field string, out any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return domain.Internal(err, op, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Internal(err, op, "failed to create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("shop API unreachable")
		return domain.Unavailable(err, op)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Unavailable(err, op)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("op", op).Msg("shop API error status")
		return domain.Unavailable(fmt.Errorf("shop API status %d: %s", resp.StatusCode, body), op)
	}

	var envelope struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []gqlError                 `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return domain.Internal(err, op, "failed to decode response")
	}

	if len(envelope.Errors) > 0 {
		return domain.Internal(fmt.Errorf("graphql: %s", envelope.Errors[0].Message), op, "shop API rejected the request")
	}

	raw, ok := envelope.Data[field]
	if !ok || string(raw) == "null" {
		// Signals "absent" for nullable queries; mutations never return null.
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return domain.Internal(err, op, "failed to decode response")
	}

	return nil
}

// mutateOrder runs an order mutation and unpacks the result union.
func (c *Client) mutateOrder(ctx context.Context, op, query string, variables map[string]any, field string) (*domain.Order, error) {
	var result orderResult
	if err := c.do(ctx, op, query, variables, field, &result); err != nil {
		return nil, err
	}

	if result.ErrorCode != "" {
		c.logger.Debug().
			Str("op", op).
			Str("error_code", result.ErrorCode).
			Str("message", result.Message).
			Msg("shop API business error")
		return nil, &domain.Error{
			Code:    domain.EBACKEND,
			Op:      op,
			Message: result.Message,
			Err:     fmt.Errorf("vendure: %s", result.ErrorCode),
		}
	}

	order := result.Order
	return &order, nil
}

// FetchActiveOrder returns the session's active order, or nil when none
// exists.
func (c *Client) FetchActiveOrder(ctx context.Context) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "vendure.fetchActiveOrder", activeOrderQuery, nil, "activeOrder", &order); err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, nil
	}
	return &order, nil
}

// AddItem adds quantity of a variant to the active order.
func (c *Client) AddItem(ctx context.Context, variantID string, quantity int) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.addItem", addItemMutation, map[string]any{
		"productVariantId": variantID,
		"quantity":         quantity,
	}, "addItemToOrder")
}

// AdjustLine sets the quantity of an existing order line.
func (c *Client) AdjustLine(ctx context.Context, lineID string, quantity int) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.adjustLine", adjustLineMutation, map[string]any{
		"orderLineId": lineID,
		"quantity":    quantity,
	}, "adjustOrderLine")
}

// RemoveLine removes an order line.
func (c *Client) RemoveLine(ctx context.Context, lineID string) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.removeLine", removeLineMutation, map[string]any{
		"orderLineId": lineID,
	}, "removeOrderLine")
}

// SetShippingAddress sets the delivery address on the active order.
func (c *Client) SetShippingAddress(ctx context.Context, input domain.AddressInput) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.setShippingAddress", setShippingAddressMutation, map[string]any{
		"input": input,
	}, "setOrderShippingAddress")
}

// SetBillingAddress sets the billing address on the active order.
func (c *Client) SetBillingAddress(ctx context.Context, input domain.AddressInput) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.setBillingAddress", setBillingAddressMutation, map[string]any{
		"input": input,
	}, "setOrderBillingAddress")
}

// SetCustomerInfo binds a customer to the active order. Fails with a
// backend error when a customer is already bound; callers treat that as
// non-fatal.
func (c *Client) SetCustomerInfo(ctx context.Context, input domain.CustomerInput) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.setCustomerInfo", setCustomerMutation, map[string]any{
		"input": input,
	}, "setCustomerForOrder")
}

// EligibleShippingMethods lists the delivery options for the active order.
func (c *Client) EligibleShippingMethods(ctx context.Context) ([]domain.ShippingMethod, error) {
	var methods []domain.ShippingMethod
	if err := c.do(ctx, "vendure.eligibleShippingMethods", eligibleShippingMethodsQuery, nil, "eligibleShippingMethods", &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// SetShippingMethod selects one of the eligible delivery options.
func (c *Client) SetShippingMethod(ctx context.Context, methodID string) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.setShippingMethod", setShippingMethodMutation, map[string]any{
		"shippingMethodId": methodID,
	}, "setOrderShippingMethod")
}

// TransitionState asks the backend to move the active order to the given
// lifecycle state.
func (c *Client) TransitionState(ctx context.Context, state string) (*domain.Order, error) {
	return c.mutateOrder(ctx, "vendure.transitionState", transitionStateMutation, map[string]any{
		"state": state,
	}, "transitionOrderToState")
}

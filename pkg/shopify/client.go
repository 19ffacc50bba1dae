// Package shopify is a minimal Storefront API client. The storefront only
// needs one operation: the cartCreate mutation, which creates a remote cart
// and returns its hosted checkout URL in a single round trip.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/multierr"

	"github.com/justocafe/storefront-api/pkg/config"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

const accessTokenHeader = "X-Shopify-Storefront-Access-Token"

const cartCreateMutation = `
mutation createCart($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart {
      id
      checkoutUrl
    }
    userErrors {
      field
      message
    }
  }
}`

var (
	errDomainRequired = errors.New("shopify domain is required")
	errTokenRequired  = errors.New("shopify storefront access token is required")
	errLoggerRequired = errors.New("shopify logger is required")
)

// Client talks to the Shopify Storefront GraphQL endpoint.
type Client struct {
	endpoint string
	token    string
	httpc    *http.Client
	logger   *logger.Logger
}

// NewClient validates the credentials and builds the Storefront client.
// A nil httpc falls back to a client with the transport's default timeout
// behavior; the checkout flow deliberately adds none of its own.
func NewClient(cfg config.ShopifyConfig, httpc *http.Client, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	domain := strings.TrimSpace(cfg.Domain)
	if domain == "" {
		return nil, errDomainRequired
	}
	token := strings.TrimSpace(cfg.StorefrontToken)
	if token == "" {
		return nil, errTokenRequired
	}
	version := strings.TrimSpace(cfg.APIVersion)
	if version == "" {
		version = "2024-01"
	}
	base := domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{
		endpoint: fmt.Sprintf("%s/api/%s/graphql.json", strings.TrimRight(base, "/"), version),
		token:    token,
		httpc:    httpc,
		logger:   logg,
	}, nil
}

// CartLine pairs an external merchandise reference with a quantity.
type CartLine struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}

// Cart is the remote cart created by the cartCreate mutation.
type Cart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
}

// UserError is a user-facing validation error returned by the provider.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type cartCreateResponse struct {
	Data struct {
		CartCreate struct {
			Cart       *Cart       `json:"cart"`
			UserErrors []UserError `json:"userErrors"`
		} `json:"cartCreate"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

// CartCreate creates a remote cart for the given lines and returns it with
// its checkout URL. Application-level rejections (GraphQL errors, userErrors,
// missing checkout URL) map to CHECKOUT_REJECTED with the provider messages
// kept verbatim; transport failures and non-2xx statuses map to
// CHECKOUT_UNREACHABLE. A 200 response is inspected for userErrors either way.
func (c *Client) CartCreate(ctx context.Context, lines []CartLine) (*Cart, error) {
	payload, err := json.Marshal(graphqlRequest{
		Query:     cartCreateMutation,
		Variables: map[string]any{"lines": lines},
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart create request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build cart create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	c.log(ctx, "request", map[string]any{"lines": len(lines)})

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log(ctx, "error", map[string]any{"error": err.Error()})
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutUnreachable, err, "shopify cart create")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutUnreachable, err, "read cart create response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log(ctx, "error", map[string]any{"status": resp.StatusCode})
		return nil, pkgerrors.Wrap(
			pkgerrors.CodeCheckoutUnreachable,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
			"shopify cart create",
		)
	}

	var decoded cartCreateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutRejected, err, "decode cart create response")
	}

	if len(decoded.Errors) > 0 {
		messages := make([]string, 0, len(decoded.Errors))
		var combined error
		for _, gqlErr := range decoded.Errors {
			messages = append(messages, gqlErr.Message)
			combined = multierr.Append(combined, errors.New(gqlErr.Message))
		}
		c.log(ctx, "error", map[string]any{"graphql_errors": messages})
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutRejected, combined, strings.Join(messages, ", ")).
			WithDetails(map[string]any{"messages": messages})
	}

	if userErrs := decoded.Data.CartCreate.UserErrors; len(userErrs) > 0 {
		messages := make([]string, 0, len(userErrs))
		var combined error
		for _, userErr := range userErrs {
			messages = append(messages, userErr.Message)
			combined = multierr.Append(combined, errors.New(userErr.Message))
		}
		c.log(ctx, "error", map[string]any{"user_errors": messages})
		return nil, pkgerrors.Wrap(pkgerrors.CodeCheckoutRejected, combined, strings.Join(messages, ", ")).
			WithDetails(map[string]any{"user_errors": userErrs})
	}

	cart := decoded.Data.CartCreate.Cart
	if cart == nil || strings.TrimSpace(cart.CheckoutURL) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeCheckoutRejected, "no checkout url returned")
	}

	c.log(ctx, "response", map[string]any{"cart_id": cart.ID})
	return cart, nil
}

func (c *Client) log(ctx context.Context, phase string, fields map[string]any) {
	if c == nil || c.logger == nil {
		return
	}
	logFields := map[string]any{
		"operation": "cart_create",
		"phase":     phase,
	}
	for k, v := range fields {
		logFields[k] = v
	}
	ctx = c.logger.WithFields(ctx, logFields)
	switch phase {
	case "error":
		c.logger.Warn(ctx, "shopify cart_create failed")
	default:
		c.logger.Info(ctx, fmt.Sprintf("shopify %s", phase))
	}
}

package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/domain/checkout"
	"github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

const accessTokenHeader = "X-Storefront-Access-Token"

// Client talks to the external commerce platform's storefront API. The
// platform is the sole source of truth for price, inventory and payment;
// this client only creates sessions and appends lines.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
	log         *logger.Logger
}

// NewClient keeps the configured timeout on the underlying http.Client; a
// zero timeout means the call waits indefinitely.
func NewClient(cfg config.CommerceConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		accessToken: cfg.AccessToken,
		log:         log,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type cartPayload struct {
	Cart *struct {
		ID          string `json:"id"`
		CheckoutURL string `json:"checkoutUrl"`
	} `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}

type graphqlResponse struct {
	Data struct {
		CartCreate   *cartPayload `json:"cartCreate"`
		CartLinesAdd *cartPayload `json:"cartLinesAdd"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) CreateCartSession(ctx context.Context, lines []checkout.LineInput) (*checkout.Session, error) {
	resp, err := c.execute(ctx, graphqlRequest{
		Query: cartCreateMutation,
		Variables: map[string]interface{}{
			"lines": lineInputs(lines),
		},
	})
	if err != nil {
		return nil, err
	}

	return sessionFromPayload(resp.Data.CartCreate)
}

func (c *Client) AddLinesToSession(ctx context.Context, sessionID string, lines []checkout.LineInput) (*checkout.Session, error) {
	resp, err := c.execute(ctx, graphqlRequest{
		Query: cartLinesAddMutation,
		Variables: map[string]interface{}{
			"cartId": sessionID,
			"lines":  lineInputs(lines),
		},
	})
	if err != nil {
		return nil, err
	}

	return sessionFromPayload(resp.Data.CartLinesAdd)
}

func (c *Client) execute(ctx context.Context, gql graphqlRequest) (*graphqlResponse, error) {
	body, err := json.Marshal(gql)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.accessToken)

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Platform request failed", "error", err, "endpoint", c.endpoint)
		return nil, fmt.Errorf("%w: %v", errors.ErrPlatformUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", errors.ErrPlatformUnavailable, err)
	}

	if httpResp.StatusCode != http.StatusOK {
		c.log.Error("Platform returned non-success status",
			"status", httpResp.StatusCode,
			"body", string(respBody),
		)
		return nil, fmt.Errorf("%w: status %d", errors.ErrPlatformUnavailable, httpResp.StatusCode)
	}

	var resp graphqlResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", errors.ErrPlatformUnavailable, err)
	}

	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrPlatformUnavailable, resp.Errors[0].Message)
	}

	return &resp, nil
}

func sessionFromPayload(payload *cartPayload) (*checkout.Session, error) {
	if payload == nil {
		return nil, fmt.Errorf("%w: empty response payload", errors.ErrPlatformUnavailable)
	}

	if len(payload.UserErrors) > 0 {
		fields := make(map[string]string, len(payload.UserErrors))
		for _, ue := range payload.UserErrors {
			fields[strings.Join(ue.Field, ".")] = ue.Message
		}
		return nil, errors.NewValidationError(fields)
	}

	if payload.Cart == nil {
		return nil, fmt.Errorf("%w: response carries no cart", errors.ErrPlatformUnavailable)
	}

	return checkout.NewSession(payload.Cart.ID, payload.Cart.CheckoutURL)
}

func lineInputs(lines []checkout.LineInput) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]interface{}{
			"merchandiseId": l.MerchandiseID,
			"quantity":      l.Quantity,
		})
	}
	return out
}

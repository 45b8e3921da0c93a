package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetisov/storefront-service/internal/config"
	"github.com/avetisov/storefront-service/internal/domain/checkout"
	domainErrors "github.com/avetisov/storefront-service/internal/domain/errors"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

func newTestClient(url string) *Client {
	return NewClient(config.CommerceConfig{
		Endpoint:       url,
		AccessToken:    "tok-test",
		TimeoutSeconds: 5,
	}, logger.NewLogger())
}

func decodeRequest(t *testing.T, r *http.Request) graphqlRequest {
	t.Helper()
	var req graphqlRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
	return req
}

func TestCreateCartSession(t *testing.T) {
	var gotHeader string
	var gotReq graphqlRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Storefront-Access-Token")
		gotReq = decodeRequest(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"cartCreate":{"cart":{"id":"gid://shop/Cart/77","checkoutUrl":"https://shop.example.com/checkouts/77"},"userErrors":[]}}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	session, err := client.CreateCartSession(context.Background(), []checkout.LineInput{
		{MerchandiseID: "gid://shop/ProductVariant/601", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-test", gotHeader)
	assert.Contains(t, gotReq.Query, "cartCreate")
	assert.Equal(t, "gid://shop/Cart/77", session.ID)
	assert.Equal(t, "https://shop.example.com/checkouts/77", session.CheckoutURL)

	lines, ok := gotReq.Variables["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 1)
	first := lines[0].(map[string]interface{})
	assert.Equal(t, "gid://shop/ProductVariant/601", first["merchandiseId"])
	assert.Equal(t, float64(2), first["quantity"])
}

func TestAddLinesToSession(t *testing.T) {
	var gotReq graphqlRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = decodeRequest(t, r)
		w.Write([]byte(`{"data":{"cartLinesAdd":{"cart":{"id":"gid://shop/Cart/77","checkoutUrl":"https://shop.example.com/checkouts/77"},"userErrors":[]}}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	session, err := client.AddLinesToSession(context.Background(), "gid://shop/Cart/77", []checkout.LineInput{
		{MerchandiseID: "gid://shop/ProductVariant/901", Quantity: 1},
	})
	require.NoError(t, err)

	assert.Contains(t, gotReq.Query, "cartLinesAdd")
	assert.Equal(t, "gid://shop/Cart/77", gotReq.Variables["cartId"])
	assert.Equal(t, "gid://shop/Cart/77", session.ID)
}

func TestUserErrorsBecomeValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"cartCreate":{"cart":null,"userErrors":[{"field":["lines","0","merchandiseId"],"message":"invalid merchandise id"}]}}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateCartSession(context.Background(), []checkout.LineInput{
		{MerchandiseID: "bogus", Quantity: 1},
	})

	var verr *domainErrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid merchandise id", verr.Fields["lines.0.merchandiseId"])
}

func TestNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateCartSession(context.Background(), nil)
	assert.ErrorIs(t, err, domainErrors.ErrPlatformUnavailable)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := newTestClient(srv.URL)
	_, err := client.CreateCartSession(context.Background(), nil)
	assert.ErrorIs(t, err, domainErrors.ErrPlatformUnavailable)
}

func TestTopLevelGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"access denied"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CreateCartSession(context.Background(), nil)
	require.ErrorIs(t, err, domainErrors.ErrPlatformUnavailable)
	assert.Contains(t, err.Error(), "access denied")
}

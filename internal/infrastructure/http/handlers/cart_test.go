package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avetisov/storefront-service/internal/application/commands"
	"github.com/avetisov/storefront-service/internal/pkg/generator"
	"github.com/avetisov/storefront-service/internal/pkg/logger"
)

func newCartHandler() (*CartHandler, *memCartStore) {
	store := newMemCartStore()
	log := logger.NewLogger()
	cmds := commands.NewCartHandler(testProduct(), store, noopTracker{}, log)
	return NewCartHandler(cmds, generator.NewTokenGenerator(), log), store
}

func TestHandleAddLineIssuesSessionToken(t *testing.T) {
	handler, _ := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"variant_id":"v-6ft","quantity":2}`))
	rec := httptest.NewRecorder()
	handler.HandleAddLine(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	token := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, token)
	assert.True(t, strings.HasPrefix(token, "ct_"))

	var snapshot commands.CartSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, "v-6ft", snapshot.Lines[0].VariantID)
	assert.Equal(t, 2, snapshot.Lines[0].Quantity)
	assert.Equal(t, "49.98", snapshot.Subtotal)
}

func TestHandleAddLineReusesClientToken(t *testing.T) {
	handler, store := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"variant_id":"v-6ft","quantity":1}`))
	req.Header.Set(SessionHeader, "ct_existing")
	rec := httptest.NewRecorder()
	handler.HandleAddLine(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ct_existing", rec.Header().Get(SessionHeader))
	assert.Contains(t, store.carts, "ct_existing")
}

func TestHandleAddLineUnknownVariant(t *testing.T) {
	handler, _ := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"variant_id":"v-nope","quantity":1}`))
	rec := httptest.NewRecorder()
	handler.HandleAddLine(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAddLineValidation(t *testing.T) {
	handler, _ := newCartHandler()

	req := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"quantity":1}`))
	rec := httptest.NewRecorder()
	handler.HandleAddLine(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleChangeQuantityFloorsAtOne(t *testing.T) {
	handler, _ := newCartHandler()

	add := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"variant_id":"v-9ft","quantity":1}`))
	add.Header.Set(SessionHeader, "ct_floor")
	handler.HandleAddLine(httptest.NewRecorder(), add)

	change := httptest.NewRequest(http.MethodPost, "/cart/lines/quantity", strings.NewReader(`{"variant_id":"v-9ft","delta":-5}`))
	change.Header.Set(SessionHeader, "ct_floor")
	rec := httptest.NewRecorder()
	handler.HandleChangeQuantity(rec, change)

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot commands.CartSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	require.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 1, snapshot.Lines[0].Quantity)
}

func TestHandleRemoveLine(t *testing.T) {
	handler, _ := newCartHandler()

	add := httptest.NewRequest(http.MethodPost, "/cart/lines", strings.NewReader(`{"variant_id":"v-6ft","quantity":1}`))
	add.Header.Set(SessionHeader, "ct_rm")
	handler.HandleAddLine(httptest.NewRecorder(), add)

	rm := httptest.NewRequest(http.MethodDelete, "/cart/lines/v-6ft", nil)
	rm.Header.Set(SessionHeader, "ct_rm")
	rec := httptest.NewRecorder()
	handler.HandleRemoveLine(rec, rm, "v-6ft")

	require.Equal(t, http.StatusOK, rec.Code)

	var snapshot commands.CartSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, "0.00", snapshot.Subtotal)
}

func TestHandleGetCartEmptyWithoutToken(t *testing.T) {
	handler, _ := newCartHandler()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.HandleGetCart(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(SessionHeader))

	var snapshot commands.CartSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snapshot))
	assert.Empty(t, snapshot.Lines)
	assert.False(t, snapshot.FreeShipping)
}

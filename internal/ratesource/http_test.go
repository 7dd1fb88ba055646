package ratesource_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/famled/family_finance_app/internal/ratesource"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"fromCurrency":"USD","toCurrency":"NPR","rate":"133.5"}]`))
	}))
	defer srv.Close()

	src := ratesource.NewHTTPSource(srv.URL, srv.Client())
	pairs, err := src.FetchRates(context.Background())

	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "USD", pairs[0].FromCurrency)
	assert.Equal(t, "NPR", pairs[0].ToCurrency)
	assert.True(t, pairs[0].Rate.Equal(decimal.RequireFromString("133.5")))
}

func TestHTTPSource_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := ratesource.NewHTTPSource(srv.URL, srv.Client())
	_, err := src.FetchRates(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource_MalformedBodyIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	src := ratesource.NewHTTPSource(srv.URL, srv.Client())
	_, err := src.FetchRates(context.Background())
	assert.Error(t, err)
}

package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimtoget/smeplug-go/client/smeplugtest"
)

const testKey = "sk_test_123"

func newTestClient(t *testing.T, opts ...Option) (*Client, *smeplugtest.Server) {
	t.Helper()
	srv := smeplugtest.NewServer(testKey)
	t.Cleanup(srv.Close)
	c, err := New(testKey, append([]Option{WithBaseURL(srv.BaseURL())}, opts...)...)
	require.NoError(t, err)
	return c, srv
}

func TestNew(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.Timeout())

	_, err = New("")
	assert.Error(t, err)
}

func TestEveryOperationHitsDocumentedEndpoint(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	amt := decimal.NewFromInt(100)

	cases := []struct {
		method string
		path   string
		keys   []string
		call   func() error
	}{
		{http.MethodGet, "/networks", nil, func() error { _, err := c.GetNetworks(ctx); return err }},
		{http.MethodGet, "/data/plans", nil, func() error { _, err := c.GetDataPlans(ctx); return err }},
		{http.MethodPost, "/data/purchase", []string{"network_id", "plan_id", "phone", "customer_reference", "async"}, func() error {
			_, err := c.PurchaseDataPlan(ctx, PurchaseDataRequest{NetworkID: "1", PlanID: "500", Phone: "08030000000"})
			return err
		}},
		{http.MethodPost, "/airtime/purchase", []string{"network_id", "amount", "phone", "customer_reference"}, func() error {
			_, err := c.PurchaseAirtime(ctx, PurchaseAirtimeRequest{NetworkID: "1", Amount: amt, Phone: "08030000000"})
			return err
		}},
		{http.MethodGet, "/transfer/banks", nil, func() error { _, err := c.GetTransferBanksList(ctx); return err }},
		{http.MethodPost, "/transfer/resolveaccount", []string{"bank_code", "account_number"}, func() error {
			_, err := c.ResolveAccountDetails(ctx, "000007", "0123456789")
			return err
		}},
		{http.MethodPost, "/transfer/send", []string{"bank_code", "account_number", "amount", "description", "customer_reference"}, func() error {
			_, err := c.BankTransfer(ctx, BankTransferRequest{BankCode: "000007", AccountNumber: "0123456789", Amount: amt})
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			srv.Reset()
			require.NoError(t, tc.call())

			got, ok := srv.LastRequest()
			require.True(t, ok)
			assert.Equal(t, tc.method, got.Method)
			assert.Equal(t, tc.path, got.Path)
			assert.Equal(t, "Bearer "+testKey, got.Header.Get("Authorization"))
			assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
			assert.Equal(t, "*/*", got.Header.Get("Accept"))

			if tc.method == http.MethodGet {
				assert.Empty(t, got.RawBody, "GET must not send a body")
				return
			}
			assert.Len(t, got.Body, len(tc.keys))
			for _, k := range tc.keys {
				assert.Contains(t, got.Body, k)
			}
		})
	}
}

func TestResults(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	networks, err := c.GetNetworks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "MTN", networks.String("1"))

	banks, err := c.GetTransferBanksList(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 3)
	assert.Equal(t, "000007", banks[0].String("code"))

	name, err := c.ResolveAccountDetails(ctx, "000007", "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "ADA OBI", name)

	receipt, err := c.BankTransfer(ctx, BankTransferRequest{
		BankCode:          "000007",
		AccountNumber:     "0123456789",
		Amount:            decimal.RequireFromString("2500.75"),
		Description:       "rent",
		CustomerReference: "ref-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", receipt.String("status"))
	assert.Equal(t, "ref-42", receipt.String("customer_reference"))
	assert.Equal(t, "2500.75", receipt.String("amount"))
}

func TestStatusFalseIsResponseError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail("/airtime/purchase", smeplugtest.Failure{Msg: "insufficient balance"})

	_, err := c.PurchaseAirtime(context.Background(), PurchaseAirtimeRequest{NetworkID: "1", Amount: decimal.NewFromInt(50), Phone: "080"})
	require.Error(t, err)
	assert.True(t, IsResponse(err))
	assert.False(t, IsTimeout(err))
	assert.Equal(t, "insufficient balance", Message(err))

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "/airtime/purchase", e.Op)
}

func TestWrongKeyIsResponseError(t *testing.T) {
	srv := smeplugtest.NewServer(testKey)
	defer srv.Close()
	c, err := New("other-key", WithBaseURL(srv.BaseURL()))
	require.NoError(t, err)

	_, err = c.GetNetworks(context.Background())
	assert.True(t, IsResponse(err))
	assert.Equal(t, "Unauthenticated.", Message(err))
}

func TestNonEnvelopeBodyIsResponseError(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Fail("/data/plans", smeplugtest.Failure{StatusCode: http.StatusServiceUnavailable, RawBody: "upstream down"})

	_, err := c.GetDataPlans(context.Background())
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.True(t, IsResponse(err))
	assert.Equal(t, http.StatusServiceUnavailable, e.StatusCode)
	assert.Equal(t, "upstream down", e.Body)
}

func TestTimeoutOnEveryEndpoint(t *testing.T) {
	c, srv := newTestClient(t, WithHTTPTimeout(50*time.Millisecond))
	for _, p := range []string{"/networks", "/data/plans", "/data/purchase", "/airtime/purchase", "/transfer/banks", "/transfer/resolveaccount", "/transfer/send"} {
		srv.Fail(p, smeplugtest.Failure{Delay: time.Second})
	}
	ctx := context.Background()
	amt := decimal.NewFromInt(1)

	errs := []error{}
	_, err := c.GetNetworks(ctx)
	errs = append(errs, err)
	_, err = c.GetDataPlans(ctx)
	errs = append(errs, err)
	_, err = c.PurchaseDataPlan(ctx, PurchaseDataRequest{NetworkID: "1", PlanID: "1", Phone: "1"})
	errs = append(errs, err)
	_, err = c.PurchaseAirtime(ctx, PurchaseAirtimeRequest{NetworkID: "1", Amount: amt, Phone: "1"})
	errs = append(errs, err)
	_, err = c.GetTransferBanksList(ctx)
	errs = append(errs, err)
	_, err = c.ResolveAccountDetails(ctx, "1", "1")
	errs = append(errs, err)
	_, err = c.BankTransfer(ctx, BankTransferRequest{BankCode: "1", AccountNumber: "1", Amount: amt})
	errs = append(errs, err)

	for i, err := range errs {
		assert.Truef(t, IsTimeout(err), "call %d: expected timeout, got %v", i, err)
		assert.Truef(t, errors.Is(err, ErrTimeout), "call %d", i)
	}
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := smeplugtest.NewServer(testKey)
	base := srv.BaseURL()
	srv.Close()

	c, err := New(testKey, WithBaseURL(base))
	require.NoError(t, err)
	_, err = c.GetNetworks(context.Background())
	assert.True(t, IsRequest(err), "got %v", err)
	assert.False(t, IsTimeout(err))
}

func TestInvalidRequestSendsNothing(t *testing.T) {
	c, srv := newTestClient(t)
	_, err := c.BankTransfer(context.Background(), BankTransferRequest{BankCode: "000007", AccountNumber: "1"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, srv.Requests())
}

func TestConcurrentUse(t *testing.T) {
	c, srv := newTestClient(t)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.GetNetworks(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Len(t, srv.Requests(), 16)
}

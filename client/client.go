package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aimtoget/smeplug-go/client/internal/api"
	"github.com/aimtoget/smeplug-go/client/internal/types"
)

const (
	// DefaultBaseURL is the production SmePlug API root.
	DefaultBaseURL = "https://smeplug.ng/api/v1"

	// DefaultTimeout bounds one whole request, connection included.
	DefaultTimeout = 50 * time.Second
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the SmePlug API on behalf of one API key. It holds no
// mutable state after New returns and is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string // sent as a bearer token on every request
	debug   bool
	http    *http.Client
	rest    *resty.Client
}

// New constructs a Client for apiKey. Additional options can be provided
// via functional arguments.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey cannot be empty")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.debug {
		c.http.Transport = &debugTransport{base: baseTransport(c.http)}
	}
	// Installed outermost; debugTransport redacts the header it adds.
	c.wrapTransportWithAPIKey()

	c.rest = resty.NewWithClient(c.http).SetBaseURL(c.baseURL)
	return c, nil
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration { return c.http.Timeout }

// wrapTransportWithAPIKey wraps the HTTP client's transport to automatically
// add the Authorization header to all requests using the configured API key.
func (c *Client) wrapTransportWithAPIKey() {
	c.http.Transport = &apiKeyTransport{
		base:   baseTransport(c.http),
		apiKey: c.apiKey,
	}
}

func baseTransport(hc *http.Client) http.RoundTripper {
	if hc.Transport == nil {
		return http.DefaultTransport
	}
	return hc.Transport
}

// apiKeyTransport wraps an http.RoundTripper to automatically add Authorization header
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", "Bearer "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// --------------------------------------------------------------------
// Catalog operations
// --------------------------------------------------------------------

// GetNetworks returns the mobile networks, keyed by network ID.
func (c *Client) GetNetworks(ctx context.Context) (Object, error) {
	return observe(api.PathNetworks, func() (Object, error) {
		return api.GetNetworks(ctx, c.rest)
	})
}

// GetDataPlans returns all data plans as the provider groups them.
func (c *Client) GetDataPlans(ctx context.Context) (Object, error) {
	return observe(api.PathDataPlans, func() (Object, error) {
		return api.GetDataPlans(ctx, c.rest)
	})
}

// --------------------------------------------------------------------
// Purchases
// --------------------------------------------------------------------

// PurchaseDataPlan buys plan req.PlanID on req.NetworkID for req.Phone and
// returns the provider's transaction data.
func (c *Client) PurchaseDataPlan(ctx context.Context, req PurchaseDataRequest) (Object, error) {
	return observe(api.PathDataPurchase, func() (Object, error) {
		return api.PurchaseDataPlan(ctx, c.rest, req)
	})
}

// PurchaseAirtime tops up req.Phone by req.Amount naira.
func (c *Client) PurchaseAirtime(ctx context.Context, req PurchaseAirtimeRequest) (Object, error) {
	return observe(api.PathAirtime, func() (Object, error) {
		return api.PurchaseAirtime(ctx, c.rest, req)
	})
}

// --------------------------------------------------------------------
// Transfers
// --------------------------------------------------------------------

// GetTransferBanksList returns the banks that can receive transfers.
func (c *Client) GetTransferBanksList(ctx context.Context) ([]Object, error) {
	return observe(api.PathTransferBanks, func() ([]Object, error) {
		return api.GetTransferBanks(ctx, c.rest)
	})
}

// ResolveAccountDetails returns the name on the account, nothing else.
func (c *Client) ResolveAccountDetails(ctx context.Context, bankCode, accountNumber string) (string, error) {
	return observe(api.PathResolveAccount, func() (string, error) {
		return api.ResolveAccount(ctx, c.rest, types.ResolveAccountRequest{
			BankCode:      bankCode,
			AccountNumber: accountNumber,
		})
	})
}

// BankTransfer sends req.Amount to the given account.
func (c *Client) BankTransfer(ctx context.Context, req BankTransferRequest) (Object, error) {
	return observe(api.PathTransferSend, func() (Object, error) {
		return api.SendTransfer(ctx, c.rest, req)
	})
}

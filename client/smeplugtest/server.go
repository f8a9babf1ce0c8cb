// Package smeplugtest provides an in-process fake of the SmePlug API for
// tests. It serves the seven endpoints the SDK uses under /api/v1, checks the
// bearer token, records every request and can be told to fail an endpoint.
//
//	srv := smeplugtest.NewServer("test-key")
//	defer srv.Close()
//	c, _ := client.New("test-key", client.WithBaseURL(srv.BaseURL()))
package smeplugtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/aimtoget/smeplug-go/client/internal/api"
)

// Prefix is the path the fake API is mounted on.
const Prefix = "/api/v1"

// Request is one call as the server received it.
type Request struct {
	Method  string
	Path    string // relative to Prefix, e.g. "/transfer/send"
	Query   url.Values
	Header  http.Header
	RawBody []byte
	Body    map[string]any // decoded JSON body with json.Number values; nil for GET
}

// Failure makes an endpoint misbehave.
type Failure struct {
	// Msg is returned as {"status":false,"msg":Msg}.
	Msg string
	// StatusCode overrides the HTTP status (default 200).
	StatusCode int
	// RawBody, when set, is written verbatim instead of an envelope.
	RawBody string
	// Delay stalls the response, e.g. to trigger client timeouts.
	Delay time.Duration
}

// Server is a running fake. Fixture fields may be changed between calls.
type Server struct {
	*httptest.Server

	APIKey string

	mu        sync.Mutex
	Networks  map[string]any
	DataPlans map[string]any
	Banks     []map[string]any
	// Accounts maps "bankCode:accountNumber" to the holder's name.
	Accounts map[string]string
	failures map[string]Failure
	requests []Request
}

// NewServer starts a fake that accepts apiKey.
func NewServer(apiKey string) *Server {
	s := &Server{
		APIKey: apiKey,
		Networks: map[string]any{
			"1": "MTN",
			"2": "Airtel",
			"3": "9mobile",
			"4": "Glo",
		},
		DataPlans: map[string]any{
			"1": []any{
				map[string]any{"id": "500", "name": "500MB - 30 days", "price": "135"},
				map[string]any{"id": "501", "name": "1GB - 30 days", "price": "270"},
			},
			"2": []any{
				map[string]any{"id": "600", "name": "750MB - 14 days", "price": "450"},
			},
		},
		Banks: []map[string]any{
			{"code": "000007", "name": "Fidelity Bank"},
			{"code": "000013", "name": "GTBank"},
			{"code": "000014", "name": "Access Bank"},
		},
		Accounts: map[string]string{
			"000007:0123456789": "ADA OBI",
		},
		failures: map[string]Failure{},
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// BaseURL is the value to pass to client.WithBaseURL.
func (s *Server) BaseURL() string { return s.URL + Prefix }

// Fail makes every later call to path fail with f until Reset.
func (s *Server) Fail(path string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = f
}

// Reset clears failures and recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]Failure{}
	s.requests = nil
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) router() http.Handler {
	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusNotFound, map[string]any{"status": false, "msg": "Not found"})
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusMethodNotAllowed, map[string]any{"status": false, "msg": "Method not allowed"})
	})

	r := mux.NewRouter()
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notAllowed

	// mux resolves misses inside the subrouter, so it needs its own handlers.
	v1 := r.PathPrefix(Prefix).Subrouter()
	v1.NotFoundHandler = notFound
	v1.MethodNotAllowedHandler = notAllowed
	v1.Use(s.record, s.authenticate, s.injectFailure)

	v1.HandleFunc(api.PathNetworks, s.handleNetworks).Methods(http.MethodGet)
	v1.HandleFunc(api.PathDataPlans, s.handleDataPlans).Methods(http.MethodGet)
	v1.HandleFunc(api.PathDataPurchase, s.handleDataPurchase).Methods(http.MethodPost)
	v1.HandleFunc(api.PathAirtime, s.handleAirtime).Methods(http.MethodPost)
	v1.HandleFunc(api.PathTransferBanks, s.handleBanks).Methods(http.MethodGet)
	v1.HandleFunc(api.PathResolveAccount, s.handleResolve).Methods(http.MethodPost)
	v1.HandleFunc(api.PathTransferSend, s.handleTransfer).Methods(http.MethodPost)
	return r
}

// --------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------

type bodyKey struct{}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(raw))

		rec := Request{
			Method:  r.Method,
			Path:    r.URL.Path[len(Prefix):],
			Query:   r.URL.Query(),
			Header:  r.Header.Clone(),
			RawBody: raw,
		}
		if len(raw) > 0 {
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.UseNumber()
			_ = dec.Decode(&rec.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			writeEnvelope(w, http.StatusUnauthorized, map[string]any{"status": false, "msg": "Unauthenticated."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.URL.Path[len(Prefix):]]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if f.Delay > 0 {
			select {
			case <-time.After(f.Delay):
			case <-r.Context().Done():
				return
			}
		}
		code := f.StatusCode
		if code == 0 {
			code = http.StatusOK
		}
		switch {
		case f.RawBody != "":
			w.WriteHeader(code)
			_, _ = io.WriteString(w, f.RawBody)
		case f.Msg != "":
			writeEnvelope(w, code, map[string]any{"status": false, "msg": f.Msg})
		default:
			// delay only
			next.ServeHTTP(w, r)
		}
	})
}

// --------------------------------------------------------------------
// Handlers
// --------------------------------------------------------------------

func (s *Server) handleNetworks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "networks": s.Networks})
}

func (s *Server) handleDataPlans(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "data": s.DataPlans})
}

func (s *Server) handleBanks(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "banks": s.Banks})
}

func (s *Server) handleDataPurchase(w http.ResponseWriter, r *http.Request) {
	body, ok := requireFields(w, r, "network_id", "plan_id", "phone")
	if !ok {
		return
	}
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "data": receipt(body, "successful")})
}

func (s *Server) handleAirtime(w http.ResponseWriter, r *http.Request) {
	body, ok := requireFields(w, r, "network_id", "amount", "phone")
	if !ok {
		return
	}
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "data": receipt(body, "successful")})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	body, ok := requireFields(w, r, "bank_code", "account_number")
	if !ok {
		return
	}
	s.mu.Lock()
	name, found := s.Accounts[str(body["bank_code"])+":"+str(body["account_number"])]
	s.mu.Unlock()
	if !found {
		writeEnvelope(w, http.StatusOK, map[string]any{"status": false, "msg": "Could not resolve account"})
		return
	}
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "name": name})
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	body, ok := requireFields(w, r, "bank_code", "account_number", "amount")
	if !ok {
		return
	}
	writeEnvelope(w, http.StatusOK, map[string]any{"status": true, "data": receipt(body, "pending")})
}

// --------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------

func requireFields(w http.ResponseWriter, r *http.Request, fields ...string) (map[string]any, bool) {
	var body map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, map[string]any{"status": false, "msg": "Invalid JSON body"})
		return nil, false
	}
	for _, f := range fields {
		if v, ok := body[f]; !ok || v == nil || v == "" {
			writeEnvelope(w, http.StatusOK, map[string]any{"status": false, "msg": "The " + f + " field is required."})
			return nil, false
		}
	}
	return body, true
}

// receipt echoes the request back as transaction data.
func receipt(body map[string]any, status string) map[string]any {
	out := map[string]any{"status": status}
	for k, v := range body {
		if v != nil {
			out[k] = v
		}
	}
	if out["customer_reference"] == nil {
		out["customer_reference"] = uuid.NewString()
	}
	out["reference"] = uuid.NewString()
	return out
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func writeEnvelope(w http.ResponseWriter, code int, v map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

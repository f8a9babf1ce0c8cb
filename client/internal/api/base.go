package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/aimtoget/smeplug-go/client/internal/errors"
	"github.com/aimtoget/smeplug-go/client/internal/types"
)

// Endpoint paths, relative to the client's base URL.
const (
	PathNetworks       = "/networks"
	PathDataPlans      = "/data/plans"
	PathDataPurchase   = "/data/purchase"
	PathAirtime        = "/airtime/purchase"
	PathTransferBanks  = "/transfer/banks"
	PathResolveAccount = "/transfer/resolveaccount"
	PathTransferSend   = "/transfer/send"
)

// Do performs exactly one call and returns the decoded envelope. The resty
// client carries the base URL, timeout and the Authorization transport; Do
// only shapes the request and classifies the outcome.
//
// GET payloads go into the query string and never into a body. Every other
// method sends the payload as a JSON body.
func Do(ctx context.Context, rc *resty.Client, method, path string, payload types.Payload) (*types.Envelope, error) {
	if err := ctx.Err(); err != nil {
		return nil, apierrors.ClassifyTransportError(path, err)
	}

	req := rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "*/*")

	if method == http.MethodGet {
		if len(payload) > 0 {
			req.SetQueryParamsFromValues(queryValues(payload))
		}
	} else if payload != nil {
		req.SetBody(map[string]any(payload))
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, apierrors.ClassifyTransportError(path, err)
	}

	body := resp.Body()
	env, err := types.DecodeEnvelope(body)
	if err != nil {
		return nil, apierrors.NewHTTPError(path, resp.StatusCode(), string(body), err)
	}
	if !env.Status {
		return nil, apierrors.NewEnvelopeError(path, resp.StatusCode(), string(env.Msg))
	}
	return env, nil
}

// decodeField unpacks the named payload field of a successful envelope. A
// missing or null field is a Response error: status=true without the
// promised payload is not a usable answer.
func decodeField(path, field string, raw json.RawMessage, v any) error {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return apierrors.NewMissingFieldError(path, http.StatusOK, field)
	}
	if err := types.DecodeField(raw, v); err != nil {
		return apierrors.NewHTTPError(path, http.StatusOK, string(raw), err)
	}
	return nil
}

func queryValues(p types.Payload) url.Values {
	q := make(url.Values, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	return q
}

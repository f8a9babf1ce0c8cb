package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/aimtoget/smeplug-go/client/internal/types"
)

// PurchaseDataPlan buys a data plan for a phone number.
func PurchaseDataPlan(ctx context.Context, rc *resty.Client, req types.PurchaseDataRequest) (types.Object, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return postForData(ctx, rc, PathDataPurchase, req.Payload())
}

// PurchaseAirtime tops up a phone number.
func PurchaseAirtime(ctx context.Context, rc *resty.Client, req types.PurchaseAirtimeRequest) (types.Object, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return postForData(ctx, rc, PathAirtime, req.Payload())
}

func postForData(ctx context.Context, rc *resty.Client, path string, payload types.Payload) (types.Object, error) {
	env, err := Do(ctx, rc, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	var data types.Object
	if err := decodeField(path, "data", env.Data, &data); err != nil {
		return nil, err
	}
	return data, nil
}

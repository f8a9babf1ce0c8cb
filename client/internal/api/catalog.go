package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/aimtoget/smeplug-go/client/internal/types"
)

// GetNetworks lists the mobile networks the provider sells on.
func GetNetworks(ctx context.Context, rc *resty.Client) (types.Object, error) {
	env, err := Do(ctx, rc, http.MethodGet, PathNetworks, nil)
	if err != nil {
		return nil, err
	}
	var networks types.Object
	if err := decodeField(PathNetworks, "networks", env.Networks, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// GetDataPlans lists data plans grouped the way the provider returns them.
func GetDataPlans(ctx context.Context, rc *resty.Client) (types.Object, error) {
	env, err := Do(ctx, rc, http.MethodGet, PathDataPlans, nil)
	if err != nil {
		return nil, err
	}
	var plans types.Object
	if err := decodeField(PathDataPlans, "data", env.Data, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/aimtoget/smeplug-go/client/internal/types"
)

// GetTransferBanks lists the banks that accept transfers.
func GetTransferBanks(ctx context.Context, rc *resty.Client) ([]types.Object, error) {
	env, err := Do(ctx, rc, http.MethodGet, PathTransferBanks, nil)
	if err != nil {
		return nil, err
	}
	var banks []types.Object
	if err := decodeField(PathTransferBanks, "banks", env.Banks, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// ResolveAccount returns the account holder's name.
func ResolveAccount(ctx context.Context, rc *resty.Client, req types.ResolveAccountRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	env, err := Do(ctx, rc, http.MethodPost, PathResolveAccount, req.Payload())
	if err != nil {
		return "", err
	}
	var name string
	if err := decodeField(PathResolveAccount, "name", env.Name, &name); err != nil {
		return "", err
	}
	return name, nil
}

// SendTransfer initiates a bank transfer.
func SendTransfer(ctx context.Context, rc *resty.Client, req types.BankTransferRequest) (types.Object, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return postForData(ctx, rc, PathTransferSend, req.Payload())
}

package client

import "github.com/aimtoget/smeplug-go/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	PurchaseDataRequest    = types.PurchaseDataRequest
	PurchaseAirtimeRequest = types.PurchaseAirtimeRequest
	BankTransferRequest    = types.BankTransferRequest

	// Results
	Object = types.Object
)

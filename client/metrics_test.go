package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/aimtoget/smeplug-go/client/smeplugtest"
)

func TestObserveCountsOutcomes(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	okBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("/transfer/banks", outcomeOK))
	failBefore := testutil.ToFloat64(requestsTotal.WithLabelValues("/transfer/banks", outcomeResponse))

	_, err := c.GetTransferBanksList(ctx)
	assert.NoError(t, err)
	srv.Fail("/transfer/banks", smeplugtest.Failure{Msg: "down"})
	_, err = c.GetTransferBanksList(ctx)
	assert.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("/transfer/banks", outcomeOK)))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(requestsTotal.WithLabelValues("/transfer/banks", outcomeResponse)))
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, outcomeOK, outcomeOf(nil))
	assert.Equal(t, outcomeInvalid, outcomeOf(fmt.Errorf("x: %w", ErrInvalidRequest)))
	assert.Equal(t, outcomeTimeout, outcomeOf(ErrTimeout))
	assert.Equal(t, outcomeResponse, outcomeOf(ErrResponse))
	assert.Equal(t, outcomeRequest, outcomeOf(ErrRequest))
}

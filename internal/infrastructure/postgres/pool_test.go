package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "127.0.0.1", lookupIPv4(ctx, "127.0.0.1"))
	assert.Empty(t, lookupIPv4(ctx, "::1"))
}

func TestRetryDelay_CreceYAcota(t *testing.T) {
	base := 10 * time.Millisecond
	for attempt := 1; attempt <= 12; attempt++ {
		n := attempt
		if n > 10 {
			n = 10
		}
		d := retryDelay(base, attempt)
		upper := base << (n - 1)
		assert.GreaterOrEqual(t, d, upper/2)
		assert.Less(t, d, upper)
	}
}

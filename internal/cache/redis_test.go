package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Without Init the package-level client is nil; every helper must
// degrade to a miss or a no-op instead of panicking.
func TestNilClientDegradesGracefully(t *testing.T) {
	ctx := context.Background()

	data, ok := GetOpenStatement(ctx, 42, false)
	assert.False(t, ok)
	assert.Nil(t, data)

	assert.NotPanics(t, func() {
		SetOpenStatement(ctx, 42, true, []byte(`{"id":1}`))
		InvalidateOpenStatement(ctx, 42)
	})

	data, ok = GetDashboard(ctx)
	assert.False(t, ok)
	assert.Nil(t, data)

	balance, ok := GetCustomerBalance(ctx, 7)
	assert.False(t, ok)
	assert.Zero(t, balance)

	assert.NotPanics(t, func() {
		SetDashboard(ctx, []byte(`{}`))
		InvalidateDashboard(ctx)
		SetCustomerBalance(ctx, 7, 120.50)
		InvalidateCustomerBalance(ctx, 7)
	})
}

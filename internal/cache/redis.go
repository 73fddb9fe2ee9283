package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	DashboardKey          = "billing:dashboard"
	CustomerBalanceKeyFmt = "billing:waste:balance:%d"
	LeaseStatementKeyFmt  = "billing:land:open:%d:%t"
	dashboardTTL          = 2 * time.Minute
	customerBalanceTTL    = 5 * time.Minute
	openStatementTTL      = 2 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The cache is optional; callers
// keep working against the database when it is unavailable.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetDashboard returns the cached dashboard summary JSON if available
func GetDashboard(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, DashboardKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetDashboard caches the dashboard summary JSON
func SetDashboard(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, DashboardKey, data, dashboardTTL)
}

// InvalidateDashboard drops the dashboard summary after any billing write
func InvalidateDashboard(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DashboardKey)
}

// GetCustomerBalance returns a cached outstanding balance for a waste customer
func GetCustomerBalance(ctx context.Context, customerID int) (float64, bool) {
	if client == nil {
		return 0, false
	}
	balance, err := client.Get(ctx, fmt.Sprintf(CustomerBalanceKeyFmt, customerID)).Float64()
	if err != nil {
		return 0, false
	}
	return balance, true
}

// SetCustomerBalance caches a waste customer's outstanding balance
func SetCustomerBalance(ctx context.Context, customerID int, balance float64) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(CustomerBalanceKeyFmt, customerID), balance, customerBalanceTTL)
}

// InvalidateCustomerBalance drops a customer's cached balance after a
// payment or invoice write
func InvalidateCustomerBalance(ctx context.Context, customerID int) {
	if client == nil {
		return
	}
	client.Del(ctx, fmt.Sprintf(CustomerBalanceKeyFmt, customerID))
}

// GetOpenStatement returns the cached open-statement view JSON for a
// lease, keyed by whether the fine window is capped to the lease end date
func GetOpenStatement(ctx context.Context, leaseID int, capToEndDate bool) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(LeaseStatementKeyFmt, leaseID, capToEndDate)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetOpenStatement caches the open-statement view JSON for a lease
func SetOpenStatement(ctx context.Context, leaseID int, capToEndDate bool, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(LeaseStatementKeyFmt, leaseID, capToEndDate), data, openStatementTTL)
}

// InvalidateOpenStatement drops both cached open-statement views for a
// lease after a statement or payment write
func InvalidateOpenStatement(ctx context.Context, leaseID int) {
	if client == nil {
		return
	}
	client.Del(ctx,
		fmt.Sprintf(LeaseStatementKeyFmt, leaseID, false),
		fmt.Sprintf(LeaseStatementKeyFmt, leaseID, true),
	)
}

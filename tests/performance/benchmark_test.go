package performance

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/orgmaster/pkg/auth"
	"github.com/platinummonkey/orgmaster/pkg/observability"
	"github.com/platinummonkey/orgmaster/pkg/orgs"
	"github.com/platinummonkey/orgmaster/pkg/partition"
	"github.com/platinummonkey/orgmaster/pkg/storage"
	"github.com/platinummonkey/orgmaster/pkg/storage/cache"
)

func newBenchService(b *testing.B, store orgs.Store) *orgs.Service {
	b.Helper()

	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hasher := auth.NewBcryptHasher(4)

	return orgs.NewService(store, partition.NewManager(store, logger), hasher, logger, metrics)
}

// BenchmarkOrganizationCreation measures the full provisioning path:
// partition, admin (bcrypt) and catalog entry.
func BenchmarkOrganizationCreation(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	service := newBenchService(b, storage.NewMemoryStore())
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := service.Create(ctx, orgs.CreateRequest{
			Name:   fmt.Sprintf("benchmark-org-%d", i),
			Email:  fmt.Sprintf("admin-%d@bench.test", i),
			Secret: "benchmark-secret",
		})
		if err != nil {
			b.Errorf("Failed to create organization: %v", err)
		}
	}
}

// BenchmarkOrganizationRetrieval measures uncached catalog reads.
func BenchmarkOrganizationRetrieval(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	service := newBenchService(b, storage.NewMemoryStore())
	ctx := context.Background()

	if _, err := service.Create(ctx, orgs.CreateRequest{
		Name:   "bench-read",
		Email:  "admin@bench.test",
		Secret: "benchmark-secret",
	}); err != nil {
		b.Fatalf("Failed to create organization: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Get(ctx, "bench-read"); err != nil {
			b.Errorf("Failed to get organization: %v", err)
		}
	}
}

// BenchmarkOrganizationRetrievalWithCache measures reads through the L1/L2
// caching decorator.
func BenchmarkOrganizationRetrievalWithCache(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	mr := miniredis.RunT(b)
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)

	cfg := storage.DefaultConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.CacheEnabled = true

	cached, err := cache.New(storage.NewMemoryStore(), cfg, logger)
	if err != nil {
		b.Fatalf("Failed to create cache: %v", err)
	}

	service := newBenchService(b, cached)
	ctx := context.Background()

	if _, err := service.Create(ctx, orgs.CreateRequest{
		Name:   "bench-cached",
		Email:  "admin@bench.test",
		Secret: "benchmark-secret",
	}); err != nil {
		b.Fatalf("Failed to create organization: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := service.Get(ctx, "bench-cached"); err != nil {
			b.Errorf("Failed to get organization: %v", err)
		}
	}
}

// BenchmarkPartitionRename measures copy-then-drop migration of a populated
// partition. Each iteration renames back and forth, so the cost per rename
// is half the reported value.
func BenchmarkPartitionRename(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	store := storage.NewMemoryStore()
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	manager := partition.NewManager(store, logger)
	ctx := context.Background()

	if err := manager.Create(ctx, "org_bench_a"); err != nil {
		b.Fatalf("Failed to create partition: %v", err)
	}

	records := make([]orgs.Record, 100)
	now := time.Now().UTC()
	for i := range records {
		records[i] = orgs.Record{
			Data:      map[string]any{"seq": i},
			CreatedAt: now,
		}
	}
	if err := store.InsertRecords(ctx, "org_bench_a", records); err != nil {
		b.Fatalf("Failed to seed records: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := manager.Rename(ctx, "org_bench_a", "org_bench_b"); err != nil {
			b.Errorf("Failed to rename partition: %v", err)
		}
		if _, err := manager.Rename(ctx, "org_bench_b", "org_bench_a"); err != nil {
			b.Errorf("Failed to rename partition back: %v", err)
		}
	}
}

// BenchmarkLogin measures credential verification and token issuance.
func BenchmarkLogin(b *testing.B) {
	if testing.Short() {
		b.Skip("Skipping benchmark in short mode")
	}

	store := storage.NewMemoryStore()
	logger := observability.NewLogger(observability.ErrorLevel, io.Discard)
	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hasher := auth.NewBcryptHasher(4)
	issuer := auth.NewTokenIssuer("bench-secret", time.Hour)

	orgService := orgs.NewService(store, partition.NewManager(store, logger), hasher, logger, metrics)
	authService := auth.NewService(store, hasher, issuer, logger)
	ctx := context.Background()

	if _, err := orgService.Create(ctx, orgs.CreateRequest{
		Name:   "bench-login",
		Email:  "admin@bench.test",
		Secret: "benchmark-secret",
	}); err != nil {
		b.Fatalf("Failed to create organization: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := authService.Login(ctx, "admin@bench.test", "benchmark-secret"); err != nil {
			b.Errorf("Failed to login: %v", err)
		}
	}
}

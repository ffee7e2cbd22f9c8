package workload

import (
	"context"
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	"strings"
	"testing"
)

func smallConfig() common.WorkloadConfig {
	cfg := common.DefaultWorkloadConfig()
	cfg.Users = 20
	cfg.PostsPerUser = 3
	cfg.FollowsPerUser = 4
	cfg.Workers = 4
	cfg.Operations = 2000
	cfg.Seed = 42
	return cfg
}

func TestRunSeedsAndVerifies(t *testing.T) {
	cfg := smallConfig()
	store := memstore.NewMemStore(nil)

	runner, err := NewRunner(store, cfg)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Violations) != 0 {
		t.Errorf("Expected no violations, got %v", report.Violations)
	}
	if !report.LikesVerified {
		t.Errorf("Expected likes to be verified for a small run")
	}
	if report.Info.Users != cfg.Users {
		t.Errorf("Expected %d users, got %d", cfg.Users, report.Info.Users)
	}
	if report.Info.Posts < cfg.Users*cfg.PostsPerUser {
		t.Errorf("Expected at least %d posts, got %d", cfg.Users*cfg.PostsPerUser, report.Info.Posts)
	}

	// seeding
	if op, ok := report.Operation("seed-user"); !ok || op.Count != int64(cfg.Users) {
		t.Errorf("Expected %d seed-user calls, got %+v", cfg.Users, op)
	}
	if op, ok := report.Operation("seed-post"); !ok || op.Count != int64(cfg.Users*cfg.PostsPerUser) {
		t.Errorf("Expected %d seed-post calls, got %+v", cfg.Users*cfg.PostsPerUser, op)
	}
	if op, ok := report.Operation("seed-follow"); !ok || op.NoOps != 0 {
		t.Errorf("Expected seeded follows to succeed, got %+v", op)
	}

	// mixed workload
	var mixed int64
	for _, op := range report.Operations {
		if !strings.HasPrefix(op.Name, "seed-") {
			mixed += op.Count
		}
	}
	if mixed != int64(cfg.Operations) {
		t.Errorf("Expected %d mixed operations, got %d", cfg.Operations, mixed)
	}

	if report.Posts.Min < float64(cfg.PostsPerUser) {
		t.Errorf("Expected every user to own at least %d posts, got min %.0f", cfg.PostsPerUser, report.Posts.Min)
	}
	if !strings.Contains(report.String(), "VERIFICATION") {
		t.Errorf("Expected report to contain a verification section")
	}
}

func TestRunOnlyChecksOwnData(t *testing.T) {
	store := memstore.NewMemStore(nil)

	// data not created by the runner, with a dangling follow edge
	outsider := store.CreateUser("outsider", "", "")
	store.Follow(outsider.ID, 9999)

	runner, err := NewRunner(store, smallConfig())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(report.Violations) != 0 {
		t.Errorf("Expected no violations, got %v", report.Violations)
	}
}

func TestSingleOperationMix(t *testing.T) {
	cfg := smallConfig()
	cfg.Mix = common.OperationMix{Like: 1}

	runner, err := NewRunner(memstore.NewMemStore(nil), cfg)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	op, ok := report.Operation(OpLike)
	if !ok || op.Count != int64(cfg.Operations) {
		t.Errorf("Expected %d like calls, got %+v", cfg.Operations, op)
	}
	if _, ok := report.Operation(OpFeed); ok {
		t.Errorf("Expected no feed calls")
	}
	if report.Info.Likes != int(op.Count-op.NoOps) {
		t.Errorf("Expected %d likes, got %d", op.Count-op.NoOps, report.Info.Likes)
	}
}

func TestNoOperations(t *testing.T) {
	cfg := smallConfig()
	cfg.Operations = 0

	runner, err := NewRunner(memstore.NewMemStore(nil), cfg)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	report, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, op := range report.Operations {
		if !strings.HasPrefix(op.Name, "seed-") {
			t.Errorf("Unexpected operation %s", op.Name)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 0
	if _, err := NewRunner(memstore.NewMemStore(nil), cfg); err == nil {
		t.Errorf("Expected error for zero workers")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner, err := NewRunner(memstore.NewMemStore(nil), smallConfig())
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	if _, err := runner.Run(ctx); err == nil {
		t.Errorf("Expected error for cancelled context")
	}
}

func TestSeedIsDeterministicPerWorker(t *testing.T) {
	cfg := smallConfig()
	runner, err := NewRunner(memstore.NewMemStore(nil), cfg)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}
	a, b := runner.rng(1), runner.rng(1)
	for i := 0; i < 10; i++ {
		if a.Int63() != b.Int63() {
			t.Fatalf("Expected identical sequences for the same worker")
		}
	}
}

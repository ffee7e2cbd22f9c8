package common

import (
	"strings"
	"testing"
)

func TestDefaultWorkloadConfigIsValid(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default configuration is invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *WorkloadConfig){
		"too few users":       func(c *WorkloadConfig) { c.Users = 1 },
		"negative posts":      func(c *WorkloadConfig) { c.PostsPerUser = -1 },
		"too many follows":    func(c *WorkloadConfig) { c.FollowsPerUser = c.Users },
		"no workers":          func(c *WorkloadConfig) { c.Workers = 0 },
		"negative operations": func(c *WorkloadConfig) { c.Operations = -5 },
		"zero feed limit":     func(c *WorkloadConfig) { c.FeedLimit = 0 },
		"empty mix":           func(c *WorkloadConfig) { c.Mix = OperationMix{} },
		"negative weight":     func(c *WorkloadConfig) { c.Mix.Like = -1 },
		"bad log level":       func(c *WorkloadConfig) { c.LogLevel = "loud" },
	}

	for name, mutate := range cases {
		cfg := DefaultWorkloadConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}

	// an empty mix is fine if no operations run
	cfg := DefaultWorkloadConfig()
	cfg.Mix = OperationMix{}
	cfg.Operations = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected seeding-only config to be valid, got %v", err)
	}
}

func TestParseOperationMix(t *testing.T) {
	base := DefaultWorkloadConfig().Mix

	mix, err := ParseOperationMix("get-post=1, like = 7,update-user=0", base)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mix.GetPost != 1 || mix.Like != 7 || mix.UpdateUser != 0 {
		t.Errorf("Weights not applied: %+v", mix)
	}
	if mix.Feed != base.Feed {
		t.Errorf("Unlisted weight changed: got %d want %d", mix.Feed, base.Feed)
	}

	if mix, err := ParseOperationMix("", base); err != nil || mix != base {
		t.Errorf("Expected empty string to keep base, got %+v, %v", mix, err)
	}

	for _, bad := range []string{"like", "like=x", "poke=3", "like=1=2"} {
		if _, err := ParseOperationMix(bad, base); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestWorkloadConfigString(t *testing.T) {
	cfg := DefaultWorkloadConfig()
	cfg.Seed = 42
	out := cfg.String()

	for _, want := range []string{"SEED DATA", "WORKLOAD", "OPERATION MIX", "LOGGING", "Random Seed", "42", "get-post"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in config output:\n%s", want, out)
		}
	}
}

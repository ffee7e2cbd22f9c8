package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Workload configuration struct
// --------------------------------------------------------------------------

// OperationMix holds the relative weight of every operation the workload
// issues after seeding. Weights need not sum up to any particular value.
type OperationMix struct {
	CreatePost int
	GetPost    int
	Feed       int
	Comment    int
	Like       int
	Unlike     int
	Follow     int
	Unfollow   int
	UpdateUser int
}

// Total returns the sum of all weights
func (m OperationMix) Total() int {
	return m.CreatePost + m.GetPost + m.Feed + m.Comment + m.Like + m.Unlike + m.Follow + m.Unfollow + m.UpdateUser
}

// WorkloadConfig holds all parameters of a simulated workload run.
type WorkloadConfig struct {
	// seeding
	Users          int
	PostsPerUser   int
	FollowsPerUser int

	// mixed workload
	Workers    int
	Operations int
	FeedLimit  int
	Mix        OperationMix

	// Seed for the random generators (0 = derive from the clock)
	Seed int64

	// Logging configuration
	LogLevel string
}

// DefaultWorkloadConfig returns a small read-heavy workload
func DefaultWorkloadConfig() WorkloadConfig {
	return WorkloadConfig{
		Users:          100,
		PostsPerUser:   5,
		FollowsPerUser: 10,
		Workers:        8,
		Operations:     10_000,
		FeedLimit:      20,
		Mix: OperationMix{
			CreatePost: 10,
			GetPost:    30,
			Feed:       20,
			Comment:    10,
			Like:       10,
			Unlike:     5,
			Follow:     8,
			Unfollow:   4,
			UpdateUser: 3,
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for values the runner cannot work with
func (c *WorkloadConfig) Validate() error {
	if c.Users < 2 {
		return fmt.Errorf("users must be at least 2 (got %d)", c.Users)
	}
	if c.PostsPerUser < 0 {
		return fmt.Errorf("posts per user must not be negative (got %d)", c.PostsPerUser)
	}
	if c.FollowsPerUser < 0 || c.FollowsPerUser >= c.Users {
		return fmt.Errorf("follows per user must be between 0 and %d (got %d)", c.Users-1, c.FollowsPerUser)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1 (got %d)", c.Workers)
	}
	if c.Operations < 0 {
		return fmt.Errorf("operations must not be negative (got %d)", c.Operations)
	}
	if c.FeedLimit < 1 {
		return fmt.Errorf("feed limit must be at least 1 (got %d)", c.FeedLimit)
	}
	if c.Operations > 0 && c.Mix.Total() <= 0 {
		return fmt.Errorf("operation mix must contain at least one positive weight")
	}
	for name, w := range c.Mix.weights() {
		if w < 0 {
			return fmt.Errorf("weight of %s must not be negative (got %d)", name, w)
		}
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func (m OperationMix) weights() map[string]int {
	return map[string]int{
		"create-post": m.CreatePost,
		"get-post":    m.GetPost,
		"feed":        m.Feed,
		"comment":     m.Comment,
		"like":        m.Like,
		"unlike":      m.Unlike,
		"follow":      m.Follow,
		"unfollow":    m.Unfollow,
		"update-user": m.UpdateUser,
	}
}

// ParseOperationMix parses a comma-separated list of NAME=WEIGHT pairs
// (e.g. "get-post=30,like=10") on top of base. Names not listed keep their
// weight from base.
func ParseOperationMix(s string, base OperationMix) (OperationMix, error) {
	mix := base
	if strings.TrimSpace(s) == "" {
		return mix, nil
	}

	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			return base, fmt.Errorf("invalid mix entry: %s (expected NAME=WEIGHT)", pair)
		}

		weight, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return base, fmt.Errorf("invalid weight %s: %v", parts[1], err)
		}

		switch name := strings.TrimSpace(parts[0]); name {
		case "create-post":
			mix.CreatePost = weight
		case "get-post":
			mix.GetPost = weight
		case "feed":
			mix.Feed = weight
		case "comment":
			mix.Comment = weight
		case "like":
			mix.Like = weight
		case "unlike":
			mix.Unlike = weight
		case "follow":
			mix.Follow = weight
		case "unfollow":
			mix.Unfollow = weight
		case "update-user":
			mix.UpdateUser = weight
		default:
			return base, fmt.Errorf("invalid operation: %s (expected one of: create-post, get-post, feed, comment, like, unlike, follow, unfollow, update-user)", name)
		}
	}
	return mix, nil
}

// String returns a formatted string representation of the configuration
func (c *WorkloadConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// Seeding
	addSection("Seed Data")
	addField("Users", strconv.Itoa(c.Users))
	addField("Posts per User", strconv.Itoa(c.PostsPerUser))
	addField("Follows per User", strconv.Itoa(c.FollowsPerUser))

	// Workload
	addSection("Workload")
	addField("Workers", strconv.Itoa(c.Workers))
	addField("Operations", strconv.Itoa(c.Operations))
	addField("Feed Limit", strconv.Itoa(c.FeedLimit))
	if c.Seed == 0 {
		addField("Random Seed", "clock")
	} else {
		addField("Random Seed", strconv.FormatInt(c.Seed, 10))
	}

	// Operation mix in a fixed order
	addSection("Operation Mix")
	for _, name := range []string{"create-post", "get-post", "feed", "comment", "like", "unlike", "follow", "unfollow", "update-user"} {
		addField(name, strconv.Itoa(c.Mix.weights()[name]))
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

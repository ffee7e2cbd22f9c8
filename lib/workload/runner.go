package workload

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/common"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

var plog = logger.GetLogger(common.LoggerWorkload)

// Operation names of the mixed workload (match the keys accepted by common.ParseOperationMix)
const (
	OpCreatePost = "create-post"
	OpGetPost    = "get-post"
	OpFeed       = "feed"
	OpComment    = "comment"
	OpLike       = "like"
	OpUnlike     = "unlike"
	OpFollow     = "follow"
	OpUnfollow   = "unfollow"
	OpUpdateUser = "update-user"
)

// weightedOp is one entry of the cumulative weight table
type weightedOp struct {
	name  string
	bound int
}

// Runner seeds a store and then drives a concurrent, randomized mix of
// operations against it, timing every call.
type Runner struct {
	store    social.IStore
	cfg      common.WorkloadConfig
	registry gometrics.Registry
	table    []weightedOp

	userIDs []int64

	postsMu sync.RWMutex
	postIDs []int64
}

// NewRunner validates cfg and creates a runner for store.
// The store may already contain data; the runner only touches what it creates.
func NewRunner(store social.IStore, cfg common.WorkloadConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		store:    store,
		cfg:      cfg,
		registry: gometrics.NewRegistry(),
	}

	bound := 0
	for _, op := range []struct {
		name   string
		weight int
	}{
		{OpCreatePost, cfg.Mix.CreatePost},
		{OpGetPost, cfg.Mix.GetPost},
		{OpFeed, cfg.Mix.Feed},
		{OpComment, cfg.Mix.Comment},
		{OpLike, cfg.Mix.Like},
		{OpUnlike, cfg.Mix.Unlike},
		{OpFollow, cfg.Mix.Follow},
		{OpUnfollow, cfg.Mix.Unfollow},
		{OpUpdateUser, cfg.Mix.UpdateUser},
	} {
		if op.weight <= 0 {
			continue
		}
		bound += op.weight
		r.table = append(r.table, weightedOp{name: op.name, bound: bound})
	}

	return r, nil
}

// --------------------------------------------------------------------------
// Run
// --------------------------------------------------------------------------

// Run seeds the store, runs the mixed workload and verifies the counters of
// everything the run created. It stops early if ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	defer r.registry.UnregisterAll()

	start := time.Now()

	plog.Infof("seeding %d users with %d posts and %d follows each", r.cfg.Users, r.cfg.PostsPerUser, r.cfg.FollowsPerUser)
	if err := r.seed(ctx); err != nil {
		return nil, err
	}
	seeded := time.Since(start)
	plog.Infof("seeding finished in %s", seeded)

	plog.Infof("running %d operations on %d workers", r.cfg.Operations, r.cfg.Workers)
	mixedStart := time.Now()
	if err := r.runMixed(ctx); err != nil {
		return nil, err
	}
	mixed := time.Since(mixedStart)
	plog.Infof("workload finished in %s", mixed)

	report := r.buildReport(seeded, mixed)
	if len(report.Violations) > 0 {
		plog.Warningf("found %d counter violations", len(report.Violations))
	}
	return report, nil
}

// rng creates the random generator of one worker
func (r *Runner) rng(worker int) *rand.Rand {
	seed := r.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed + int64(worker)*7919))
}

// parallel runs fn on every worker and waits for all of them
func (r *Runner) parallel(fn func(worker int)) {
	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			fn(w)
		}(w)
	}
	wg.Wait()
}

// --------------------------------------------------------------------------
// Seeding
// --------------------------------------------------------------------------

func (r *Runner) seed(ctx context.Context) error {
	// users
	r.userIDs = make([]int64, r.cfg.Users)
	r.parallel(func(w int) {
		for i := w; i < r.cfg.Users; i += r.cfg.Workers {
			if ctx.Err() != nil {
				return
			}
			start := time.Now()
			r.userIDs[i] = r.store.CreateUser(fmt.Sprintf("user_%d", i), fmt.Sprintf("user_%d@example.com", i), fmt.Sprintf("User %d", i)).ID
			r.record("seed-user", start, true)
		}
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	// posts and follow edges
	r.parallel(func(w int) {
		rnd := r.rng(w)
		for i := w; i < r.cfg.Users; i += r.cfg.Workers {
			if ctx.Err() != nil {
				return
			}
			for j := 0; j < r.cfg.PostsPerUser; j++ {
				r.createPost(rnd, r.userIDs[i], "seed-post")
			}
			for _, target := range r.pickOthers(rnd, i, r.cfg.FollowsPerUser) {
				start := time.Now()
				ok := r.store.Follow(r.userIDs[i], r.userIDs[target])
				r.record("seed-follow", start, ok)
			}
		}
	})
	return ctx.Err()
}

// pickOthers returns n distinct user indexes different from self
func (r *Runner) pickOthers(rnd *rand.Rand, self, n int) []int {
	picked := make(map[int]struct{}, n)
	out := make([]int, 0, n)
	for len(out) < n {
		idx := rnd.Intn(len(r.userIDs))
		if _, dup := picked[idx]; dup || idx == self {
			continue
		}
		picked[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

// --------------------------------------------------------------------------
// Mixed workload
// --------------------------------------------------------------------------

func (r *Runner) runMixed(ctx context.Context) error {
	if r.cfg.Operations == 0 || len(r.table) == 0 {
		return nil
	}

	var issued atomic.Int64
	total := int64(r.cfg.Operations)

	r.parallel(func(w int) {
		rnd := r.rng(w + r.cfg.Workers)
		for issued.Add(1) <= total {
			if ctx.Err() != nil {
				return
			}
			r.runOne(rnd, r.pick(rnd))
		}
	})
	return ctx.Err()
}

// pick chooses an operation according to the configured weights
func (r *Runner) pick(rnd *rand.Rand) string {
	n := rnd.Intn(r.table[len(r.table)-1].bound)
	for _, op := range r.table {
		if n < op.bound {
			return op.name
		}
	}
	return r.table[len(r.table)-1].name
}

func (r *Runner) randomUser(rnd *rand.Rand) int64 {
	return r.userIDs[rnd.Intn(len(r.userIDs))]
}

// randomPost returns a post created by this run (false if there is none yet)
func (r *Runner) randomPost(rnd *rand.Rand) (int64, bool) {
	r.postsMu.RLock()
	defer r.postsMu.RUnlock()
	if len(r.postIDs) == 0 {
		return 0, false
	}
	return r.postIDs[rnd.Intn(len(r.postIDs))], true
}

func (r *Runner) createPost(rnd *rand.Rand, userID int64, metric string) {
	start := time.Now()
	post := r.store.CreatePost(userID, fmt.Sprintf("post %d by user %d", rnd.Int63(), userID))
	r.record(metric, start, true)

	r.postsMu.Lock()
	r.postIDs = append(r.postIDs, post.ID)
	r.postsMu.Unlock()
}

// runOne executes a single operation of the mixed workload
func (r *Runner) runOne(rnd *rand.Rand, op string) {
	userID := r.randomUser(rnd)

	switch op {
	case OpCreatePost:
		r.createPost(rnd, userID, op)
		return
	case OpFeed:
		start := time.Now()
		feed := r.store.GetFeed(userID, r.cfg.FeedLimit)
		r.record(op, start, len(feed) > 0)
		return
	case OpFollow, OpUnfollow:
		other := r.randomUser(rnd)
		start := time.Now()
		var ok bool
		if op == OpFollow {
			ok = r.store.Follow(userID, other)
		} else {
			ok = r.store.Unfollow(userID, other)
		}
		r.record(op, start, ok)
		return
	case OpUpdateUser:
		bio := fmt.Sprintf("bio %d", rnd.Int63())
		start := time.Now()
		_, ok := r.store.UpdateUser(userID, social.UserUpdate{Bio: &bio})
		r.record(op, start, ok)
		return
	}

	// the remaining operations need a post
	postID, found := r.randomPost(rnd)
	if !found {
		r.createPost(rnd, userID, OpCreatePost)
		return
	}

	start := time.Now()
	var ok bool
	switch op {
	case OpGetPost:
		_, ok = r.store.GetPost(postID)
	case OpComment:
		r.store.AddComment(postID, userID, fmt.Sprintf("comment %d", rnd.Int63()))
		ok = true
	case OpLike:
		ok = r.store.LikePost(postID, userID)
	case OpUnlike:
		ok = r.store.UnlikePost(postID, userID)
	}
	r.record(op, start, ok)
}

// --------------------------------------------------------------------------
// Metrics
// --------------------------------------------------------------------------

// record updates the timer of op and counts a no-op if ok is false
func (r *Runner) record(op string, start time.Time, ok bool) {
	gometrics.GetOrRegisterTimer(op, r.registry).UpdateSince(start)
	if !ok {
		gometrics.GetOrRegisterCounter(op+".noop", r.registry).Inc(1)
	}
}

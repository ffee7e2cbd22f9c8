package workload

import (
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/ValentinKolb/socialKV/lib/util"
	gometrics "github.com/rcrowley/go-metrics"
	"sort"
	"strings"
	"time"
)

// maxLikeChecks bounds the IsPostLiked calls used to verify like counters
const maxLikeChecks = 2_000_000

// OperationStats summarizes the timer of one operation
type OperationStats struct {
	Name  string        `json:"name"`
	Count int64         `json:"count"`
	NoOps int64         `json:"no_ops"`
	Rate  float64       `json:"rate"` // mean calls per second
	Mean  time.Duration `json:"mean"`
	P50   time.Duration `json:"p50"`
	P95   time.Duration `json:"p95"`
	P99   time.Duration `json:"p99"`
	Max   time.Duration `json:"max"`
}

// Report is the result of a workload run
type Report struct {
	SeedDuration     time.Duration          `json:"seed_duration"`
	WorkloadDuration time.Duration          `json:"workload_duration"`
	Operations       []OperationStats       `json:"operations"`
	Info             social.Info            `json:"info"`
	Posts            util.DistributionStats `json:"posts"`
	Followers        util.DistributionStats `json:"followers"`
	Following        util.DistributionStats `json:"following"`
	LikesVerified    bool                   `json:"likes_verified"`
	Violations       []string               `json:"violations"`
}

// Operation returns the stats of the named operation
func (r *Report) Operation(name string) (OperationStats, bool) {
	for _, op := range r.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return OperationStats{}, false
}

// --------------------------------------------------------------------------
// Building the report
// --------------------------------------------------------------------------

func (r *Runner) buildReport(seeded, mixed time.Duration) *Report {
	report := &Report{
		SeedDuration:     seeded,
		WorkloadDuration: mixed,
		Info:             r.store.GetInfo(),
	}

	// operation timers
	noops := make(map[string]int64)
	r.registry.Each(func(name string, metric interface{}) {
		if c, ok := metric.(gometrics.Counter); ok {
			noops[strings.TrimSuffix(name, ".noop")] = c.Count()
		}
	})
	r.registry.Each(func(name string, metric interface{}) {
		timer, ok := metric.(gometrics.Timer)
		if !ok {
			return
		}
		snap := timer.Snapshot()
		ps := snap.Percentiles([]float64{0.5, 0.95, 0.99})
		report.Operations = append(report.Operations, OperationStats{
			Name:  name,
			Count: snap.Count(),
			NoOps: noops[name],
			Rate:  snap.RateMean(),
			Mean:  time.Duration(snap.Mean()),
			P50:   time.Duration(ps[0]),
			P95:   time.Duration(ps[1]),
			P99:   time.Duration(ps[2]),
			Max:   time.Duration(snap.Max()),
		})
	})
	sort.Slice(report.Operations, func(i, j int) bool { return report.Operations[i].Name < report.Operations[j].Name })

	// counter distributions and user invariants
	posts := make([]int, 0, len(r.userIDs))
	followers := make([]int, 0, len(r.userIDs))
	following := make([]int, 0, len(r.userIDs))
	for _, id := range r.userIDs {
		report.Violations = append(report.Violations, social.CheckUserCounters(r.store, id)...)
		if user, ok := r.store.GetUser(id); ok {
			posts = append(posts, user.PostCount)
			followers = append(followers, user.FollowerCount)
			following = append(following, user.FollowingCount)
		}
	}
	report.Posts = util.NewDistributionStats(util.IntsToFloats(posts))
	report.Followers = util.NewDistributionStats(util.IntsToFloats(followers))
	report.Following = util.NewDistributionStats(util.IntsToFloats(following))

	report.Violations = append(report.Violations, r.checkPosts(report)...)
	return report
}

// checkPosts verifies comment and like counters of every post created by the run
func (r *Runner) checkPosts(report *Report) []string {
	r.postsMu.RLock()
	postSet := make(map[int64]struct{}, len(r.postIDs))
	for _, id := range r.postIDs {
		postSet[id] = struct{}{}
	}
	r.postsMu.RUnlock()

	report.LikesVerified = len(postSet)*len(r.userIDs) <= maxLikeChecks
	if !report.LikesVerified {
		plog.Warningf("skipping like verification (%d posts x %d users)", len(postSet), len(r.userIDs))
	}

	var violations []string
	for _, userID := range r.userIDs {
		for _, post := range r.store.GetPostsByUser(userID) {
			if _, ours := postSet[post.ID]; !ours {
				continue
			}
			if n := len(r.store.GetComments(post.ID)); n != post.CommentCount {
				violations = append(violations, fmt.Sprintf("post %d: comment_count=%d, comments=%d", post.ID, post.CommentCount, n))
			}
			if !report.LikesVerified {
				continue
			}
			likes := 0
			for _, liker := range r.userIDs {
				if r.store.IsPostLiked(post.ID, liker) {
					likes++
				}
			}
			if likes != post.LikeCount {
				violations = append(violations, fmt.Sprintf("post %d: like_count=%d, likes=%d", post.ID, post.LikeCount, likes))
			}
		}
	}
	return violations
}

// --------------------------------------------------------------------------
// Formatting
// --------------------------------------------------------------------------

// String returns a formatted string representation of the report
func (r *Report) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addDistribution := func(name string, d util.DistributionStats) {
		addField(name, fmt.Sprintf("min %.0f / median %.1f / mean %.2f / max %.0f (quality %.2f)",
			d.Min, d.Median, d.Mean, d.Max, d.DistributionQuality))
	}

	addSection("Timing")
	addField("Seeding", r.SeedDuration.String())
	addField("Workload", r.WorkloadDuration.String())

	addSection("Operations")
	sb.WriteString(fmt.Sprintf("  %-14s %9s %9s %12s %10s %10s %10s %10s\n", "op", "count", "no-ops", "ops/sec", "mean", "p95", "p99", "max"))
	for _, op := range r.Operations {
		sb.WriteString(fmt.Sprintf("  %-14s %9d %9d %12.0f %10s %10s %10s %10s\n",
			op.Name, op.Count, op.NoOps, op.Rate,
			op.Mean.Round(time.Microsecond/10), op.P95.Round(time.Microsecond/10),
			op.P99.Round(time.Microsecond/10), op.Max.Round(time.Microsecond/10)))
	}

	addSection("Store")
	addField("Users", fmt.Sprintf("%d", r.Info.Users))
	addField("Posts", fmt.Sprintf("%d", r.Info.Posts))
	addField("Comments", fmt.Sprintf("%d", r.Info.Comments))
	addField("Likes", fmt.Sprintf("%d", r.Info.Likes))
	addField("Follow Edges", fmt.Sprintf("%d", r.Info.FollowEdges))

	addSection("Distributions")
	addDistribution("Posts per User", r.Posts)
	addDistribution("Followers per User", r.Followers)
	addDistribution("Following per User", r.Following)

	addSection("Verification")
	addField("Likes Verified", fmt.Sprintf("%t", r.LikesVerified))
	addField("Violations", fmt.Sprintf("%d", len(r.Violations)))
	for _, v := range r.Violations {
		sb.WriteString(fmt.Sprintf("    %s\n", v))
	}

	return sb.String()
}

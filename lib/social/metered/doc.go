// Package metered provides a social.IStore decorator that records operation
// metrics with github.com/VictoriaMetrics/metrics.
//
// For every operation the decorator maintains:
//
//   - socialkv_operations_total{op="..."}: number of calls
//   - socialkv_operation_misses_total{op="..."}: lookups that found nothing
//     (GetUser, UpdateUser, GetPost) and relation mutations that returned
//     false (LikePost, UnlikePost, Follow, Unfollow)
//   - socialkv_operation_duration_seconds{op="..."}: latency histogram
//
// In addition the gauges socialkv_users, socialkv_posts, socialkv_comments,
// socialkv_likes and socialkv_follow_edges report the table sizes of the
// wrapped store at scrape time.
//
// The decorator does not change the behaviour of the wrapped store; it passes
// the conformance suite in lib/social/testing unchanged.
//
// Usage Example:
//
//	store := metered.New(memstore.NewMemStore(nil), nil)
//	store.CreateUser("alice", "alice@example.com", "Alice")
//	store.WritePrometheus(os.Stdout)
package metered

// Package workload drives a social.IStore with a concurrent, randomized
// workload and reports what happened.
//
// A run has two phases:
//
//   - Seeding: every worker creates a share of the users, then each user gets
//     PostsPerUser posts and follows FollowsPerUser distinct other users.
//   - Mixed workload: the workers issue Operations calls picked according to
//     the weights of common.OperationMix against random seeded users and
//     random posts created by the run.
//
// Every call is timed with a go-metrics timer. Calls that changed nothing
// (a like that already existed, a feed that came back empty, ...) are also
// counted as no-ops.
//
// After the run the counters of every user and post created by the run are
// checked against the relations they cache. Any mismatch ends up in
// Report.Violations; a correct store never produces one.
//
// Usage:
//
//	runner, err := workload.NewRunner(memstore.NewMemStore(nil), common.DefaultWorkloadConfig())
//	if err != nil { ... }
//	report, err := runner.Run(ctx)
//	fmt.Println(report)
package workload

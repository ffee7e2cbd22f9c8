// Package social defines the data model and the IStore interface of the
// socialKV store: users, posts, comments, likes and follow relationships,
// held entirely in memory and meant to back API servers under test.
//
// Key Components:
//
//   - Entities: User, Post and Comment are plain value types. Every lookup
//     returns a copy, so callers can never mutate stored state through a
//     returned record. Entities refer to each other only by id.
//
//   - Relations: likes (post, user) and follow edges (follower -> followed)
//     are not entities and have no id. They are exposed through boolean
//     mutations (LikePost, Follow, ...) and membership queries.
//
//   - Denormalized counters: User.PostCount, User.FollowerCount,
//     User.FollowingCount, Post.LikeCount and Post.CommentCount cache the size
//     of a relation and are maintained by every mutating operation.
//
//   - Outcomes instead of errors: no operation fails. A lookup of an unknown id
//     returns the zero value and false, a relation mutation that changes
//     nothing returns false.
//
// Known quirks kept for compatibility with existing consumers:
//
//   - Dangling references are tolerated. CreatePost with an unknown owner,
//     AddComment on an unknown post and LikePost on an unknown post all
//     succeed; only the counter of the missing entity is skipped.
//   - Comment.LikeCount exists but is never changed.
//   - GetPost has a side effect: it increments Post.Views.
//
// Timestamps are strings in TimeLayout (UTC, fixed width), so sorting them
// lexically sorts them chronologically.
//
// Implementations:
//
//   - memstore: the in-memory implementation with one lock per table.
//     Available in "github.com/ValentinKolb/socialKV/lib/social/memstore".
//   - metered: a decorator recording call counts and latencies of any IStore.
//     Available in "github.com/ValentinKolb/socialKV/lib/social/metered".
package social

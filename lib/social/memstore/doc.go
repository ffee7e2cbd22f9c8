// Package memstore implements the social.IStore interface entirely in memory.
// Data is not persisted between process restarts; the store is meant to back
// API servers under test.
//
// Key Features:
//   - One lock per table (users, posts, comments, follow graph) instead of a global lock
//   - Likes held in a concurrent xsync.MapOf, updated with atomic Compute operations
//   - Ids allocated from one atomic counter per entity type, starting at 1
//   - Injectable clock for deterministic timestamps in tests
//
// Implementation Details:
//
//   - Tables: users, posts and comments are maps from id to record, each
//     guarded by its own sync.RWMutex. Lookups copy the record while the lock
//     is held, so callers never share memory with the store.
//
//   - Likes: the (post, user) pairs live in an xsync.MapOf. LikePost and
//     UnlikePost run inside MapOf.Compute, which serializes all operations on
//     the same pair. The post's like counter is updated inside that callback
//     (lock order likes -> posts), so the counter always matches the number
//     of recorded likes of an existing post.
//
//   - Follow graph: every edge is stored in a followers index (followed ->
//     followers) and a following index (follower -> followed). The user
//     counters are updated while the graph lock is held (lock order
//     follows -> users).
//
//   - Cross-table writes: CreatePost and AddComment insert the new record,
//     release the table lock and then bump the counter of the parent. A
//     concurrent reader may observe the new record before the counter.
//
// Thread Safety:
//
//	All operations are safe for concurrent use. No lock is ever acquired
//	while holding a lock that comes later in the order
//	likes -> posts, follows -> users, so operations cannot deadlock.
//
// Usage Example:
//
//	store := memstore.NewMemStore(nil)
//
//	alice := store.CreateUser("alice", "alice@example.com", "Alice")
//	bob := store.CreateUser("bob", "bob@example.com", "Bob")
//	post := store.CreatePost(bob.ID, "hello")
//
//	store.Follow(alice.ID, bob.ID)
//	feed := store.GetFeed(alice.ID, 20) // [post]
//
// Ordering:
//
//	GetAllUsers, GetPostsByUser, GetComments, GetFollowers and GetFollowing
//	return their results ordered by id. GetFeed orders by CreatedAt
//	descending and breaks ties by descending post id.
package memstore

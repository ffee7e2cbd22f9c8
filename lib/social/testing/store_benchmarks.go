package testing

import (
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/social"
	"math/rand"
	"testing"
	"time"
)

// RunStoreBenchmarks runs all benchmarks for an IStore implementation
func RunStoreBenchmarks(b *testing.B, name string, factory social.StoreFactory) {

	b.Run("CreateUser", func(b *testing.B) {
		benchmarkCreateUser(b, factory())
	})

	b.Run("CreatePost", func(b *testing.B) {
		benchmarkCreatePost(b, factory())
	})

	b.Run("GetPost", func(b *testing.B) {
		benchmarkGetPost(b, factory())
	})

	b.Run("LikeUnlike", func(b *testing.B) {
		benchmarkLikeUnlike(b, factory())
	})

	b.Run("FollowUnfollow", func(b *testing.B) {
		benchmarkFollowUnfollow(b, factory())
	})

	b.Run("Feed", func(b *testing.B) {
		benchmarkFeed(b, factory())
	})

	b.Run("MixedUsage", func(b *testing.B) {
		benchmarkMixedUsage(b, factory())
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// seedUsers creates n users, each with postsPerUser posts
func seedUsers(store social.IStore, n, postsPerUser int) ([]int64, []int64) {
	userIDs := make([]int64, n)
	postIDs := make([]int64, 0, n*postsPerUser)
	for i := 0; i < n; i++ {
		userIDs[i] = store.CreateUser(fmt.Sprintf("bench-user-%d", i), fmt.Sprintf("bench-%d@example.com", i), "Bench").ID
		for j := 0; j < postsPerUser; j++ {
			postIDs = append(postIDs, store.CreatePost(userIDs[i], fmt.Sprintf("bench-post-%d-%d", i, j)).ID)
		}
	}
	return userIDs, postIDs
}

// --------------------------------------------------------------------------
// Benchmark functions
// --------------------------------------------------------------------------

// Parallel benchmarking for CreateUser operation
func benchmarkCreateUser(b *testing.B, store social.IStore) {
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			store.CreateUser(fmt.Sprintf("user-%d", counter), "user@example.com", "User")
			counter++
		}
	})
}

// Parallel benchmarking for CreatePost operation
func benchmarkCreatePost(b *testing.B, store social.IStore) {
	userIDs, _ := seedUsers(store, 1000, 0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			store.CreatePost(userIDs[counter%len(userIDs)], "benchmark content")
			counter++
		}
	})
}

// Parallel benchmarking for GetPost operation (includes the view increment)
func benchmarkGetPost(b *testing.B, store social.IStore) {
	_, postIDs := seedUsers(store, 100, 100)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			store.GetPost(postIDs[counter%len(postIDs)])
			counter++
		}
	})
}

// Parallel benchmarking for alternating like and unlike operations
func benchmarkLikeUnlike(b *testing.B, store social.IStore) {
	userIDs, postIDs := seedUsers(store, 100, 10)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			postID := postIDs[counter%len(postIDs)]
			userID := userIDs[(counter/len(postIDs))%len(userIDs)]
			if !store.LikePost(postID, userID) {
				store.UnlikePost(postID, userID)
			}
			counter++
		}
	})
}

// Parallel benchmarking for alternating follow and unfollow operations
func benchmarkFollowUnfollow(b *testing.B, store social.IStore) {
	userIDs, _ := seedUsers(store, 1000, 0)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			follower := userIDs[rnd.Intn(len(userIDs))]
			followed := userIDs[rnd.Intn(len(userIDs))]
			if !store.Follow(follower, followed) {
				store.Unfollow(follower, followed)
			}
		}
	})
}

// Parallel benchmarking for GetFeed on a user following 50 others
func benchmarkFeed(b *testing.B, store social.IStore) {
	userIDs, _ := seedUsers(store, 500, 20)
	for i := 1; i <= 50; i++ {
		store.Follow(userIDs[0], userIDs[i])
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			store.GetFeed(userIDs[0], 20)
		}
	})
}

// benchmarkMixedUsage tests a read-heavy mix of operations
func benchmarkMixedUsage(b *testing.B, store social.IStore) {
	userIDs, postIDs := seedUsers(store, 500, 10)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			userID := userIDs[rnd.Intn(len(userIDs))]
			postID := postIDs[rnd.Intn(len(postIDs))]

			// 60% reads, 40% writes
			switch r := rnd.Float32(); {
			case r < .3:
				store.GetPost(postID)
			case r < .5:
				store.GetFeed(userID, 20)
			case r < .6:
				store.GetUser(userID)
			case r < .75:
				store.LikePost(postID, userID)
			case r < .85:
				store.Follow(userID, userIDs[rnd.Intn(len(userIDs))])
			case r < .95:
				store.AddComment(postID, userID, "benchmark comment")
			default:
				store.CreatePost(userID, "benchmark content")
			}
		}
	})
}

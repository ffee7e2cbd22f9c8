package testing

import (
	"fmt"
	"github.com/ValentinKolb/socialKV/lib/social"
	"sort"
	"sync"
	"testing"
)

// RunStoreTests runs a comprehensive test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory social.StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("CreateUser", func(t *testing.T) {
			testCreateUser(t, factory())
		})

		t.Run("GetUser", func(t *testing.T) {
			testGetUser(t, factory())
		})

		t.Run("UpdateUser", func(t *testing.T) {
			testUpdateUser(t, factory())
		})

		t.Run("CreatePost", func(t *testing.T) {
			testCreatePost(t, factory())
		})

		t.Run("GetPostViews", func(t *testing.T) {
			testGetPostViews(t, factory())
		})

		t.Run("GetPostsByUser", func(t *testing.T) {
			testGetPostsByUser(t, factory())
		})

		t.Run("Feed", func(t *testing.T) {
			testFeed(t, factory())
		})

		t.Run("Comments", func(t *testing.T) {
			testComments(t, factory())
		})

		t.Run("Likes", func(t *testing.T) {
			testLikes(t, factory())
		})

		t.Run("Follow", func(t *testing.T) {
			testFollow(t, factory())
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory())
		})

		t.Run("Scenario", func(t *testing.T) {
			testScenario(t, factory())
		})

		t.Run("ConcurrentCounters", func(t *testing.T) {
			testConcurrentCounters(t, factory())
		})

		t.Run("ConcurrentIDs", func(t *testing.T) {
			testConcurrentIDs(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

func mustGetUser(t testing.TB, store social.IStore, id int64) social.User {
	t.Helper()
	user, ok := store.GetUser(id)
	if !ok {
		t.Fatalf("Expected user %d to exist", id)
	}
	return user
}

// peekPost reads a post without the view side effect of GetPost
func peekPost(t testing.TB, store social.IStore, userID, postID int64) social.Post {
	t.Helper()
	for _, post := range store.GetPostsByUser(userID) {
		if post.ID == postID {
			return post
		}
	}
	t.Fatalf("Expected post %d of user %d to exist", postID, userID)
	return social.Post{}
}

func userIDs(users []social.User) []int64 {
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testCreateUser(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "alice@example.com", "Alice")

	if alice.ID != 1 {
		t.Errorf("Expected first user id 1, got %d", alice.ID)
	}
	if alice.Username != "alice" || alice.Email != "alice@example.com" || alice.DisplayName != "Alice" {
		t.Errorf("Unexpected user fields: %+v", alice)
	}
	if alice.Bio != "" {
		t.Errorf("Expected empty bio, got %q", alice.Bio)
	}
	if alice.PostCount != 0 || alice.FollowerCount != 0 || alice.FollowingCount != 0 {
		t.Errorf("Expected all counters to be 0, got %s", alice)
	}
	if alice.CreatedAt == "" || alice.CreatedAt != alice.UpdatedAt {
		t.Errorf("Expected equal, non-empty timestamps, got %q and %q", alice.CreatedAt, alice.UpdatedAt)
	}
	if _, err := social.ParseTime(alice.CreatedAt); err != nil {
		t.Errorf("Timestamp %q is not in TimeLayout: %v", alice.CreatedAt, err)
	}

	last := alice.ID
	for i := 0; i < 100; i++ {
		user := store.CreateUser(fmt.Sprintf("user-%d", i), "", "")
		if user.ID <= last {
			t.Fatalf("Expected strictly increasing ids, got %d after %d", user.ID, last)
		}
		last = user.ID
	}

	if n := len(store.GetAllUsers()); n != 101 {
		t.Errorf("Expected 101 users, got %d", n)
	}
}

func testGetUser(t *testing.T, store social.IStore) {
	if _, ok := store.GetUser(1); ok {
		t.Errorf("Expected no user in an empty store")
	}

	created := store.CreateUser("bob", "bob@example.com", "Bob")

	user, ok := store.GetUser(created.ID)
	if !ok {
		t.Fatalf("Expected user %d to exist", created.ID)
	}
	if user != created {
		t.Errorf("Expected %+v, got %+v", created, user)
	}

	// returned records are copies
	user.Username = "mallory"
	user.PostCount = 42
	if again := mustGetUser(t, store, created.ID); again.Username != "bob" || again.PostCount != 0 {
		t.Errorf("Mutating a returned user changed the stored user: %+v", again)
	}

	if _, ok := store.GetUser(created.ID + 1); ok {
		t.Errorf("Expected id %d to be unknown", created.ID+1)
	}
	if _, ok := store.GetUser(0); ok {
		t.Errorf("Expected id 0 to be unknown")
	}
	if _, ok := store.GetUser(-1); ok {
		t.Errorf("Expected id -1 to be unknown")
	}
}

func testUpdateUser(t *testing.T, store social.IStore) {
	bio := "hello there"
	if _, ok := store.UpdateUser(1, social.UserUpdate{Bio: &bio}); ok {
		t.Errorf("Expected update of unknown user to report not found")
	}

	created := store.CreateUser("carol", "carol@example.com", "Carol")
	other := store.CreateUser("dave", "dave@example.com", "Dave")
	store.CreatePost(created.ID, "first")
	store.Follow(other.ID, created.ID)

	name := "Caroline"
	updated, ok := store.UpdateUser(created.ID, social.UserUpdate{DisplayName: &name, Bio: &bio})
	if !ok {
		t.Fatalf("Expected update of user %d to succeed", created.ID)
	}
	if updated.DisplayName != name || updated.Bio != bio {
		t.Errorf("Expected display name %q and bio %q, got %+v", name, bio, updated)
	}
	if updated.Username != "carol" || updated.Email != "carol@example.com" {
		t.Errorf("Unset fields must not change, got %+v", updated)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("CreatedAt must not change, got %q want %q", updated.CreatedAt, created.CreatedAt)
	}
	if updated.UpdatedAt < created.UpdatedAt {
		t.Errorf("UpdatedAt went backwards: %q < %q", updated.UpdatedAt, created.UpdatedAt)
	}
	if updated.PostCount != 1 || updated.FollowerCount != 1 {
		t.Errorf("Counters must survive an update, got %s", updated)
	}

	if stored := mustGetUser(t, store, created.ID); stored != updated {
		t.Errorf("Expected stored user %+v, got %+v", updated, stored)
	}
}

func testCreatePost(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")

	first := store.CreatePost(bob.ID, "hello")
	if first.ID != 1 {
		t.Errorf("Expected first post id 1, got %d", first.ID)
	}
	if first.UserID != bob.ID || first.Content != "hello" {
		t.Errorf("Unexpected post fields: %+v", first)
	}
	if first.LikeCount != 0 || first.CommentCount != 0 || first.Views != 0 {
		t.Errorf("Expected all counters to be 0, got %s", first)
	}
	if first.CreatedAt == "" || first.CreatedAt != first.UpdatedAt {
		t.Errorf("Expected equal, non-empty timestamps, got %q and %q", first.CreatedAt, first.UpdatedAt)
	}

	if got := mustGetUser(t, store, bob.ID).PostCount; got != 1 {
		t.Errorf("Expected bob.post_count 1, got %d", got)
	}
	if got := mustGetUser(t, store, alice.ID).PostCount; got != 0 {
		t.Errorf("Expected alice.post_count 0, got %d", got)
	}

	second := store.CreatePost(bob.ID, "again")
	if second.ID <= first.ID {
		t.Errorf("Expected increasing post ids, got %d after %d", second.ID, first.ID)
	}
	if got := mustGetUser(t, store, bob.ID).PostCount; got != 2 {
		t.Errorf("Expected bob.post_count 2, got %d", got)
	}

	// unknown owners are tolerated
	dangling := store.CreatePost(999, "nobody")
	if dangling.UserID != 999 {
		t.Errorf("Expected dangling owner 999, got %d", dangling.UserID)
	}
	if _, ok := store.GetPost(dangling.ID); !ok {
		t.Errorf("Expected post with unknown owner to be stored")
	}
	if _, ok := store.GetUser(999); ok {
		t.Errorf("Creating a post must not create its owner")
	}
	if got := mustGetUser(t, store, bob.ID).PostCount; got != 2 {
		t.Errorf("Expected bob.post_count to stay 2, got %d", got)
	}
}

func testGetPostViews(t *testing.T, store social.IStore) {
	user := store.CreateUser("viewer", "", "")
	post := store.CreatePost(user.ID, "watch me")

	if _, ok := store.GetPost(post.ID + 1); ok {
		t.Errorf("Expected unknown post lookup to fail")
	}

	for i := 1; i <= 10; i++ {
		got, ok := store.GetPost(post.ID)
		if !ok {
			t.Fatalf("Expected post %d to exist", post.ID)
		}
		if got.Views != i {
			t.Errorf("Expected views %d after %d reads, got %d", i, i, got.Views)
		}
	}

	// GetPostsByUser and GetFeed do not count as views
	_ = store.GetPostsByUser(user.ID)
	_ = store.GetFeed(user.ID, 10)
	if got := peekPost(t, store, user.ID, post.ID); got.Views != 10 {
		t.Errorf("Expected views to stay 10, got %d", got.Views)
	}
}

func testGetPostsByUser(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")

	if posts := store.GetPostsByUser(alice.ID); len(posts) != 0 {
		t.Errorf("Expected no posts, got %d", len(posts))
	}

	want := map[int64]bool{}
	for i := 0; i < 5; i++ {
		want[store.CreatePost(alice.ID, fmt.Sprintf("a%d", i)).ID] = true
		store.CreatePost(bob.ID, fmt.Sprintf("b%d", i))
	}

	posts := store.GetPostsByUser(alice.ID)
	if len(posts) != len(want) {
		t.Fatalf("Expected %d posts, got %d", len(want), len(posts))
	}
	for _, post := range posts {
		if post.UserID != alice.ID || !want[post.ID] {
			t.Errorf("Unexpected post in result: %s", post)
		}
	}
}

func testFeed(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")
	carol := store.CreateUser("carol", "", "")
	dave := store.CreateUser("dave", "", "")

	allowed := map[int64]bool{alice.ID: true, bob.ID: true, carol.ID: true}
	for i := 0; i < 8; i++ {
		store.CreatePost(alice.ID, fmt.Sprintf("alice %d", i))
		store.CreatePost(bob.ID, fmt.Sprintf("bob %d", i))
		store.CreatePost(carol.ID, fmt.Sprintf("carol %d", i))
		store.CreatePost(dave.ID, fmt.Sprintf("dave %d", i))
	}

	if feed := store.GetFeed(alice.ID, 100); len(feed) != 8 {
		t.Errorf("Expected only alice's own 8 posts, got %d", len(feed))
	}

	store.Follow(alice.ID, bob.ID)
	store.Follow(alice.ID, carol.ID)
	// edges pointing at alice must not leak into her feed
	store.Follow(dave.ID, alice.ID)

	feed := store.GetFeed(alice.ID, 100)
	if len(feed) != 24 {
		t.Fatalf("Expected 24 posts, got %d", len(feed))
	}
	for i, post := range feed {
		if !allowed[post.UserID] {
			t.Errorf("Post %s is by a user alice does not follow", post)
		}
		if i > 0 && feed[i-1].CreatedAt < post.CreatedAt {
			t.Errorf("Feed not sorted newest first at %d: %q < %q", i, feed[i-1].CreatedAt, post.CreatedAt)
		}
	}

	limited := store.GetFeed(alice.ID, 5)
	if len(limited) != 5 {
		t.Fatalf("Expected 5 posts, got %d", len(limited))
	}
	for i := range limited {
		if limited[i].CreatedAt != feed[i].CreatedAt {
			t.Errorf("Limited feed is not a prefix of the full feed at %d", i)
		}
	}

	if got := store.GetFeed(alice.ID, 0); len(got) != 0 {
		t.Errorf("Expected empty feed for limit 0, got %d", len(got))
	}
	if got := store.GetFeed(alice.ID, -3); len(got) != 0 {
		t.Errorf("Expected empty feed for negative limit, got %d", len(got))
	}

	store.Unfollow(alice.ID, carol.ID)
	for _, post := range store.GetFeed(alice.ID, 100) {
		if post.UserID == carol.ID {
			t.Errorf("Feed still contains posts of unfollowed user: %s", post)
		}
	}

	// the feed has no view side effect
	for _, post := range store.GetPostsByUser(bob.ID) {
		if post.Views != 0 {
			t.Errorf("Expected no views after reading the feed, got %s", post)
		}
	}

	if got := store.GetFeed(999, 10); len(got) != 0 {
		t.Errorf("Expected empty feed for unknown user, got %d", len(got))
	}
}

func testComments(t *testing.T, store social.IStore) {
	user := store.CreateUser("author", "", "")
	post := store.CreatePost(user.ID, "discuss")
	other := store.CreatePost(user.ID, "other")

	first := store.AddComment(post.ID, user.ID, "first!")
	if first.ID != 1 || first.PostID != post.ID || first.UserID != user.ID || first.Text != "first!" {
		t.Errorf("Unexpected comment fields: %+v", first)
	}
	if first.LikeCount != 0 {
		t.Errorf("Expected comment like_count 0, got %d", first.LikeCount)
	}
	if first.CreatedAt == "" {
		t.Errorf("Expected comment timestamp to be set")
	}

	second := store.AddComment(post.ID, 777, "unknown author")
	if second.ID <= first.ID {
		t.Errorf("Expected increasing comment ids, got %d after %d", second.ID, first.ID)
	}
	store.AddComment(other.ID, user.ID, "elsewhere")

	if got := peekPost(t, store, user.ID, post.ID).CommentCount; got != 2 {
		t.Errorf("Expected comment_count 2, got %d", got)
	}
	if got := peekPost(t, store, user.ID, other.ID).CommentCount; got != 1 {
		t.Errorf("Expected comment_count 1, got %d", got)
	}

	comments := store.GetComments(post.ID)
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}
	for _, c := range comments {
		if c.PostID != post.ID {
			t.Errorf("Unexpected comment in result: %+v", c)
		}
	}

	// comments on unknown posts are stored anyway
	dangling := store.AddComment(12345, user.ID, "into the void")
	if got := store.GetComments(12345); len(got) != 1 || got[0].ID != dangling.ID {
		t.Errorf("Expected dangling comment to be stored, got %+v", got)
	}
	if _, ok := store.GetPost(12345); ok {
		t.Errorf("Commenting must not create the post")
	}
}

func testLikes(t *testing.T, store social.IStore) {
	user := store.CreateUser("liker", "", "")
	post := store.CreatePost(user.ID, "like me")

	if store.IsPostLiked(post.ID, user.ID) {
		t.Errorf("Expected post not to be liked")
	}
	if store.UnlikePost(post.ID, user.ID) {
		t.Errorf("Expected unlike without like to return false")
	}
	if got := peekPost(t, store, user.ID, post.ID).LikeCount; got != 0 {
		t.Errorf("Expected like_count 0, got %d", got)
	}

	if !store.LikePost(post.ID, user.ID) {
		t.Errorf("Expected first like to succeed")
	}
	if store.LikePost(post.ID, user.ID) {
		t.Errorf("Expected second like to return false")
	}
	if !store.IsPostLiked(post.ID, user.ID) {
		t.Errorf("Expected post to be liked")
	}
	if got := peekPost(t, store, user.ID, post.ID).LikeCount; got != 1 {
		t.Errorf("Expected like_count 1, got %d", got)
	}

	if !store.LikePost(post.ID, 2) {
		t.Errorf("Expected like by a second user to succeed")
	}
	if got := peekPost(t, store, user.ID, post.ID).LikeCount; got != 2 {
		t.Errorf("Expected like_count 2, got %d", got)
	}

	if !store.UnlikePost(post.ID, user.ID) {
		t.Errorf("Expected unlike to succeed")
	}
	if store.UnlikePost(post.ID, user.ID) {
		t.Errorf("Expected second unlike to return false")
	}
	if store.IsPostLiked(post.ID, user.ID) {
		t.Errorf("Expected like to be removed")
	}
	if got := peekPost(t, store, user.ID, post.ID).LikeCount; got != 1 {
		t.Errorf("Expected like_count 1, got %d", got)
	}

	// likes on unknown posts are recorded without a counter
	if !store.LikePost(404, user.ID) {
		t.Errorf("Expected like of unknown post to be recorded")
	}
	if store.LikePost(404, user.ID) {
		t.Errorf("Expected second like of unknown post to return false")
	}
	if !store.IsPostLiked(404, user.ID) {
		t.Errorf("Expected like of unknown post to be visible")
	}
	if !store.UnlikePost(404, user.ID) {
		t.Errorf("Expected unlike of unknown post to succeed")
	}
}

func testFollow(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")
	carol := store.CreateUser("carol", "", "")

	if store.Follow(alice.ID, alice.ID) {
		t.Errorf("Expected self-follow to be rejected")
	}
	if got := mustGetUser(t, store, alice.ID); got.FollowerCount != 0 || got.FollowingCount != 0 {
		t.Errorf("Self-follow must not change counters, got %s", got)
	}

	if !store.Follow(alice.ID, bob.ID) {
		t.Errorf("Expected follow to succeed")
	}
	if store.Follow(alice.ID, bob.ID) {
		t.Errorf("Expected duplicate follow to return false")
	}
	if !store.Follow(carol.ID, bob.ID) {
		t.Errorf("Expected follow to succeed")
	}
	if !store.Follow(bob.ID, alice.ID) {
		t.Errorf("Expected reverse follow to succeed")
	}

	if got := mustGetUser(t, store, bob.ID); got.FollowerCount != 2 || got.FollowingCount != 1 {
		t.Errorf("Expected bob 2 followers / 1 following, got %s", got)
	}
	if got := mustGetUser(t, store, alice.ID); got.FollowerCount != 1 || got.FollowingCount != 1 {
		t.Errorf("Expected alice 1 follower / 1 following, got %s", got)
	}

	if ids := userIDs(store.GetFollowers(bob.ID)); !equalIDs(ids, []int64{alice.ID, carol.ID}) {
		t.Errorf("Unexpected followers of bob: %v", ids)
	}
	if ids := userIDs(store.GetFollowing(alice.ID)); !equalIDs(ids, []int64{bob.ID}) {
		t.Errorf("Unexpected following of alice: %v", ids)
	}

	if store.Unfollow(alice.ID, carol.ID) {
		t.Errorf("Expected unfollow of missing edge to return false")
	}
	if !store.Unfollow(alice.ID, bob.ID) {
		t.Errorf("Expected unfollow to succeed")
	}
	if store.Unfollow(alice.ID, bob.ID) {
		t.Errorf("Expected second unfollow to return false")
	}
	if got := mustGetUser(t, store, bob.ID); got.FollowerCount != 1 {
		t.Errorf("Expected bob 1 follower, got %s", got)
	}
	if got := mustGetUser(t, store, alice.ID); got.FollowingCount != 0 {
		t.Errorf("Expected alice following 0, got %s", got)
	}

	// edges to unknown users are stored, unresolvable ids are dropped on read
	if !store.Follow(alice.ID, 500) {
		t.Errorf("Expected follow of unknown user to be recorded")
	}
	if got := mustGetUser(t, store, alice.ID).FollowingCount; got != 1 {
		t.Errorf("Expected alice following 1, got %d", got)
	}
	if got := store.GetFollowing(alice.ID); len(got) != 0 {
		t.Errorf("Expected unknown followed user to be dropped, got %v", userIDs(got))
	}
	if got := store.GetFollowers(500); len(got) != 1 || got[0].ID != alice.ID {
		t.Errorf("Expected alice as follower of unknown user, got %v", userIDs(got))
	}

	if got := store.GetFollowers(999); len(got) != 0 {
		t.Errorf("Expected no followers for unknown user, got %d", len(got))
	}
}

func testInfo(t *testing.T, store social.IStore) {
	if info := store.GetInfo(); info != (social.Info{}) {
		t.Errorf("Expected empty info, got %+v", info)
	}

	a := store.CreateUser("a", "", "")
	b := store.CreateUser("b", "", "")
	p := store.CreatePost(a.ID, "p")
	store.AddComment(p.ID, b.ID, "c")
	store.LikePost(p.ID, b.ID)
	store.Follow(b.ID, a.ID)
	store.Follow(a.ID, b.ID)

	want := social.Info{Users: 2, Posts: 1, Comments: 1, Likes: 1, FollowEdges: 2}
	if info := store.GetInfo(); info != want {
		t.Errorf("Expected %+v, got %+v", want, info)
	}

	store.UnlikePost(p.ID, b.ID)
	store.Unfollow(a.ID, b.ID)
	want.Likes, want.FollowEdges = 0, 1
	if info := store.GetInfo(); info != want {
		t.Errorf("Expected %+v, got %+v", want, info)
	}
}

func testScenario(t *testing.T, store social.IStore) {
	alice := store.CreateUser("alice", "alice@example.com", "Alice")
	bob := store.CreateUser("bob", "bob@example.com", "Bob")
	if alice.ID != 1 || bob.ID != 2 {
		t.Fatalf("Expected ids 1 and 2, got %d and %d", alice.ID, bob.ID)
	}

	post := store.CreatePost(bob.ID, "hello")
	if post.ID != 1 {
		t.Errorf("Expected post id 1, got %d", post.ID)
	}
	if got := mustGetUser(t, store, bob.ID).PostCount; got != 1 {
		t.Errorf("Expected bob.post_count 1, got %d", got)
	}

	if !store.Follow(alice.ID, bob.ID) {
		t.Errorf("Expected alice to follow bob")
	}
	if got := mustGetUser(t, store, bob.ID).FollowerCount; got != 1 {
		t.Errorf("Expected bob.follower_count 1, got %d", got)
	}
	if got := mustGetUser(t, store, alice.ID).FollowingCount; got != 1 {
		t.Errorf("Expected alice.following_count 1, got %d", got)
	}

	feed := store.GetFeed(alice.ID, 10)
	if len(feed) != 1 || feed[0].ID != post.ID {
		t.Errorf("Expected feed [post 1], got %v", feed)
	}

	if !store.LikePost(post.ID, alice.ID) {
		t.Errorf("Expected like to succeed")
	}
	if got := peekPost(t, store, bob.ID, post.ID).LikeCount; got != 1 {
		t.Errorf("Expected like_count 1, got %d", got)
	}
	if store.LikePost(post.ID, alice.ID) {
		t.Errorf("Expected repeated like to return false")
	}
	if got := peekPost(t, store, bob.ID, post.ID).LikeCount; got != 1 {
		t.Errorf("Expected like_count to stay 1, got %d", got)
	}
	if !store.UnlikePost(post.ID, alice.ID) {
		t.Errorf("Expected unlike to succeed")
	}
	if got := peekPost(t, store, bob.ID, post.ID).LikeCount; got != 0 {
		t.Errorf("Expected like_count 0, got %d", got)
	}
}

func testConcurrentCounters(t *testing.T, store social.IStore) {
	const (
		numUsers   = 20
		numWorkers = 8
	)

	users := make([]social.User, numUsers)
	for i := range users {
		users[i] = store.CreateUser(fmt.Sprintf("user-%d", i), "", "")
	}
	post := store.CreatePost(users[0].ID, "hot post")

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i, follower := range users {
				followed := users[(i+w+1)%numUsers]
				store.Follow(follower.ID, followed.ID)
				store.CreatePost(follower.ID, fmt.Sprintf("w%d-%d", w, i))
				store.LikePost(post.ID, follower.ID)
				store.GetPost(post.ID)
				store.AddComment(post.ID, follower.ID, "nice")
				if w%2 == 0 {
					store.Unfollow(follower.ID, followed.ID)
					store.UnlikePost(post.ID, follower.ID)
				}
			}
		}(w)
	}
	wg.Wait()

	for _, violation := range social.CheckCounters(store) {
		t.Error(violation)
	}

	hot := peekPost(t, store, users[0].ID, post.ID)
	if hot.Views != numWorkers*numUsers {
		t.Errorf("Expected %d views, got %d", numWorkers*numUsers, hot.Views)
	}
	if hot.CommentCount != numWorkers*numUsers {
		t.Errorf("Expected %d comments, got %d", numWorkers*numUsers, hot.CommentCount)
	}
	liked := 0
	for _, u := range users {
		if store.IsPostLiked(post.ID, u.ID) {
			liked++
		}
	}
	if hot.LikeCount != liked {
		t.Errorf("Expected like_count %d to equal number of likes %d", hot.LikeCount, liked)
	}
}

func testConcurrentIDs(t *testing.T, store social.IStore) {
	const (
		numWorkers = 10
		perWorker  = 100
	)

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			last := int64(0)
			for i := 0; i < perWorker; i++ {
				id := store.CreateUser(fmt.Sprintf("w%d-%d", w, i), "", "").ID
				if id <= last {
					t.Errorf("Ids observed by one goroutine must increase: %d after %d", id, last)
				}
				last = id

				mu.Lock()
				if seen[id] {
					t.Errorf("Duplicate user id %d", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	if len(seen) != numWorkers*perWorker {
		t.Errorf("Expected %d distinct ids, got %d", numWorkers*perWorker, len(seen))
	}
	for id := int64(1); id <= numWorkers*perWorker; id++ {
		if !seen[id] {
			t.Errorf("Expected ids to be dense, %d is missing", id)
			break
		}
	}
}

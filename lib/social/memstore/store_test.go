package memstore

import (
	"github.com/ValentinKolb/socialKV/lib/social"
	socialtesting "github.com/ValentinKolb/socialKV/lib/social/testing"
	"sync"
	"testing"
	"time"
)

func Test(t *testing.T) {
	socialtesting.RunStoreTests(t, "MemStore", func() social.IStore {
		return NewMemStore(nil)
	})
}

func Benchmark(b *testing.B) {
	socialtesting.RunStoreBenchmarks(b, "MemStore", func() social.IStore {
		return NewMemStore(nil)
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// fakeClock returns a fixed time until advanced
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore() (social.IStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 9, 16, 4, 5, 120000000, time.FixedZone("CET", 3600))}
	return NewMemStore(&Options{Clock: clock.Now}), clock
}

// --------------------------------------------------------------------------
// Tests
// --------------------------------------------------------------------------

func TestNilClockFallsBackToNow(t *testing.T) {
	store := NewMemStore(&Options{})
	before := social.FormatTime(time.Now())
	user := store.CreateUser("alice", "", "")
	if user.CreatedAt < before {
		t.Errorf("Expected timestamp after %q, got %q", before, user.CreatedAt)
	}
}

func TestTimestampsUseClock(t *testing.T) {
	store, clock := newTestStore()

	user := store.CreateUser("alice", "", "")
	if want := "2024-03-09T15:04:05.120000000Z"; user.CreatedAt != want {
		t.Errorf("Expected %q, got %q", want, user.CreatedAt)
	}

	clock.Advance(time.Minute)
	post := store.CreatePost(user.ID, "hello")
	if want := "2024-03-09T15:05:05.120000000Z"; post.CreatedAt != want || post.UpdatedAt != want {
		t.Errorf("Expected %q, got %q / %q", want, post.CreatedAt, post.UpdatedAt)
	}

	clock.Advance(time.Second)
	bio := "updated"
	updated, _ := store.UpdateUser(user.ID, social.UserUpdate{Bio: &bio})
	if want := "2024-03-09T15:05:06.120000000Z"; updated.UpdatedAt != want {
		t.Errorf("Expected UpdatedAt %q, got %q", want, updated.UpdatedAt)
	}
	if updated.CreatedAt != user.CreatedAt {
		t.Errorf("CreatedAt changed from %q to %q", user.CreatedAt, updated.CreatedAt)
	}

	comment := store.AddComment(post.ID, user.ID, "first")
	if comment.CreatedAt != "2024-03-09T15:05:06.120000000Z" {
		t.Errorf("Unexpected comment timestamp %q", comment.CreatedAt)
	}
}

func TestFeedOrdering(t *testing.T) {
	store, clock := newTestStore()

	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")
	store.Follow(alice.ID, bob.ID)

	// the fraction width is fixed, so 9 ms must sort before 10 ms
	p1 := store.CreatePost(bob.ID, "one")
	clock.Advance(9 * time.Millisecond)
	p2 := store.CreatePost(alice.ID, "two")
	clock.Advance(time.Millisecond)
	p3 := store.CreatePost(bob.ID, "three")
	// same timestamp as p3
	p4 := store.CreatePost(alice.ID, "four")

	feed := store.GetFeed(alice.ID, 10)
	want := []int64{p4.ID, p3.ID, p2.ID, p1.ID}
	if len(feed) != len(want) {
		t.Fatalf("Expected %d posts, got %d", len(want), len(feed))
	}
	for i, post := range feed {
		if post.ID != want[i] {
			t.Errorf("Position %d: expected post %d, got %d", i, want[i], post.ID)
		}
	}

	top := store.GetFeed(alice.ID, 2)
	if len(top) != 2 || top[0].ID != p4.ID || top[1].ID != p3.ID {
		t.Errorf("Expected [%d %d], got %v", p4.ID, p3.ID, top)
	}
}

func TestResultsOrderedByID(t *testing.T) {
	store := NewMemStore(nil)

	hub := store.CreateUser("hub", "", "")
	for i := 0; i < 50; i++ {
		u := store.CreateUser("u", "", "")
		store.Follow(u.ID, hub.ID)
		store.Follow(hub.ID, u.ID)
		store.CreatePost(hub.ID, "p")
		store.AddComment(1, u.ID, "c")
	}

	users := store.GetAllUsers()
	for i := 1; i < len(users); i++ {
		if users[i-1].ID >= users[i].ID {
			t.Fatalf("GetAllUsers not ordered by id at %d", i)
		}
	}
	followers := store.GetFollowers(hub.ID)
	for i := 1; i < len(followers); i++ {
		if followers[i-1].ID >= followers[i].ID {
			t.Fatalf("GetFollowers not ordered by id at %d", i)
		}
	}
	following := store.GetFollowing(hub.ID)
	for i := 1; i < len(following); i++ {
		if following[i-1].ID >= following[i].ID {
			t.Fatalf("GetFollowing not ordered by id at %d", i)
		}
	}
	posts := store.GetPostsByUser(hub.ID)
	for i := 1; i < len(posts); i++ {
		if posts[i-1].ID >= posts[i].ID {
			t.Fatalf("GetPostsByUser not ordered by id at %d", i)
		}
	}
	comments := store.GetComments(1)
	if len(comments) != 50 {
		t.Fatalf("Expected 50 comments, got %d", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i-1].ID >= comments[i].ID {
			t.Fatalf("GetComments not ordered by id at %d", i)
		}
	}
}

func TestLikeUnlikeRace(t *testing.T) {
	store := NewMemStore(nil)
	user := store.CreateUser("racer", "", "")
	post := store.CreatePost(user.ID, "contested")

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				if (i+w)%2 == 0 {
					store.LikePost(post.ID, user.ID)
				} else {
					store.UnlikePost(post.ID, user.ID)
				}
			}
		}(w)
	}
	wg.Wait()

	got, _ := store.GetPost(post.ID)
	want := 0
	if store.IsPostLiked(post.ID, user.ID) {
		want = 1
	}
	if got.LikeCount != want {
		t.Errorf("Expected like_count %d, got %d", want, got.LikeCount)
	}
}

func TestCommentLikeCountNeverChanges(t *testing.T) {
	store := NewMemStore(nil)
	user := store.CreateUser("u", "", "")
	post := store.CreatePost(user.ID, "p")
	comment := store.AddComment(post.ID, user.ID, "c")

	store.LikePost(post.ID, user.ID)
	store.LikePost(comment.ID, user.ID)

	for _, c := range store.GetComments(post.ID) {
		if c.LikeCount != 0 {
			t.Errorf("Expected comment like_count 0, got %d", c.LikeCount)
		}
	}
}

package metered

import (
	"bytes"
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	socialtesting "github.com/ValentinKolb/socialKV/lib/social/testing"
	"strings"
	"testing"
)

func Test(t *testing.T) {
	socialtesting.RunStoreTests(t, "MeteredMemStore", func() social.IStore {
		return New(memstore.NewMemStore(nil), nil)
	})
}

func TestCallsAndMisses(t *testing.T) {
	store := New(memstore.NewMemStore(nil), nil)

	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")
	post := store.CreatePost(bob.ID, "hello")

	store.GetUser(alice.ID)
	store.GetUser(999)
	store.GetPost(post.ID)
	store.GetPost(999)

	store.LikePost(post.ID, alice.ID)
	store.LikePost(post.ID, alice.ID)
	store.UnlikePost(post.ID, alice.ID)
	store.UnlikePost(post.ID, alice.ID)

	store.Follow(alice.ID, bob.ID)
	store.Follow(alice.ID, bob.ID)
	store.Follow(alice.ID, alice.ID)
	store.Unfollow(bob.ID, alice.ID)

	cases := []struct {
		op     string
		calls  uint64
		misses uint64
	}{
		{OpCreateUser, 2, 0},
		{OpCreatePost, 1, 0},
		{OpGetUser, 2, 1},
		{OpGetPost, 2, 1},
		{OpLikePost, 2, 1},
		{OpUnlikePost, 2, 1},
		{OpFollow, 3, 2},
		{OpUnfollow, 1, 1},
		{OpGetFeed, 0, 0},
	}
	for _, c := range cases {
		if got := store.Calls(c.op); got != c.calls {
			t.Errorf("%s: expected %d calls, got %d", c.op, c.calls, got)
		}
		if got := store.Misses(c.op); got != c.misses {
			t.Errorf("%s: expected %d misses, got %d", c.op, c.misses, got)
		}
	}

	if store.Calls("unknown") != 0 || store.Misses("unknown") != 0 {
		t.Errorf("Expected unknown operation to report 0")
	}
}

func TestWritePrometheus(t *testing.T) {
	store := New(memstore.NewMemStore(nil), nil)

	user := store.CreateUser("alice", "", "")
	store.CreatePost(user.ID, "p1")
	store.CreatePost(user.ID, "p2")
	store.GetFeed(user.ID, 10)

	var buf bytes.Buffer
	store.WritePrometheus(&buf)
	out := buf.String()

	for _, want := range []string{
		`socialkv_operations_total{op="create_post"} 2`,
		`socialkv_operations_total{op="get_feed"} 1`,
		`socialkv_operation_duration_seconds_count{op="get_feed"`,
		"socialkv_users 1",
		"socialkv_posts 2",
		"socialkv_likes 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

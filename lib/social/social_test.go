package social_test

import (
	"github.com/ValentinKolb/socialKV/lib/social"
	"github.com/ValentinKolb/socialKV/lib/social/memstore"
	"strings"
	"testing"
	"time"
)

func TestFormatTimeIsSortable(t *testing.T) {
	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	earlier := social.FormatTime(base.Add(9 * time.Millisecond))
	later := social.FormatTime(base.Add(10 * time.Millisecond))

	if len(earlier) != len(later) {
		t.Errorf("Expected fixed width timestamps, got %q and %q", earlier, later)
	}
	if earlier >= later {
		t.Errorf("Expected %q < %q", earlier, later)
	}

	// zones are normalized to UTC
	zoned := social.FormatTime(base.In(time.FixedZone("X", -5*3600)))
	if zoned != social.FormatTime(base) || !strings.HasSuffix(zoned, "Z") {
		t.Errorf("Expected UTC rendering, got %q", zoned)
	}

	parsed, err := social.ParseTime(later)
	if err != nil {
		t.Fatalf("ParseTime failed: %v", err)
	}
	if !parsed.Equal(base.Add(10 * time.Millisecond)) {
		t.Errorf("Expected %v, got %v", base.Add(10*time.Millisecond), parsed)
	}
}

func TestUserUpdateApply(t *testing.T) {
	u := social.User{Username: "a", Email: "a@x", DisplayName: "A", Bio: "old", PostCount: 3}
	email, bio := "b@x", ""
	social.UserUpdate{Email: &email, Bio: &bio}.Apply(&u)

	if u.Username != "a" || u.DisplayName != "A" {
		t.Errorf("Unset fields changed: %+v", u)
	}
	if u.Email != "b@x" || u.Bio != "" {
		t.Errorf("Set fields not applied: %+v", u)
	}
	if u.PostCount != 3 {
		t.Errorf("Counters must not change, got %d", u.PostCount)
	}
}

func TestCheckCounters(t *testing.T) {
	store := memstore.NewMemStore(nil)
	alice := store.CreateUser("alice", "", "")
	bob := store.CreateUser("bob", "", "")
	store.CreatePost(alice.ID, "hi")
	store.Follow(alice.ID, bob.ID)

	if v := social.CheckCounters(store); len(v) != 0 {
		t.Errorf("Expected no violations, got %v", v)
	}
	if v := social.CheckUserCounters(store, alice.ID); len(v) != 0 {
		t.Errorf("Expected no violations for alice, got %v", v)
	}
	if v := social.CheckUserCounters(store, 99); len(v) != 1 {
		t.Errorf("Expected unknown user to be reported, got %v", v)
	}

	// a follow edge to an unknown user cannot be resolved
	store.Follow(bob.ID, 42)
	v := social.CheckCounters(store)
	if len(v) != 1 || !strings.Contains(v[0], "following_count") {
		t.Errorf("Expected one following_count violation, got %v", v)
	}
}

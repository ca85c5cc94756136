package utils

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{60 * time.Second, "1 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{time.Hour, "1 hours ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "1 days ago"},
		{6 * 24 * time.Hour, "6 days ago"},
		{7 * 24 * time.Hour, "Feb 13, 2026, 12:00 PM"},
	}
	for _, tc := range cases {
		if got := TimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
	if got := TimeAgo(time.Time{}, now); got != "Unknown" {
		t.Errorf("zero = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "N/A" {
		t.Fatalf("zero = %q", got)
	}
	at := time.Date(2026, 2, 10, 15, 4, 0, 0, time.UTC)
	if got := FormatDate(at); got != "Feb 10, 2026, 03:04 PM" {
		t.Fatalf("got %q", got)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2026, 2, 10, 0, 30, 0, 0, loc)
	got := StartOfDay(at)
	if !got.Equal(time.Date(2026, 2, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("got %v", got)
	}
}

func TestPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("s3cret", h) || CheckPassword("nope", h) || CheckPassword("s3cret", "") {
		t.Fatal("password check mismatch")
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type profile struct {
	Name string `json:"name"`
}

func TestKey(t *testing.T) {
	if got := Key("user", "profile", "u1"); got != "user:profile:u1" {
		t.Fatalf("Key = %q", got)
	}
}

func TestGetOrLoadJSONWithoutCache(t *testing.T) {
	calls := 0
	load := func(context.Context) (*profile, error) {
		calls++
		return &profile{Name: "Alice"}, nil
	}
	p, err := GetOrLoadJSON[profile](nil, context.Background(), "k", time.Minute, load)
	if err != nil || p == nil || p.Name != "Alice" || calls != 1 {
		t.Fatalf("got %+v %v calls=%d", p, err, calls)
	}

	boom := errors.New("boom")
	_, err = GetOrLoadJSON[profile](nil, context.Background(), "k", time.Minute, func(context.Context) (*profile, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestDecode(t *testing.T) {
	if p, err := decode[profile]([]byte("null")); p != nil || err != nil {
		t.Fatalf("null => %+v %v", p, err)
	}
	if p, err := decode[profile]([]byte(`{"name":"Bob"}`)); err != nil || p.Name != "Bob" {
		t.Fatalf("decode => %+v %v", p, err)
	}
	if _, err := decode[profile]([]byte("{")); err == nil {
		t.Fatal("want error for corrupt entry")
	}
}

package ratelimit

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func TestLimiter_AllowAndRemaining(t *testing.T) {
	l := New(2, time.Minute)

	if got := l.Remaining("a"); got != 2 {
		t.Fatalf("Remaining before use: got %d, want 2", got)
	}
	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("a") {
		t.Error("third request should be limited")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining after limit: got %d, want 0", got)
	}
	if !l.Allow("b") {
		t.Error("other keys have their own window")
	}

	l.Reset("a")
	if !l.Allow("a") {
		t.Error("Reset should clear the window")
	}
}

func TestLimiter_WindowExpires(t *testing.T) {
	l := New(1, 20*time.Millisecond)
	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Fatal("second request should be limited")
	}
	time.Sleep(40 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("request after the window should be allowed")
	}
}

func TestLimiter_ZeroLimitStillAllowsOne(t *testing.T) {
	l := New(0, time.Minute)
	if !l.Allow("k") {
		t.Fatal("first request should be allowed")
	}
	if l.Allow("k") {
		t.Error("second request should be limited")
	}
}

func TestLimiter_OldestKeyEvictedWhenFull(t *testing.T) {
	l := New(1, time.Hour)
	for i := 0; i <= MaxKeys; i++ {
		l.Allow(strconv.Itoa(i))
	}
	if got := l.Remaining("0"); got != 1 {
		t.Errorf("evicted key should start fresh, got %d remaining", got)
	}
	if got := l.Remaining(strconv.Itoa(MaxKeys)); got != 0 {
		t.Errorf("newest key should be tracked, got %d remaining", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:1234", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.4 "}, "10.0.0.2:1234", "198.51.100.4"},
		{"remote addr", nil, "192.0.2.9:5555", "192.0.2.9"},
		{"remote without port", nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter_PerUsername(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "Officer.Jalpaiguri"); !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, reason := ll.Check(r, " officer.jalpaiguri ")
	if ok || reason == "" {
		t.Fatal("username limit should be case and space insensitive")
	}

	ll.ResetUser("OFFICER.JALPAIGURI")
	if ok, _ := ll.Check(r, "officer.jalpaiguri"); !ok {
		t.Error("ResetUser should clear the account counter")
	}
}

func TestLoginLimiter_PerIP(t *testing.T) {
	ll := NewLoginLimiterWithConfig(1, time.Minute, 10, time.Minute)
	r := httptest.NewRequest("POST", "/login", nil)
	r.RemoteAddr = "192.0.2.1:4000"

	if ok, _ := ll.Check(r, "a"); !ok {
		t.Fatal("first attempt should be allowed")
	}
	if ok, _ := ll.Check(r, "b"); ok {
		t.Error("second attempt from the same IP should be limited")
	}
}

package urlx

import (
	"errors"
	"testing"
)

func TestNormalizeSite(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com/"},
		{"example.com/a/b", "https://example.com/"},
		{"http://example.com/path?q=1#frag", "http://example.com/"},
		{"  https://news.example.com  ", "https://news.example.com/"},
	}
	for _, c := range cases {
		got, err := NormalizeSite(c.in)
		if err != nil {
			t.Fatalf("NormalizeSite(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("NormalizeSite(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeSiteInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "https://"} {
		_, err := NormalizeSite(in)
		if !errors.Is(err, ErrInvalidSite) {
			t.Fatalf("NormalizeSite(%q): want ErrInvalidSite, got %v", in, err)
		}
	}
}

func TestEquivalent(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"https://EX.com/a/", "https://ex.com/a", true},
		{"https://ex.com/a", "https://ex.com/b", false},
		{"https://a.com/x", "https://b.com/x", false},
		{"https://ex.com/", "https://ex.com", true},
		{"https://ex.com/a?utm=1#top", "https://ex.com/a", true},
	}
	for _, c := range cases {
		if got := Equivalent(c.a, c.b); got != c.want {
			t.Fatalf("Equivalent(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestSameDomain(t *testing.T) {
	site := "https://example.com/"
	if !SameDomain("https://example.com/post/1", site) {
		t.Fatal("exact host must match")
	}
	if !SameDomain("https://cdn.example.com/x", site) {
		t.Fatal("subdomain must match")
	}
	if SameDomain("https://notexample.com/x", site) {
		t.Fatal("suffix without dot boundary must not match")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve("https://example.com/", "feed/"); got != "https://example.com/feed/" {
		t.Fatalf("got %q", got)
	}
	if got := Resolve("https://example.com/post/1", "/canon"); got != "https://example.com/canon" {
		t.Fatalf("got %q", got)
	}
}

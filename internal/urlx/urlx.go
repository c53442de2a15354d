// Package urlx holds the URL semantics shared across the audit pipeline:
// site-origin normalization, base-relative resolution, same-domain checks
// and canonical-equivalence comparison.
package urlx

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidSite marks a malformed site identifier supplied by the caller.
// It is the only error that aborts a whole audit run.
var ErrInvalidSite = errors.New("invalid site url")

// NormalizeSite turns user input into a site origin of the exact shape
// scheme://host/ (trailing slash, no path/query/fragment). A missing
// scheme defaults to https.
func NormalizeSite(site string) (string, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return "", fmt.Errorf("%w: site url cannot be empty", ErrInvalidSite)
	}
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidSite, site)
	}
	return u.Scheme + "://" + u.Host + "/", nil
}

// Resolve resolves ref against base, returning "" when either is unusable.
func Resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ""
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}

// SameDomain reports whether rawURL's host is the site host or one of its
// subdomains.
func SameDomain(rawURL, site string) bool {
	host := strings.ToLower(hostOf(site))
	target := strings.ToLower(hostOf(rawURL))
	if host == "" || target == "" {
		return false
	}
	return target == host || strings.HasSuffix(target, "."+host)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Equivalent compares two URLs the way the canonical-consistency check
// requires: hosts case-insensitively, paths after stripping one trailing
// slash (an empty path counts as /); query and fragment are ignored.
func Equivalent(a, b string) bool {
	hostA, pathA := normalizeForCompare(a)
	hostB, pathB := normalizeForCompare(b)
	if hostA != "" && hostB != "" && hostA != hostB {
		return false
	}
	return pathA == pathB
}

func normalizeForCompare(rawURL string) (host, path string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	host = strings.ToLower(u.Host)
	path = strings.TrimSuffix(u.Path, "/")
	if path == "" {
		path = "/"
	}
	return host, path
}

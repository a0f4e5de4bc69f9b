package parsing

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

var identifierCleaner = regexp.MustCompile(`[^a-z0-9_]+`)

// DeriveIdentifier produces a filesystem-safe job identifier. Preference
// order: company and title when both extracted, then the posting URL's host
// and last path segment, then a content digest so every job still gets a
// stable directory name.
func DeriveIdentifier(company, title, rawURL string) string {
	company = strings.TrimSpace(company)
	title = strings.TrimSpace(title)
	if company != "" && title != "" {
		return sanitizeIdentifier(company + "_" + title)
	}

	if rawURL != "" {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			segment := lastPathSegment(u.Path)
			if segment != "" {
				return sanitizeIdentifier(u.Host + "." + segment)
			}
			return sanitizeIdentifier(u.Host)
		}
	}

	digest := sha256.Sum256([]byte(company + title + rawURL))
	return "job_" + hex.EncodeToString(digest[:])[:8]
}

// sanitizeIdentifier lowercases, maps spaces to underscores, and strips
// everything outside [a-z0-9_.].
func sanitizeIdentifier(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	// Keep dots so host.segment identifiers stay readable.
	var parts []string
	for _, part := range strings.Split(s, ".") {
		part = identifierCleaner.ReplaceAllString(part, "")
		part = strings.Trim(part, "_")
		if part != "" {
			parts = append(parts, part)
		}
	}
	out := strings.Join(parts, ".")
	if out == "" {
		digest := sha256.Sum256([]byte(s))
		return "job_" + hex.EncodeToString(digest[:])[:8]
	}
	return out
}

// lastPathSegment returns the final non-empty segment of a URL path.
func lastPathSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

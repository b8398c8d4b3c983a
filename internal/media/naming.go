// Package media holds the leaf pieces of the complaint media pipeline:
// object naming, content-type classification, image normalization and
// video transcoding. Everything here is independent of storage and
// database concerns.
package media

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	unsafeChars   = regexp.MustCompile(`[^\w\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

// ValidFilename reduces an untrusted filename to word characters, spaces
// and hyphens, with runs of whitespace/hyphens collapsed to a single
// hyphen. It never fails; unsafe input degrades to a safe subset. The
// result contains no path separators or control characters, and the
// function is idempotent.
func ValidFilename(name string) string {
	name = strings.TrimSpace(unsafeChars.ReplaceAllString(name, ""))
	return separatorRuns.ReplaceAllString(name, "-")
}

// SanitizeTimestamp percent-decodes a raw timestamp string, applies
// ValidFilename and replaces any remaining colons with underscores so
// the result is safe as a path segment.
func SanitizeTimestamp(raw string) string {
	if dec, err := url.QueryUnescape(raw); err == nil {
		raw = dec
	}
	return strings.ReplaceAll(ValidFilename(raw), ":", "_")
}

// ObjectName builds the durable object name for a complaint media file:
// complain_{id}_{sanitizedTimestamp}_{shortRandomID}.{ext}. The 5-char
// random suffix keeps concurrent uploads for the same complaint in the
// same microsecond collision-free.
func ObjectName(complainID uint, ext string) string {
	ts := time.Now().Format("2006-01-02_15:04:05.000000")
	suffix := uuid.NewString()[:5]
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("complain_%d_%s_%s.%s", complainID, SanitizeTimestamp(ts), suffix, ext)
}

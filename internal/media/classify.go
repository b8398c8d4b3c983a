package media

import "strings"

// Kind is the media kind derived from a declared content type.
type Kind string

const (
	KindImage       Kind = "image"
	KindVideo       Kind = "video"
	KindUnsupported Kind = "unsupported"
)

// Classify maps a declared content-type to a media kind by prefix match.
// Anything that is neither image/* nor video/* is unsupported and must
// be skipped by the pipeline without side effects.
func Classify(contentType string) Kind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage
	case strings.HasPrefix(contentType, "video/"):
		return KindVideo
	default:
		return KindUnsupported
	}
}

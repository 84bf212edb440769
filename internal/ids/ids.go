package ids

import "github.com/segmentio/ksuid"

// New returns a sortable, URL-safe opaque identifier.
func New() string {
	return ksuid.New().String()
}

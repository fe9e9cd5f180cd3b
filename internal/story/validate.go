package story

import (
	"fmt"
	"regexp"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateID checks the syntactic shape of a story id before it is spliced
// into a request path. Ids are server-assigned, so this only guards against
// obviously broken input, not existence.
func ValidateID(id string) error {
	if len(id) == 0 || len(id) > 64 {
		return fmt.Errorf("story ID must be 1-64 characters")
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("story ID can only contain alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

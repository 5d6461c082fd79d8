package storage

import "regexp"

var nodeIDPattern = regexp.MustCompile(`^[A-Z0-9_]+$`)

// ValidNodeID reports whether id is a nonempty string of A-Z, 0-9 and '_'.
func ValidNodeID(id string) bool {
	return nodeIDPattern.MatchString(id)
}

// ValidateNodeID returns ErrInvalidID wrapped with the offending ID when id
// is not a valid node identifier.
func ValidateNodeID(id string) error {
	if !ValidNodeID(id) {
		return NewError("validate").Node(id).Cause(ErrInvalidID).Err()
	}
	return nil
}

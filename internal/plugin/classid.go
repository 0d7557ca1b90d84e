package plugin

import (
	"strings"

	"github.com/google/uuid"
)

// ClassID identifies a registered component class. Registry values are
// usually GUIDs in braces, but any non-empty string is accepted.
type ClassID string

// ParseClassID trims s and canonicalises GUID forms to upper-case braced
// notation. Non-GUID identifiers are returned trimmed.
func ParseClassID(s string) (ClassID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidClassID
	}
	if id, err := uuid.Parse(s); err == nil {
		return ClassID("{" + strings.ToUpper(id.String()) + "}"), nil
	}
	return ClassID(s), nil
}

// MustParseClassID is ParseClassID for package-level constants.
func MustParseClassID(s string) ClassID {
	id, err := ParseClassID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsGUID reports whether the identifier is a GUID.
func (c ClassID) IsGUID() bool {
	_, err := uuid.Parse(string(c))
	return err == nil
}

func (c ClassID) String() string {
	return string(c)
}

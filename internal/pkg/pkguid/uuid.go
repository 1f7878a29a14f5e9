package pkguid

import "github.com/google/uuid"

// UUID generates RFC 9562 version 7 UUID strings.
type UUID struct {
	prefix string
}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// NewPrefixedUUID returns a generator whose IDs read "<prefix>-<uuid>".
func NewPrefixedUUID(prefix string) *UUID {
	return &UUID{prefix: prefix}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id := uuid.Must(uuid.NewV7()).String()
	if u.prefix == "" {
		return id
	}
	return u.prefix + "-" + id
}

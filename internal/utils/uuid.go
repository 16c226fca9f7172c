package utils

import "github.com/google/uuid"

// UUIDGenerator produces identifiers for newly created records. Version 7
// UUIDs are preferred because they are time-ordered, which keeps primary
// key indexes append-mostly.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new v7 UUID, falling back to a random v4 UUID if v7
// generation fails.
func (g *UUIDGenerator) Generate() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return v7
}

package uid

import "github.com/google/uuid"

// UUID generates time-ordered v7 UUID strings.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a v7 UUID, or a v4 when the v7 clock read fails.
func (*UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

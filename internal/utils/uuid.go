package utils

import "github.com/google/uuid"

// UUIDGenerator produces unique identifiers for stored images and uploaded
// files. Time-ordered V7 UUIDs keep database inserts roughly sequential.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

package id

import "github.com/google/uuid"

// UUIDGenerator hands out random UUIDv4 identifiers.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewID() string { return uuid.NewString() }

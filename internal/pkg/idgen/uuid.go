package idgen

import "github.com/google/uuid"

type UUIDGenerator struct{}

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

package setconfig

import "github.com/google/uuid"

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=setconfig_test

// IDGenerator stamps new performed-set placeholders.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

package uuid

import (
	"github.com/gofrs/uuid/v5"
)

type UUID = uuid.UUID

var Nil = uuid.Nil

func NewV4() UUID {
	u, _ := uuid.NewV4()
	return u
}

func FromString(s string) (UUID, error) {
	return uuid.FromString(s)
}

func MustFromString(s string) UUID {
	return uuid.Must(uuid.FromString(s))
}

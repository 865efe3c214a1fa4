package utils

import (
	"github.com/google/uuid"
)

func GetUUID() string {
	return uuid.New().String()
}

// NewID returns a prefixed identifier such as "ev_1b4e...".
func NewID(prefix string) string {
	return prefix + "_" + uuid.New().String()
}

package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserInboxChannel returns the Redis PubSub channel carrying a user's live messages.
func (r *CacheKeyStruct) UserInboxChannel(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:inbox", userID)
}

var CacheKey = NewCacheKeyStruct()

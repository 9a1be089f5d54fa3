package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix    = "post:%d"
	profileKeyPrefix = "profile:%s"
)

const (
	PostTTL    = 30 * time.Minute
	ProfileTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(profileKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateProfile(ctx context.Context, username string) {
	Invalidate(ctx, ProfileKey(username))
}

package redisrepo

import "fmt"

const (
	POST_KEY = "post:%d" // <postID>
	FEED_KEY = "feed:%s:%d:%d" // <sortKey>:<limit>:<offset>
	FEED_KEY_PATTERN = "feed:*"
	IDENTITY_KEY = "identity:%s" // <identityID>
)

func PostKey(postID int64) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func FeedKey(sortKey string, limit int, offset int) string {
	return fmt.Sprintf(FEED_KEY, sortKey, limit, offset)
}

func IdentityKey(identityID string) string {
	return fmt.Sprintf(IDENTITY_KEY, identityID)
}

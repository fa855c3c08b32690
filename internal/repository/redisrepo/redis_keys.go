package redisrepo

import "fmt"

const (
	POST_KEY       = "post:%s"       // <postID>
	LIKE_COUNT_KEY = "post:%s-likes" // <postID>
	FEED_KEY       = "feed:%d:%d"    // <userID>:<limit>
)

func PostKey(postID string) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func LikeCountKey(postID string) string {
	return fmt.Sprintf(LIKE_COUNT_KEY, postID)
}

func FeedKey(userID int64, limit int64) string {
	return fmt.Sprintf(FEED_KEY, userID, limit)
}

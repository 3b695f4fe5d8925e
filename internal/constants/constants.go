package constants

// Redis keys
const (
	RedisKeyRecentEvents = "pools:events:recent"
	RedisKeyPricePrefix  = "pools:price:"
)

// Redis Pub/Sub channels
const (
	PubSubChannelEvents = "pools:events:live"
)

// Limits
const (
	MaxRecentEvents = 200
)

// Package tokenstore keeps the list of revoked auth token ids (jti) until the
// tokens would have expired anyway.
//
// RedisStore shares the list between API replicas; MemoryStore is used when
// REDIS_URL is not configured and in tests.
package tokenstore

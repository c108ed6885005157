// Package redisstore persists subscriptions in Redis, one hash per user.
//
// The subscription is stored as a JSON blob in the doc field while the three
// usage counters live in their own hash fields, adjusted with a Lua script
// that clamps at zero server-side. Every successful write publishes the
// updated subscription on a per-user channel, which backs Watch via pub/sub.
//
// Intended for deployments that already run Redis for sessions or caching
// and do not want a document database for subscription state.
package redisstore

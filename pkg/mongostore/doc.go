// Package mongostore persists subscriptions in MongoDB, one document per user
// keyed by the user ID.
//
// Document field names follow the format produced by the original client-side
// storage (plan, status, startDate, trialEndDate, usage.boardsUsed and so on),
// so existing data loads without migration. All writes are single-document
// operations; usage counters are adjusted with an aggregation pipeline update
// that clamps at zero server-side.
package mongostore

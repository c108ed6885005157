// Package mongo provides MongoDB connection management for the subscription
// storage backend.
//
// Configuration is environment-driven and the initial connection retries on
// transient failures, which keeps startup resilient against slow-starting
// database containers and Atlas hiccups.
//
// # Usage
//
//	cfg := mongo.Config{ConnectionURL: "mongodb://localhost:27017", Database: "taskflow"}
//
//	db, err := mongo.NewDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	store := mongostore.NewStore(db)
//
// Healthcheck wraps a Ping for readiness probes; connection failures wrap
// ErrFailedToConnectToMongo so callers can match with errors.Is.
package mongo

// Package redisconn connects to Redis with retry and exposes a readiness
// probe. Configuration comes from the environment via the Config struct.
//
//	client, err := redisconn.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Sentinel errors wrap the driver errors with errors.Join so callers can
// match them with errors.Is.
package redisconn

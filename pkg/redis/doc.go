// Package redis connects to Redis and exposes it as a session storage
// medium.
//
// Connect retries the initial ping according to Config. Storage wraps the
// resulting client with the Get/Set/Delete contract of session.Storage, so a
// Redis instance can hold the persisted token and user record:
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewFromConfig(redis.NewStorageWithConfig(client, cfg.Redis), cfg.Session)
//
// Healthcheck returns a function suitable for readiness checks.
//
// Missing keys are reported as nil values, never as errors. Command failures
// are wrapped with ErrCommandFailed.
package redis

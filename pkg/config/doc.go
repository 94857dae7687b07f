// Package config populates configuration structs from the process
// environment.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - An optional `.env` in the working directory is read once per process;
//     a missing file is not an error.
//   - WithEnvFiles loads additional files; those must exist.
//   - WithPrefix scopes every tag, so `env:"BASE_URL"` with prefix "QUEST_"
//     reads QUEST_BASE_URL.
//
// Every package in questkit declares its own Config struct with `env` and
// `envDefault` tags (gateway.Config, session.Config, redis.Config,
// logger.Config). The CLI composes them into one struct and calls Load once:
//
//	type Config struct {
//	    Gateway gateway.Config
//	    Session session.Config
//	    Redis   redis.Config
//	    Log     logger.Config
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Unlike a process-wide cache, every call parses the environment again, which
// keeps tests using t.Setenv independent of each other.
package config

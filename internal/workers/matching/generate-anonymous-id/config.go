// internal/workers/matching/generate-anonymous-id/config.go
package generateanonymousid

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

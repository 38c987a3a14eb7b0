package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration is the time.Duration used by Config fields.
type Duration = time.Duration

// parsed reads key and converts it with parse. Unset, blank or rejected values yield def.
func parsed[T any](key string, def T, parse func(string) (T, bool)) T {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, ok := parse(raw); ok {
		return v
	}
	return def
}

func envOrDefault(key, def string) string {
	return parsed(key, def, func(raw string) (string, bool) { return raw, true })
}

// durationEnvOrDefault accepts Go durations ("90m") and bare minutes ("90").
func durationEnvOrDefault(key string, def time.Duration) time.Duration {
	return parsed(key, def, func(raw string) (time.Duration, bool) {
		if mins, err := strconv.Atoi(raw); err == nil {
			return time.Duration(mins) * time.Minute, mins > 0
		}
		d, err := time.ParseDuration(raw)
		return d, err == nil && d > 0
	})
}

func intEnvOrDefault(key string, def int) int {
	return parsed(key, def, func(raw string) (int, bool) {
		n, err := strconv.Atoi(raw)
		return n, err == nil && n > 0
	})
}

func boolEnvOrDefault(key string, def bool) bool {
	return parsed(key, def, func(raw string) (bool, bool) {
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "on":
			return true, true
		case "0", "false", "no", "off":
			return false, true
		}
		return false, false
	})
}

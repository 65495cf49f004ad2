package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// getEnv parses the variable named key, falling back to defaultVal when it is unset or unparsable
func getEnv[T any](key string, defaultVal T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return defaultVal
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		return defaultVal
	}
	return value
}

func getEnvAsString(key string, defaultVal string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	return getEnv(key, defaultVal, strconv.Atoi)
}

func getEnvAsBool(key string, defaultVal bool) bool {
	return getEnv(key, defaultVal, strconv.ParseBool)
}

// getEnvAsTimeDuration accepts Go durations ("15s", "24h") or a bare number of seconds
func getEnvAsTimeDuration(key string, defaultVal time.Duration) time.Duration {
	return getEnv(key, defaultVal, parseDuration)
}

func parseDuration(s string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(s); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(s)
}

// getEnvAsSlice reads a comma separated list; empty entries are dropped
func getEnvAsSlice(key string, defaultVal []string) []string {
	return getEnv(key, defaultVal, func(s string) ([]string, error) {
		var result []string
		for _, v := range strings.Split(s, ",") {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result, nil
	})
}

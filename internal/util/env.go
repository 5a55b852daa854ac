package util

import (
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnv returns the environment variable value or a default.
func GetEnv(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}

	return defaultVal
}

// GetEnvAsInt returns the environment variable parsed as int or a default.
func GetEnvAsInt(key string, defaultVal int) int {
	strVal := GetEnv(key, "")

	if val, err := strconv.Atoi(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsInt64 returns the environment variable parsed as int64 or a default.
func GetEnvAsInt64(key string, defaultVal int64) int64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseInt(strVal, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsUint64 returns the environment variable parsed as uint64 or a default.
func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseUint(strVal, 10, 64); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsBool returns the environment variable parsed as bool or a default.
func GetEnvAsBool(key string, defaultVal bool) bool {
	strVal := GetEnv(key, "")

	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsDuration returns the environment variable parsed as time.Duration or a default.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	strVal := GetEnv(key, "")

	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}

	return defaultVal
}

// GetEnvAsUint64Map returns the environment variable parsed as a map of
// comma-separated "key:value" pairs with uint64 values, or the default.
// Malformed entries invalidate the whole variable rather than being silently
// skipped, so a typo does not half-apply a policy.
func GetEnvAsUint64Map(key string, defaultVal map[string]uint64) map[string]uint64 {
	strVal := GetEnv(key, "")

	if strVal == "" {
		return defaultVal
	}

	res := map[string]uint64{}

	for _, pair := range strings.Split(strVal, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			return defaultVal
		}

		val, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return defaultVal
		}

		res[strings.TrimSpace(k)] = val
	}

	return res
}

// GetEnvAsBigInt returns the environment variable parsed as a base-10 big.Int
// or a copy of the default. Wei amounts exceed int64, hence big.Int.
func GetEnvAsBigInt(key string, defaultVal *big.Int) *big.Int {
	strVal := GetEnv(key, "")

	if val, ok := new(big.Int).SetString(strVal, 10); ok {
		return val
	}

	return new(big.Int).Set(defaultVal)
}

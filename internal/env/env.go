// Package env reads typed values from environment variables with defaults.
package env

import (
	"os"
	"strconv"
	"strings"
)

// GetString returns the value of key, or fallback when it is unset or blank.
func GetString(key, fallback string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	return val
}

// GetInt returns key parsed as an int, or fallback when unset or invalid.
func GetInt(key string, fallback int) int {
	val := GetString(key, "")
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

// GetInt64 returns key parsed as an int64, or fallback when unset or invalid.
func GetInt64(key string, fallback int64) int64 {
	val := GetString(key, "")
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// GetBool accepts anything strconv.ParseBool does.
func GetBool(key string, fallback bool) bool {
	val := GetString(key, "")
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

// GetList splits a comma separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	val := GetString(key, "")
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// GetInt64List is GetList for numeric IDs. Items that do not parse are skipped.
func GetInt64List(key string) []int64 {
	var out []int64
	for _, item := range GetList(key, nil) {
		n, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

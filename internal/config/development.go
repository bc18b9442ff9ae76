package config

import "os"

// Development reports whether developer conveniences (pretty logs,
// debug level) are on. Any value but "0" counts as set.
func Development() bool {
	v, ok := os.LookupEnv("DEVELOPMENT")
	return ok && v != "0"
}

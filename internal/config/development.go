package config

import "os"

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

// LogFile is where the engine log is mirrored to, if anywhere.
func LogFile() (string, bool) {
	path, ok := os.LookupEnv("LOG_FILE")
	return path, ok && path != ""
}

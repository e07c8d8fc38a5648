package mcqgenerator

import "os"

// Config holds everything the server needs at startup. It is built once
// by FromEnv and passed down explicitly; nothing reads the environment
// after that.
type Config struct {
	Addr          string
	DBPath        string
	SessionSecret string
	SessionDir    string
	Verbose       bool
}

// FromEnv loads configuration from the environment with local-dev defaults.
func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":5000"
	}
	dbPath := os.Getenv("MCQ_DB_PATH")
	if dbPath == "" {
		dbPath = "mcqs.db"
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "mcq_generator_secret_key_2024"
	}
	sessionDir := os.Getenv("SESSION_DIR")
	if sessionDir == "" {
		sessionDir = "./sessions"
	}
	verbose := os.Getenv("VERBOSE") == "1" || os.Getenv("VERBOSE") == "true"

	return Config{
		Addr:          addr,
		DBPath:        dbPath,
		SessionSecret: secret,
		SessionDir:    sessionDir,
		Verbose:       verbose,
	}
}

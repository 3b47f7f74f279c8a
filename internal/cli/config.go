package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	UserID     string
	UserIDFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("MAJNU_SERVER", "http://localhost:8080"),
		UserID:     os.Getenv("MAJNU_USER_ID"),
		UserIDFile: getEnvOrDefault("MAJNU_USER_ID_FILE", defaultUserIDFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadUserID loads the persisted user ID if not already set
func (c *Config) LoadUserID() error {
	if c.UserID != "" {
		return nil
	}

	data, err := os.ReadFile(c.UserIDFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No identity yet is fine; the server will mint one
		}
		return err
	}

	c.UserID = strings.TrimSpace(string(data))
	return nil
}

// SaveUserID persists the user ID to the identity file
func (c *Config) SaveUserID(userID string) error {
	c.UserID = userID

	dir := filepath.Dir(c.UserIDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.UserIDFile, []byte(userID), 0600)
}

func defaultUserIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".majnu/user-id"
	}
	return filepath.Join(home, ".majnu", "user-id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

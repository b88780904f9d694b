package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	LogFile       string
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		LogFile:       "",
	}
}

// configPath returns the rc file location, honouring WAYEDIT_CONFIG.
func configPath() string {
	if path := os.Getenv("WAYEDIT_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".wayeditrc")
}

// loadEnvConfig loads a .env from the working directory, which may set
// WAYEDIT_CONFIG or WAYEDIT_DEBUG, and then reads the rc file.
// Variables already in the environment win over the .env.
func loadEnvConfig() *Config {
	_ = godotenv.Load()
	return loadConfig(configPath())
}

// loadConfig reads key=value settings from path. A missing or unreadable
// file leaves the defaults in place.
func loadConfig(path string) *Config {
	config := defaultConfig()

	if path != "" {
		values, err := godotenv.Read(path)
		if err == nil {
			config.apply(values)
		}
	}

	if debug := os.Getenv("WAYEDIT_DEBUG"); debug != "" && config.LogFile == "" {
		config.LogFile = "wayedit.log"
	}
	return config
}

func (c *Config) apply(values map[string]string) {
	for key, value := range values {
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "savedirectory", "save_directory", "savedir":
			c.SaveDirectory = expandPath(value)
		case "confirmations", "confirm":
			c.Confirmations = strings.ToLower(value) == "true"
		case "logfile", "log_file", "log":
			c.LogFile = expandPath(value)
		}
	}
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr  string `yaml:"addr"`
		DBDSN string `yaml:"db_dsn"`
	} `yaml:"server"`
	Photos struct {
		Dir string `yaml:"dir"`
	} `yaml:"photos"`
	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
}

var AppConfig Config

// LoadConfig reads config.yml and then applies environment overrides.
// A .env file next to the binary is honored if present.
func LoadConfig(path string) error {
	godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return err
	}

	if v := os.Getenv("CREWPUSH_ADDR"); v != "" {
		AppConfig.Server.Addr = v
	}
	if v := os.Getenv("CREWPUSH_DB_DSN"); v != "" {
		AppConfig.Server.DBDSN = v
	}
	if v := os.Getenv("CREWPUSH_PHOTO_DIR"); v != "" {
		AppConfig.Photos.Dir = v
	}
	if v := os.Getenv("CREWPUSH_UPLOAD_DIR"); v != "" {
		AppConfig.Uploads.Dir = v
	}
	return nil
}

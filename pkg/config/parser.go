package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envFile is the optional dotenv file read by Load
var envFile = ".env"

// envBindings maps option keys to environment variables, in lookup order
var envBindings = map[string][]string{
	"bucket":                 {"S3_BUCKET"},
	"region":                 {"S3_REGION", "AWS_REGION"},
	"endpoint":               {"S3_ENDPOINT"},
	"public_url":             {"S3_PUBLIC_URL"},
	"access_key_id":          {"S3_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"},
	"secret_access_key":      {"S3_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"},
	"provider":               {"S3_PROVIDER"},
	"acl":                    {"S3_ACL"},
	"overwrite":              {"S3_OVERWRITE"},
	"max_concurrent_uploads": {"S3_MAX_CONCURRENT_UPLOADS"},
	"log_level":              {"LOG_LEVEL"},
	"log_format":             {"LOG_FORMAT"},
}

// Load reads raw options from an optional JSON file, a .env file in the
// working directory and the process environment. Environment wins over the
// file. Nothing is validated here; pass the result to Resolve.
func Load(configFile string) (*Options, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("json")

	if configFile != "" {
		if err := Validate(configFile); err != nil {
			return nil, err
		}
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &opts, nil
}

// loadEnvFile loads a dotenv file into the environment. A missing file is
// fine; a malformed one is not.
func loadEnvFile(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}

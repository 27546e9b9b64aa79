package util

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	RepeatShotAllow  = "allow"
	RepeatShotReject = "reject"
)

type Config struct {
	Port             string `validate:"required,number"`
	TokenKey         string `validate:"required,len=32"`
	RedisAddress     string
	RedisPassword    string
	RepeatShotPolicy string `validate:"required,oneof=allow reject"`
	CorsOrigins      []string
}

func LoadConfig() (*Config, error) {
	godotenv.Load()

	config := &Config{
		Port:             os.Getenv("PORT"),
		TokenKey:         os.Getenv("TOKEN_KEY"),
		RedisAddress:     os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PW"),
		RepeatShotPolicy: os.Getenv("REPEAT_SHOT_POLICY"),
	}

	// rejecting repeated shots is the hardened default; REPEAT_SHOT_POLICY=allow
	// restores the permissive behavior
	if config.RepeatShotPolicy == "" {
		config.RepeatShotPolicy = RepeatShotReject
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		config.CorsOrigins = strings.Split(origins, ",")
	}

	if err := Validate.Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

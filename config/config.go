package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"petfectly_server/discovery"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port           string        `env:"PORT"            envDefault:"8080"`
	AWSRegion      string        `env:"AWS_REGION"      envDefault:"us-east-1"`
	S3Bucket       string        `env:"S3_BUCKET_NAME"`
	DynamoEndpoint string        `env:"DYNAMO_ENDPOINT"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL       time.Duration `env:"TOKEN_TTL"       envDefault:"24h"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:3000" envSeparator:","`
	UploadURLTTL   time.Duration `env:"UPLOAD_URL_TTL"  envDefault:"5m"`

	MinSwipeDistance float64       `env:"MIN_SWIPE_DISTANCE" envDefault:"50"`
	MatchThreshold   float64       `env:"MATCH_THRESHOLD"    envDefault:"0.3"`
	DislikeDelay     time.Duration `env:"DISLIKE_DELAY"      envDefault:"300ms"`
	MatchRevealDelay time.Duration `env:"MATCH_REVEAL_DELAY" envDefault:"500ms"`
}

// Load reads an optional .env file from the working directory and then parses
// the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	} else if err == nil {
		log.Println("✅ Loaded .env")
	}
	return Parse()
}

// Parse loads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MatchThreshold <= 0 || cfg.MatchThreshold >= 1 {
		return Config{}, fmt.Errorf("MATCH_THRESHOLD must be in (0,1), got %v", cfg.MatchThreshold)
	}
	if cfg.MinSwipeDistance <= 0 {
		return Config{}, fmt.Errorf("MIN_SWIPE_DISTANCE must be positive, got %v", cfg.MinSwipeDistance)
	}
	return cfg, nil
}

// Discovery returns the swipe rules configured for discovery sessions.
func (c Config) Discovery() discovery.Config {
	return discovery.Config{
		MinSwipeDistance: c.MinSwipeDistance,
		MatchThreshold:   c.MatchThreshold,
		DislikeDelay:     c.DislikeDelay,
		MatchRevealDelay: c.MatchRevealDelay,
	}
}

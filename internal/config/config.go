package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8080"
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "gallery"
	defaultJWTTTL    = "168h"
	defaultBucket    = "gallery"
	defaultJWTSecret = "change-me-jwt-secret"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTTTL        time.Duration
	Blob          BlobConfig
}

// BlobConfig configures the S3-compatible object store and the imaging
// proxy that serves derived thumbnails in front of the bucket.
type BlobConfig struct {
	Endpoint         string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UseSSL           bool
	PublicBaseURL    string
	ThumbnailBaseURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		MongoURI:      getEnv("MONGO_URI", defaultMongoURI),
		MongoDatabase: getEnv("MONGO_DATABASE", defaultMongoDB),
		JWTSecret:     strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.Blob = BlobConfig{
		Endpoint:  getEnv("BLOB_ENDPOINT", "localhost:9000"),
		AccessKey: os.Getenv("BLOB_ACCESS_KEY"),
		SecretKey: os.Getenv("BLOB_SECRET_KEY"),
		Bucket:    getEnv("BLOB_BUCKET", defaultBucket),
	}
	cfg.Blob.UseSSL, err = parseBoolEnv("BLOB_USE_SSL", "false")
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if cfg.Blob.UseSSL {
		scheme = "https"
	}
	cfg.Blob.PublicBaseURL = getEnv("BLOB_PUBLIC_BASE_URL",
		fmt.Sprintf("%s://%s", scheme, cfg.Blob.Endpoint))
	cfg.Blob.ThumbnailBaseURL = getEnv("THUMBNAIL_BASE_URL",
		cfg.Blob.PublicBaseURL+"/thumb")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %q", key, raw)
	}
	return d, nil
}

func parseBoolEnv(key, fallback string) (bool, error) {
	raw := getEnv(key, fallback)
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid bool in %s: %q", key, raw)
	}
	return b, nil
}

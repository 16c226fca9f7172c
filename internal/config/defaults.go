package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Built-in fallback values applied when no other configuration source sets
// the field. Secrets (token sign key, DB DSN, MinIO credentials) have no
// defaults on purpose and must be provided explicitly.
const (
	DefaultHTTPAddress    = ":8080"
	DefaultRequestTimeout = 30 * time.Second

	DefaultTokenIssuer   = "placer-server"
	DefaultTokenDuration = time.Hour
	DefaultBcryptCost    = 12

	DefaultImagesBackend = "disk"
	DefaultImagesDir     = "uploads/images"

	DefaultGeocoderBaseURL = "https://nominatim.openstreetmap.org"
	DefaultGeocoderAgent   = "placer-server"
	DefaultGeocoderTimeout = 10 * time.Second
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			BcryptCost:    DefaultBcryptCost,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			Images: Images{
				Backend: DefaultImagesBackend,
				Dir:     DefaultImagesDir,
			},
		},
		Geocoder: Geocoder{
			BaseURL:        DefaultGeocoderBaseURL,
			UserAgent:      DefaultGeocoderAgent,
			RequestTimeout: DefaultGeocoderTimeout,
		},
	}
}

// clampBcryptCost keeps the configured cost inside the range supported by
// the bcrypt implementation.
func clampBcryptCost(cost int) int {
	if cost < bcrypt.MinCost {
		return DefaultBcryptCost
	}
	if cost > bcrypt.MaxCost {
		return bcrypt.MaxCost
	}
	return cost
}

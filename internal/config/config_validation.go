// SPDX-License-Identifier: Apache-2.0

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup, and normalises
// values that have a constrained range.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	switch cfg.Storage.Images.Backend {
	case "disk":
		if cfg.Storage.Images.Dir == "" {
			return ErrInvalidImageStoreConfigs
		}
	case "minio":
		minio := cfg.Storage.Images.MinIO
		if minio.Endpoint == "" || minio.AccessKey == "" || minio.SecretKey == "" || minio.Bucket == "" {
			return ErrInvalidImageStoreConfigs
		}
	default:
		return ErrInvalidImageStoreConfigs
	}

	if cfg.Geocoder.BaseURL == "" || cfg.Geocoder.RequestTimeout <= 0 {
		return ErrInvalidGeocoderConfigs
	}

	cfg.App.BcryptCost = clampBcryptCost(cfg.App.BcryptCost)

	return nil
}

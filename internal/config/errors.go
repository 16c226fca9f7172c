package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid database settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a missing token sign key or non-positive token duration).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidImageStoreConfigs indicates an unknown image storage backend
	// or incomplete settings for the selected backend.
	ErrInvalidImageStoreConfigs = errors.New("invalid image store configuration")
	// ErrInvalidGeocoderConfigs indicates incomplete geocoder settings
	// (for example, an empty base URL).
	ErrInvalidGeocoderConfigs = errors.New("invalid geocoder configuration")
)

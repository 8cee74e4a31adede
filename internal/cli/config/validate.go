package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.UI.Port < 0 || c.UI.Port > 65535 {
		return fmt.Errorf("%w: ui.port must be between 0 and 65535, got %d", ErrInvalid, c.UI.Port)
	}
	if c.UI.PreviewRows < 1 {
		return fmt.Errorf("%w: ui.preview_rows must be at least 1, got %d", ErrInvalid, c.UI.PreviewRows)
	}
	if c.UI.MaxUploadMB < 1 {
		return fmt.Errorf("%w: ui.max_upload_mb must be at least 1, got %d", ErrInvalid, c.UI.MaxUploadMB)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("%w: session.secret is required", ErrInvalid)
	}
	if c.Session.IdleTimeout <= 0 {
		return fmt.Errorf("%w: session.idle_timeout must be positive", ErrInvalid)
	}
	if c.Session.MaxAge <= 0 {
		return fmt.Errorf("%w: session.max_age must be positive", ErrInvalid)
	}
	return nil
}

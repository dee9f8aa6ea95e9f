package bootstrap

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/auth"
	"github.com/haleem-akmal/portfolio/internal/auth/identitytoolkit"
	"github.com/haleem-akmal/portfolio/internal/auth/static"
)

// NewProvider returns the identity backend selected by AUTH_DRIVER.
func NewProvider(ctx context.Context, cfg *config.Config, app *firebase.App) (auth.Provider, error) {
	switch cfg.Auth.Driver {
	case config.AuthStatic:
		return static.New(cfg.Auth.AdminEmail, cfg.Auth.AdminPasswordHash, cfg.Auth.SessionTTL), nil

	case config.AuthFirebase:
		if app == nil {
			return nil, fmt.Errorf("firebase auth needs a firebase app")
		}
		client, err := app.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get Auth client: %w", err)
		}
		return identitytoolkit.New(cfg.Firebase.IdentityToolkitURL, cfg.Firebase.APIKey, client), nil

	default:
		return nil, fmt.Errorf("unknown auth driver %q", cfg.Auth.Driver)
	}
}

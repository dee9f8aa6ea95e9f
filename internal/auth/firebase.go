package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/auth/domain"
)

// Provider is the identity backend the admin signs in against.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error)
	Verify(ctx context.Context, idToken string) (*domain.Identity, error)
	Revoke(ctx context.Context, uid string) error
}

// InitializeFirebase initializes the Firebase Admin SDK app shared by the auth client and Firestore.
// Without a credentials file the SDK falls back to application default credentials.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return app, nil
}

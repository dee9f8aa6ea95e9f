package bootstrap

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/store"
	"github.com/haleem-akmal/portfolio/internal/store/firestore"
	"github.com/haleem-akmal/portfolio/internal/store/memory"
	"github.com/haleem-akmal/portfolio/internal/store/postgres"
)

type DBOptions struct {
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenStore returns the document store selected by STORE_DRIVER. app may be nil unless the
// driver is firestore.
func OpenStore(ctx context.Context, cfg *config.Config, app *firebase.App, opt DBOptions) (store.Store, error) {
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	switch cfg.Store.Driver {
	case config.StoreMemory:
		return memory.New(), nil

	case config.StoreFirestore:
		if app == nil {
			return nil, fmt.Errorf("firestore store needs a firebase app")
		}
		cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
		defer cancel()

		client, err := app.Firestore(cctx)
		if err != nil {
			return nil, fmt.Errorf("firestore connect: %w", err)
		}
		return firestore.New(client), nil

	case config.StorePostgres:
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		s := postgres.New(db)

		mctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
		defer cancel()
		if err := s.Migrate(mctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("db migrate: %w", err)
		}

		pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
		defer pcancel()
		if err := s.Ping(pctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

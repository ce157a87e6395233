// internal/database/store.go
package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/store"
)

// OpenStore connects the backend selected by STORE_DRIVER and prepares its
// schema or indexes. The returned close function releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, log *logrus.Logger) (store.Backend, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, db, err := ConnectMongo(ctx, cfg.Mongo, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { DisconnectMongo(context.Background(), client, log) }

		mongoStore := store.NewMongoStore(db, cfg.Mongo.Collections())
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}
		return mongoStore, closeFn, nil

	case config.StoreDriverPostgres, config.StoreDriverSQLite:
		db, err := Initialize(cfg.Store.Driver, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { Close(db, log) }

		if err := RunMigrations(db, log); err != nil {
			closeFn()
			return nil, nil, err
		}
		return store.NewSQLStore(db), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

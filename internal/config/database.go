// internal/config/database.go
package config

import (
	"fmt"
	"time"

	"github.com/javajoker/realestate-backend/internal/store"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

func (m *MongoConfig) Collections() store.MongoCollections {
	return store.MongoCollections{
		Properties:     m.PropertiesCollection,
		Owners:         m.OwnersCollection,
		PropertyImages: m.PropertyImagesCollection,
		PropertyTraces: m.PropertyTracesCollection,
	}
}

func (m *MongoConfig) Timeout() time.Duration {
	return time.Duration(m.ConnectTimeout) * time.Second
}

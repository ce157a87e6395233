// internal/store/backend.go
package store

// Backend is a store that can be both read and seeded.
type Backend interface {
	PropertyStore
	Seeder
}

var (
	_ Backend = (*SQLStore)(nil)
	_ Backend = (*MongoStore)(nil)
)

// Project Structure Overview
/*
realestate-backend/
├── cmd/
│   ├── server/
│   │   └── main.go
│   ├── seed/
│   │   └── main.go
│   └── browse/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── database/
│   │   ├── connection.go
│   │   ├── mongo.go
│   │   └── store.go
│   ├── models/
│   │   ├── property.go
│   │   └── query.go
│   ├── store/
│   │   ├── store.go
│   │   ├── backend.go
│   │   ├── mongo_store.go
│   │   └── sql_store.go
│   ├── services/
│   │   └── property_service.go
│   ├── handlers/
│   │   ├── health.go
│   │   └── property.go
│   ├── middleware/
│   │   ├── cors.go
│   │   ├── rate_limit.go
│   │   ├── i18n.go
│   │   └── logging.go
│   ├── i18n/
│   │   ├── i18n.go
│   │   ├── locales/
│   │   │   ├── en.json
│   │   │   └── es.json
│   │   └── keys.go
│   ├── utils/
│   │   ├── logger.go
│   │   ├── validator.go
│   │   ├── pagination.go
│   │   └── response.go
│   ├── router/
│   │   └── router.go
│   ├── client/
│   │   └── client.go
│   ├── cache/
│   │   ├── cache.go
│   │   └── storage.go
│   ├── browse/
│   │   ├── controller.go
│   │   ├── detail.go
│   │   └── render.go
│   ├── seed/
│   │   └── dataset.go
│   └── tests/
├── go.mod
└── go.sum
*/

package realestate

// This file shows the project structure
// The entry points live under cmd/ as shown in the structure above

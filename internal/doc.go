// Package internal contains the private application code for the
// Rinkline server.
//
// Layout:
//
//   - api: HTTP handlers, middleware, and routing
//   - domain: business logic (schedule risk detection, games, tournaments)
//   - storage: database access and repositories (pgx + Postgres)
//   - jobs: background workers and queues
//   - config, metrics, email, telemetry: shared infrastructure
package internal

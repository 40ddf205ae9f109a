// Package client holds the transport side of the Ishara session layer.
//
// # Overview
//
//  1. Client: the request/response contract for the authentication backend.
//     Each call yields an AuthResult (a User, or a refusal Reason) or a
//     transport error.
//  2. MockClient: the current backend. It fabricates successful results
//     after an artificial latency and never checks credentials.
//  3. HealthProbe: a gRPC health-v1 liveness check used by the terminal
//     client to show whether the backend endpoint is reachable.
//  4. InitDatabase / RunMigrations: opens the local SQLite file and applies
//     the embedded goose migrations.
//
// # Errors
//
// ErrUnavailable and ErrUnauthorized are matched with errors.Is. Any other
// gRPC status is wrapped as "rpc error: ...".
package client

// Package metadata is the client's small key/value store. The session slot
// lives here under a single key, next to any other per-device settings.
//
// Two backends implement Repository:
//
//   - SQLiteRepository: a "metadata" table in the local database file. This is
//     the default and survives restarts of a single device.
//   - RedisRepository: namespaced keys on a Redis server, for kiosks or shared
//     terminals that should see one session across processes.
//
// Get returns (nil, nil) for a missing key in both backends, and Delete of a
// missing key is not an error.
package metadata

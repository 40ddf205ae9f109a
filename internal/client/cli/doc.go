// Package cli provides the interactive Ishara command-line client.
//
// It wires configuration, the durable session slot, the auth backend and the
// session manager, then runs a REPL on top of them. A background watcher
// reports backend connectivity when a health endpoint is configured.
//
// Commands: login, signup (alias register), logout, whoami, status, help,
// exit. The REPL is started via App.Root(ctx), which blocks until the user
// exits. See NewApp, StartOnlineStatusWatcher, and runREPL for details.
package cli

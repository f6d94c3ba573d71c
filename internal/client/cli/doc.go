// Package cli provides the interactive WealthWise command-line client.
//
// It wires configuration, local storage, the authenticated HTTP pipeline,
// the REST services and the session provider behind a small REPL. The
// router doubles as the pipeline's navigator: when a session cannot be
// refreshed the pipeline moves it to /login and the REPL asks for
// credentials again.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL, App.commands and StartNotificationWatcher for details.
package cli

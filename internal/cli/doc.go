// Package cli provides the interactive eventreg terminal client.
//
// It drives the auth and event state services through a small REPL:
// register or log in, browse the event catalog, save and join events and
// leave a comment on the ones you joined. The REPL is started via
// App.Run(ctx), which blocks until the user exits or input ends.
package cli

// Package cli provides the interactive wardrobe command-line client.
//
// It wires configuration, the HTTP API client and a read-eval-print loop.
// Typical flow: check that the server answers, log in or register, then
// browse outfits, tag and comment on them, or upload images.
//
// The REPL is started via App.Run(ctx, in), which blocks until the user
// exits or input ends. See runREPL for the command list.
package cli

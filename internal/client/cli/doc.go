// Package cli provides the interactive CASIEC console.
//
// It renders the public site as short text listings, drives the inquiry
// wizard from prompts, and gives signed-in staff the CMS dashboard. Typical
// flow: browse with "go <view>", apply or get in touch, or "login" with a
// password and emailed code to moderate applications and edit content.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and Board for details.
package cli

// Package viz renders archived cam runs in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas used to trace the cam outline
//   - [FrictionChart]: asciigraph plot of the required friction
//   - [Inspector]: read-only Bubble Tea viewer for a stored run
//
// # Key Bindings
//
//	Tab/→  - Next view
//	⇧Tab/← - Previous view
//	Q      - Quit
package viz

// Package common holds the few constants and helpers shared by the game
// shell and its UI.
package common

const (
	BaseWidth  = 800
	BaseHeight = 600
)

// Package ui provides the color theme shared by the REPL, the one-shot CLI
// output and the calibration table. Styles are lipgloss styles, so color
// output degrades automatically when the terminal does not support it.
package ui

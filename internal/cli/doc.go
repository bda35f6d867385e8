// Package cli provides the interactive REPL and the terminal presentation of
// evaluation results.
//
// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* and Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [PrintExecutionConfig].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatLimbs], [FormatQuietResult].
package cli

// Package cli is the command-line surface of picalc: the cobra command
// tree, the progress spinner and the result presenter.
//
// Functions follow a naming pattern by behavior:
//
//   - Display* and Print* write formatted, colorized output to an [io.Writer].
//   - Format* return strings and perform no I/O.
//   - Write* write to the filesystem.
package cli

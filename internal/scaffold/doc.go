// Package scaffold creates a new krepel project from a template set. It powers
// the root krepel-new command: it derives the project names, prepares the
// destination directory, and writes every template file with its contents and
// relative path expanded through the substitute package.
package scaffold

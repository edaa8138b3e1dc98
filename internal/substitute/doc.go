// Package substitute expands ~name placeholders in template text.
//
// The delimiter is a tilde so templates can use braces freely: CMake's
// ${VAR} and C++ blocks pass through untouched. The grammar is
//
//	~~          a literal tilde
//	~name       the value of name (longest identifier match)
//	~{name}     the value of name, usable next to identifier characters
//
// where name is [_A-Za-z][_A-Za-z0-9]*. Any other use of the delimiter is an
// error, as is a name with no value in the mapping.
package substitute

package scaffold

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NameSeparator joins the words of a friendly name.
const NameSeparator = "_"

// DeriveNames returns the friendly name with every whitespace run collapsed
// to NameSeparator ("Hello  World" becomes "Hello_World") and its upper-cased
// form for use as a CMake symbol.
func DeriveNames(name string) (friendly, cmake string, err error) {
	friendly = strings.Join(strings.Fields(name), NameSeparator)
	if friendly == "" {
		return "", "", fmt.Errorf("project name %q is empty", name)
	}
	return friendly, cases.Upper(language.Und).String(friendly), nil
}

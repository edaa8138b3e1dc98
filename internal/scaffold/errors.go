package scaffold

import "errors"

var (
	// ErrDestinationIsFile is returned when the destination path exists and
	// is not a directory. Nothing is modified.
	ErrDestinationIsFile = errors.New("destination already exists and is a file")

	// ErrOverwriteDeclined is returned when the user refuses to overwrite an
	// existing destination directory. Nothing is modified.
	ErrOverwriteDeclined = errors.New("overwrite declined")

	// ErrNoTemplateSource is returned when no template source root was given
	// by flag, environment, or config file.
	ErrNoTemplateSource = errors.New("template source not set")

	// ErrTemplateNotFound is returned when the template source root or the
	// requested template set does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrPathEscapesDestination is returned when a substituted template path
	// would land outside the destination directory.
	ErrPathEscapesDestination = errors.New("template path escapes destination")

	// ErrDuplicateOutput is returned when two template files expand to the
	// same destination path.
	ErrDuplicateOutput = errors.New("template files collide")

	// ErrReservedVariable is returned when an extra variable tries to replace
	// one of the built-in placeholders.
	ErrReservedVariable = errors.New("variable name is reserved")
)

package binding

import "fmt"

// OpenErrorKind distinguishes the two ways a load can fail.
type OpenErrorKind int

const (
	// FileUnreadable means the path could not be opened or read.
	FileUnreadable OpenErrorKind = iota
	// ContentUnparseable means the file contents were not a valid grid document.
	ContentUnparseable
)

// OpenError is returned by Form.Load. The document and all bound fields
// are guaranteed untouched when it is returned.
type OpenError struct {
	Kind OpenErrorKind
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Kind == ContentUnparseable {
		return fmt.Sprintf("could not deserialize data from file %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("could not open file %q for reading: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SaveErrorKind distinguishes the two ways a save can fail.
type SaveErrorKind int

const (
	// FileUnwritable means the path could not be created, truncated, or written.
	FileUnwritable SaveErrorKind = iota
	// ContentUnserializable means the calculator could not be serialized.
	ContentUnserializable
)

// SaveError is returned by Form.Save. The remembered file path is only
// updated on full success, never when this is returned.
type SaveError struct {
	Kind SaveErrorKind
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	if e.Kind == ContentUnserializable {
		return fmt.Sprintf("could not serialize data to file %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("could not open file %q for writing: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

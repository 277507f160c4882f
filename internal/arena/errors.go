package arena

import "errors"

// ErrOutOfMemory is the panic payload delivered when the page provider
// cannot satisfy a mapping request. The facade has no reserve to fall back
// on, so there is no recoverable error return path; a caller running under
// recover observes this value.
var ErrOutOfMemory = errors.New("arena: out of memory")

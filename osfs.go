package settler

import (
	"io/fs"
	"os"
	"path/filepath"
)

// osFS reads migrations from the OS filesystem, relative to the working directory. Names are
// slash-separated as fs.FS requires and converted before opening.
type osFS struct{}

var _ fs.FS = (*osFS)(nil)

func (osFS) Open(name string) (fs.File, error) { return os.Open(filepath.FromSlash(name)) }

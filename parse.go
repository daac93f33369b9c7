package settler

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mfridman/interpolate"
)

// UndoMarker separates the do section of a migration file from its undo section.
const UndoMarker = "@UNDO"

// ParserOptions controls how migration files are read and validated.
type ParserOptions struct {
	// MinSectionLength rejects a do or undo section shorter than this many characters after comments
	// and surrounding whitespace are removed. Zero disables the check.
	MinSectionLength int
	// EnvSubstitution expands ${VAR} and $VAR references in both sections using the process
	// environment.
	EnvSubstitution bool
	// Exclude lists base names in the migrations directory that are not migrations.
	Exclude []string
}

var matchLineComments = regexp.MustCompile(`(?m)--.*$`)

// ParseRevision parses the revision from a migration filename of the form
// {revision}_{name}.sql. The revision is everything before the first '_'.
func ParseRevision(filename string) (int64, error) {
	base := path.Base(filename)
	prefix, _, _ := strings.Cut(base, "_")
	rev, err := strconv.ParseInt(prefix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrRevisionUnparsable, prefix)
	}
	if rev < 0 {
		return 0, fmt.Errorf("%w: %d", ErrRevisionNegative, rev)
	}
	return rev, nil
}

func parseMigration(fsys fs.FS, name string, opts ParserOptions) (*Migration, error) {
	filename := path.Base(name)
	wrap := func(err error) error {
		return &ParseError{Path: name, Filename: filename, Err: err}
	}
	rev, err := ParseRevision(filename)
	if err != nil {
		return nil, wrap(err)
	}
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, wrap(fmt.Errorf("failed to read file: %w", err))
	}
	do, undo, err := splitSections(string(raw))
	if err != nil {
		return nil, wrap(err)
	}
	if opts.EnvSubstitution {
		if do, err = expandEnv(do); err != nil {
			return nil, wrap(err)
		}
		if undo, err = expandEnv(undo); err != nil {
			return nil, wrap(err)
		}
	}
	if n := opts.MinSectionLength; n > 0 {
		if got := utf8.RuneCountInString(do); got < n {
			return nil, wrap(fmt.Errorf("%w: do section has %d characters, want at least %d",
				ErrSectionTooShort, got, n))
		}
		if got := utf8.RuneCountInString(undo); got < n {
			return nil, wrap(fmt.Errorf("%w: undo section has %d characters, want at least %d",
				ErrSectionTooShort, got, n))
		}
	}
	return &Migration{
		Revision: rev,
		Filename: filename,
		Path:     name,
		Do:       do,
		Undo:     undo,
	}, nil
}

func splitSections(raw string) (do, undo string, err error) {
	if n := strings.Count(raw, UndoMarker); n != 1 {
		return "", "", fmt.Errorf("%w: found %d %s markers, want exactly 1", ErrSeparatorMissing, n, UndoMarker)
	}
	before, after, _ := strings.Cut(raw, UndoMarker)
	return stripComments(before), stripComments(after), nil
}

// stripComments removes '--' line comments, whether they start a line or trail a statement, and
// trims surrounding whitespace.
func stripComments(sql string) string {
	return strings.TrimSpace(matchLineComments.ReplaceAllString(sql, ""))
}

type envWrapper struct{}

var _ interpolate.Env = (*envWrapper)(nil)

func (envWrapper) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func expandEnv(s string) (string, error) {
	expanded, err := interpolate.Interpolate(envWrapper{}, s)
	if err != nil {
		return "", fmt.Errorf("failed to substitute environment variables: %w", err)
	}
	return expanded, nil
}

package settler

import "fmt"

// NoRevision is the revision of an empty migration set and of a database on which no migration
// has been applied.
const NoRevision int64 = -1

// Migration is a single parsed migration file. It is immutable once loaded.
type Migration struct {
	// Revision is the position of the migration in the total order, parsed from the filename.
	Revision int64
	// Filename is the base name of the file, e.g. 003_add_users.sql.
	Filename string
	// Path is the path of the file inside the filesystem it was loaded from.
	Path string
	// Do and Undo are the forward and reverse SQL, with comments stripped and whitespace trimmed.
	Do   string
	Undo string
}

// SQL returns the undo SQL if reverse is true, otherwise the do SQL.
func (m *Migration) SQL(reverse bool) string {
	if reverse {
		return m.Undo
	}
	return m.Do
}

func (m *Migration) String() string {
	return fmt.Sprintf("%s (revision %d)", m.Filename, m.Revision)
}

package media

import "io/fs"

// Asset is one file under the asset root scheduled for re-encoding.
type Asset struct {
	Path     string
	Category Category
	Size     int64
	Mode     fs.FileMode
}

// SkippedEntry records a path discovery could not consider, such as an
// unreadable directory or a symlink.
type SkippedEntry struct {
	Path   string
	Reason string
}

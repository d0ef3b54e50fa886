package port

// FileWalker enumerates the files under a root that pass its glob filters.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)

	// Matches reports whether a slash-separated relative path passes the filters.
	Matches(relPath string) bool
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}

type TextReader interface {
	ReadText(path string) (string, error)
}

package driver

// FileStatus is the lifecycle stage of one file in ParseDir.
type FileStatus uint8

const (
	FileQueued FileStatus = iota
	FileParsing
	FileDone
	FileCached
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileParsing:
		return "parsing"
	case FileDone:
		return "done"
	case FileCached:
		return "cached"
	case FileFailed:
		return "failed"
	}
	return "unknown"
}

// FileEvent reports progress of one file; consumed by the --ui progress view.
type FileEvent struct {
	Path   string
	Status FileStatus
	Items  int
	Errors uint
	Err    error
}

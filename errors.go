package xlgrid

import "errors"

var (
	// ErrIndexOutOfBounds is returned when a row or column index falls
	// outside the grid. The grid is left unchanged.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrEmpty is returned by remove operations on a dimension that has no
	// rows or columns left. It reports a no-op rather than a failure.
	ErrEmpty = errors.New("nothing to remove")

	// ErrUnsupportedFormat is returned for file extensions that have no
	// reader or writer.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrImportFailed is returned by Document.Save when the document's file
	// exists but could not be read. Saving would replace it with the empty
	// table that was substituted, so only SaveAs writes there.
	ErrImportFailed = errors.New("file could not be imported")
)

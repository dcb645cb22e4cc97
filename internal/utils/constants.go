package utils

import "os"

// =============================================================================
// Buffer Constants
// =============================================================================

const (
	// DefaultBufferSize is the window size of buffered streams and files
	DefaultBufferSize = 32768

	// MinBufferSize is the smallest accepted buffer; it must hold one
	// element of the widest variant and satisfies bufio's own minimum
	MinBufferSize = 16

	// DefaultFileMode is the permission used when a file is created
	DefaultFileMode os.FileMode = 0o644
)

// =============================================================================
// Table Constants
// =============================================================================

const (
	// RowChunkBudget is the number of bytes of rows a table moves between
	// flushes of its stream
	RowChunkBudget = 65536
)

// =============================================================================
// Text Codec Constants
// =============================================================================

const (
	// DefaultTruncationFill fills fields whose value does not fit
	DefaultTruncationFill = '*'

	// SimpleMin and SimpleMax bound the magnitudes written in fixed-point
	// notation
	SimpleMin = 1e-3
	SimpleMax = 1e6

	// DefaultFieldWidth is the text field width used by the dump tool
	DefaultFieldWidth = 14
)

// =============================================================================
// Compression Constants
// =============================================================================

const (
	// CompressionNone disables stream compression
	CompressionNone = "none"

	// LayoutSuffix names the JSON sidecar written next to table files
	LayoutSuffix = ".layout.json"
)

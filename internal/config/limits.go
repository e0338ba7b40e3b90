package config

const (
	// MaxNameLength is the maximum length for folder and file names.
	// Limited to 255 to match common filesystem limits and provide
	// reasonable UX (names should be short and descriptive).
	MaxNameLength = 255

	// MaxFolderDepth is the maximum nesting depth of folders, counted
	// from the root folder at depth 0. Creating a child of a folder
	// already at MaxFolderDepth is rejected. The bound also keeps tree
	// recursion shallow.
	MaxFolderDepth = 32
)

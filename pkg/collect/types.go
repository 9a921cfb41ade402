// Package collect discovers input files and reads them concurrently.
package collect

import "splitkit/pkg/ignore"

// Options selects which files Files keeps.
type Options struct {
	Extensions    map[string]string   // supported extensions; nil accepts any
	Ignore        ignore.IgnoreParser // nil ignores nothing
	MaxFileSizeKB int                 // 0 means unlimited
	MaxDepth      int                 // directory levels below a root to descend; 0 means unlimited
	Verbose       bool                // log every skipped file
}

// Collected holds categorized lists of discovered files.
type Collected struct {
	Regular []string      // text files to process, sorted
	Binary  []string      // files rejected as binary, sorted
	Skipped []SkippedFile // explicitly named files that were filtered out
}

// SkippedFile records why an explicitly named input was dropped.
type SkippedFile struct {
	Path   string
	Reason error
}

// FileContent is one file read by ReadAll.
type FileContent struct {
	Path    string // absolute path
	Rel     string // slash-separated path relative to the read root
	Content string // decoded, CRLF-normalized text
}

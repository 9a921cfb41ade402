// Package merge concatenates documents into a single markdown file.
package merge

import (
	"fmt"
	"sort"
	"strings"

	"splitkit/pkg/collect"
	errs "splitkit/pkg/errors"
)

// Separator is placed after every merged document.
const Separator = "\n\n---\n\n"

// Options controls the merged layout.
type Options struct {
	IncludeHeader bool // prefix each document with a "File: <rel>" heading
	HeaderLevel   int  // heading depth of that prefix, at least 1
}

// Documents merges contents ordered case-insensitively by relative path.
// Each document is trimmed and followed by Separator; the result is
// trimmed and ends with a single newline.
func Documents(contents []collect.FileContent, opts Options) (string, error) {
	if len(contents) == 0 {
		return "", errs.ErrNoFilesFound
	}
	docs := make([]collect.FileContent, len(contents))
	copy(docs, contents)
	sort.SliceStable(docs, func(i, j int) bool {
		a, b := strings.ToLower(docs[i].Rel), strings.ToLower(docs[j].Rel)
		if a != b {
			return a < b
		}
		return docs[i].Rel < docs[j].Rel
	})

	prefix := strings.Repeat("#", max(1, opts.HeaderLevel))
	var b strings.Builder
	for _, doc := range docs {
		if opts.IncludeHeader {
			fmt.Fprintf(&b, "%s File: %s\n\n", prefix, doc.Rel)
		}
		b.WriteString(strings.TrimSpace(doc.Content))
		b.WriteString(Separator)
	}
	return strings.TrimSpace(b.String()) + "\n", nil
}

package chmgen

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// ReaderOptions controls how ReadTable extracts keys from a text file.
type ReaderOptions struct {
	// Comment starts a comment running to the end of the line. A line whose
	// first non-blank text is a comment is skipped entirely. Empty disables
	// comment handling.
	Comment string

	// SplitBy separates columns within a line. Empty means the whole line
	// (after comment stripping) is the key.
	SplitBy string

	// KeyCol is the 1-based column holding the key. Ignored when SplitBy
	// is empty.
	KeyCol int
}

// DefaultReaderOptions returns the conventional table layout: hash comments,
// comma-separated columns, key in the first column.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{Comment: "#", SplitBy: ",", KeyCol: 1}
}

// ReadTable reads keys from a delimited text file, one key per line, in
// file order. The file is memory-mapped and scanned sequentially; the
// returned keys do not alias the mapping.
func ReadTable(path string, opts ReaderOptions) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat key file: %w", err)
	}
	// mmap rejects empty files on some platforms; an empty key file has a
	// better error anyway.
	if stat.Size() == 0 {
		return nil, fmt.Errorf("%w: %s", chmerrors.ErrNoKeys, path)
	}

	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap key file: %w", err)
	}
	defer mm.Unmap()

	return parseTable([]byte(mm), path, opts)
}

// parseTable extracts keys from raw table data. name is used in errors.
func parseTable(data []byte, name string, opts ReaderOptions) ([]string, error) {
	if opts.SplitBy != "" && opts.KeyCol < 1 {
		return nil, fmt.Errorf("%w: %s: column numbers start at 1, got %d",
			chmerrors.ErrKeyColumnMissing, name, opts.KeyCol)
	}

	var keys []string
	lineno := 0
	for len(data) > 0 {
		lineno++
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}

		text := strings.TrimSpace(string(line))
		if text == "" {
			continue
		}
		if opts.Comment != "" {
			if strings.HasPrefix(text, opts.Comment) {
				continue
			}
			if i := strings.Index(text, opts.Comment); i >= 0 {
				text = strings.TrimSpace(text[:i])
			}
		}

		key := text
		if opts.SplitBy != "" {
			cols := strings.Split(text, opts.SplitBy)
			if opts.KeyCol > len(cols) {
				return nil, fmt.Errorf("%w: %s:%d: no column %d",
					chmerrors.ErrKeyColumnMissing, name, lineno, opts.KeyCol)
			}
			key = strings.TrimSpace(cols[opts.KeyCol-1])
		}
		keys = append(keys, key)
	}

	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %s", chmerrors.ErrNoKeys, name)
	}
	return keys, nil
}

// ReadTemplate reads a template file verbatim.
func ReadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template file: %w", err)
	}
	return string(data), nil
}

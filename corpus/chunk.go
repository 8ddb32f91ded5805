// Package corpus splits a training file into byte-aligned chunks so
// that each worker thread can read an independent region without
// coordination, and counts the lines/tokens the training loop needs
// to drive its learning-rate schedule.
package corpus

import (
	"bufio"
	"os"
	"strings"

	"github.com/eske/multivec-go/werrors"
)

// Chunks describes how a training file was split: Offsets holds one
// starting byte offset per worker (length N, or fewer if the file has
// fewer lines than workers), Lines is the total line count and Words
// is the total whitespace-split token count across the whole file.
type Chunks struct {
	Offsets []int64
	Lines   int64
	Words   int64
}

// Chunkify opens path, records the byte offset at the start of every
// line, counts whitespace-split tokens, and returns n starting
// offsets evenly spaced by line count: offset_i = linePositions[i *
// floor(L/n)]. The last worker reads to EOF.
func Chunkify(path string, n int) (*Chunks, error) {
	const op = "corpus.Chunkify"
	if n <= 0 {
		return nil, werrors.New(werrors.InvalidInput, op, "n must be positive")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, werrors.Wrap(werrors.IoError, op, err)
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil && info.Size() == 0 {
		return nil, werrors.New(werrors.InvalidInput, op, "training file is empty: "+path)
	}

	var linePositions []int64
	var words int64
	var pos int64

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		linePositions = append(linePositions, pos)
		line := scanner.Text()
		pos += int64(len(line)) + 1 // +1 for the newline Scan() strips
		words += int64(len(strings.Fields(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, werrors.Wrap(werrors.IoError, op, err)
	}
	// A trailing position marks EOF, mirroring the original's
	// "line_positions" including one past-the-last-line sentinel.
	linePositions = append(linePositions, pos)

	lines := int64(len(linePositions) - 1)
	if lines == 0 {
		return nil, werrors.New(werrors.InvalidInput, op, "training file has no lines: "+path)
	}

	chunkSize := lines / int64(n)
	var offsets []int64
	if chunkSize == 0 {
		offsets = []int64{linePositions[0]}
	} else {
		for i := 0; i < n; i++ {
			idx := int64(i) * chunkSize
			if idx >= int64(len(linePositions)) {
				break
			}
			offsets = append(offsets, linePositions[idx])
		}
	}

	return &Chunks{Offsets: offsets, Lines: lines, Words: words}, nil
}

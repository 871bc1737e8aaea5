package records

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// gjson paths into the records file written by the bundler.
const (
	modulesByIdentifierPath = "modules.byIdentifier"
	modulesUsedIDsPath      = "modules.usedIds"
	chunksByNamePath        = "chunks.byName"
	chunksUsedIDsPath       = "chunks.usedIds"
)

// Chunk is a named chunk and the id recorded for it.
type Chunk struct {
	Name string
	ID   int64
}

// Summary describes a records file without interpreting it further.
type Summary struct {
	Path          string
	Chunks        []Chunk
	Modules       int
	UsedModuleIDs int
	UsedChunkIDs  int
	MaxModuleID   int64
}

// Inspect reads the records file at path and summarizes it.
// The file is never modified.
func Inspect(path string) (*Summary, error) {
	// #nosec G304 - path is the computed records path or an explicit CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNoRecords, path)
		}
		return nil, fmt.Errorf("failed to read records file %s: %w", path, err)
	}

	return Summarize(path, data)
}

// Summarize builds a Summary from the raw contents of a records file.
func Summarize(path string, data []byte) (*Summary, error) {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedRecords, path)
	}

	summary := &Summary{Path: path}

	gjson.GetBytes(data, modulesByIdentifierPath).ForEach(func(_, value gjson.Result) bool {
		summary.Modules++
		summary.MaxModuleID = max(summary.MaxModuleID, value.Int())
		return true
	})

	gjson.GetBytes(data, chunksByNamePath).ForEach(func(key, value gjson.Result) bool {
		summary.Chunks = append(summary.Chunks, Chunk{Name: key.String(), ID: value.Int()})
		return true
	})
	slices.SortFunc(summary.Chunks, func(a, b Chunk) int {
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	summary.UsedModuleIDs = countEntries(gjson.GetBytes(data, modulesUsedIDsPath))
	summary.UsedChunkIDs = countEntries(gjson.GetBytes(data, chunksUsedIDsPath))

	return summary, nil
}

// countEntries counts array elements or object members.
// The bundler has written usedIds both ways across versions.
func countEntries(r gjson.Result) int {
	n := 0
	r.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

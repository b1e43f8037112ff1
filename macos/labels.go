package macos

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"sync"
)

//go:embed smc.tsv
var smcData []byte

var (
	labelsOnce sync.Once
	labels     map[string]string
)

// Label returns the human readable name of an SMC key, or "" when the key
// is not in the embedded table.
func Label(key string) string {
	labelsOnce.Do(func() {
		var err error
		if labels, err = loadLabels(smcData); err != nil {
			panic(err) // the table is compiled in; a bad line is a build defect
		}
	})
	return labels[key]
}

// loadLabels parses tab separated "KEY<TAB>label" lines.
func loadLabels(data []byte) (map[string]string, error) {
	rv := make(map[string]string)
	parser := csv.NewReader(bytes.NewReader(data))
	parser.Comma = '\t'
	parser.FieldsPerRecord = 2
	parser.LazyQuotes = true
	for {
		line, err := parser.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse SMC labels: %w", err)
		}
		if len(line[0]) != 4 {
			return nil, fmt.Errorf("SMC label key %q must be 4 characters", line[0])
		}
		rv[line[0]] = line[1]
	}
	return rv, nil
}

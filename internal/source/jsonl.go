// Package source provides a line-delimited JSON batch source used by the
// example pipeline to feed the search index destination.
package source

import (
	"bufio"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"

	config "github.com/blank-1/datacollector/pkg/pipeline/core/config"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONLSource reads one JSON object per line and groups them into batches.
type JSONLSource struct {
	path      string
	batchSize int

	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// New creates a source over the configured input file.
func New(cfg config.SourceConfig) *JSONLSource {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}
	return &JSONLSource{path: cfg.Path, batchSize: batchSize}
}

// Open opens the input file. It must be called before the first NextBatch.
func (s *JSONLSource) Open() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", s.path, err)
	}
	s.file = f
	s.scanner = bufio.NewScanner(f)
	s.scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	s.line = 0
	return nil
}

// NextBatch reads up to the configured batch size of records. It returns a
// nil batch when the input is exhausted. Lines that are not valid JSON
// objects are skipped with a warning; attributing them is the job of the
// destination's error handling once they carry structure.
func (s *JSONLSource) NextBatch() (*record.Batch, error) {
	records := make([]*record.Record, 0, s.batchSize)

	for len(records) < s.batchSize && s.scanner.Scan() {
		s.line++
		raw := s.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			logger.Warnf("Skipping malformed line %d of %s: %v", s.line, s.path, err)
			continue
		}

		root := make(map[string]record.Field, len(decoded))
		for k, v := range decoded {
			f, err := record.FieldFromValue(v)
			if err != nil {
				return nil, fmt.Errorf("line %d of %s: %w", s.line, s.path, err)
			}
			root[k] = f
		}
		records = append(records, record.New(fmt.Sprintf("%s::%d", s.path, s.line), root))
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return record.NewBatch(fmt.Sprintf("%s::%d", s.path, s.line), records), nil
}

// Close closes the input file.
func (s *JSONLSource) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

package store

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"losreport/feature"
)

// FrameRow is one transformed observation tagged with the subset it
// belongs to, for downstream ad-hoc querying (e.g. DuckDB).
type FrameRow struct {
	Subset string `parquet:"subset"` // "train" or "test"
	feature.Row
}

// FrameWriter writes the transformed analysis frame to a Parquet file.
// Zstd with full column statistics keeps the file small while leaving
// predicate pushdown available to query engines.
type FrameWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[FrameRow]
	count  int
}

func NewFrameWriter(filename string) (*FrameWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}

	writer := parquet.NewGenericWriter[FrameRow](file,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedDefault}),
		parquet.DataPageStatistics(true),
		parquet.CreatedBy("losreport", "1.0", ""),
	)

	return &FrameWriter{file: file, writer: writer}, nil
}

// WriteSubset writes one subset's rows under the given label.
func (w *FrameWriter) WriteSubset(label string, rows []feature.Row) (int, error) {
	frame := make([]FrameRow, len(rows))
	for i, r := range rows {
		frame[i] = FrameRow{Subset: label, Row: r}
	}
	n, err := w.writer.Write(frame)
	w.count += n
	if err != nil {
		return n, fmt.Errorf("write parquet rows: %w", err)
	}
	return n, nil
}

// Close flushes the final row group and closes the file.
func (w *FrameWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}

// Count returns the total number of rows written.
func (w *FrameWriter) Count() int {
	return w.count
}

// ReadFrame reads a complete analysis frame back from a Parquet file.
func ReadFrame(path string) ([]FrameRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[FrameRow](f)
	defer reader.Close()

	rows := make([]FrameRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows[:n], nil
}

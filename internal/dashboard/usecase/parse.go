package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// inspectCSV reads the header and counts data rows. It always drains r so a
// writer feeding it through a pipe never blocks.
func inspectCSV(ctx context.Context, r io.Reader) (int64, []string, error) {
	defer func() { _, _ = io.Copy(io.Discard, r) }()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, nil, nil
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read csv header", "error", err)
		return 0, nil, err
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var rows int64
	for {
		_, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to read csv line", "row", rows+1, "error", err)
			return rows, columns, err
		}
		rows++
	}

	return rows, columns, nil
}

// Package uploader submits the mapped rows of the active dataset as
// create-content calls, one row at a time.
package uploader

import (
	"context"
	"fmt"

	"github.com/brijr/wp-poster/internal/mapping"
	"github.com/brijr/wp-poster/internal/models"
)

// Creator is the single client operation the uploader needs.
type Creator interface {
	CreateItem(ctx context.Context, restBase string, payload map[string]interface{}) error
}

// Result is the final tally of one batch run.
type Result struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Run iterates the dataset rows in order and POSTs one item per row. A row
// failure is logged and counted but never stops the batch: every row is
// attempted exactly once, strictly sequentially, and the final counts
// always sum to len(ds.Rows).
//
// progress is called after each row with (attempted, total); logger
// receives one line per row plus section markers. Either may be nil.
func Run(ctx context.Context, client Creator, restBase string, ds *models.Dataset, m mapping.Mapping, logger func(string), progress func(done, total int)) Result {
	if logger == nil {
		logger = func(string) {}
	}
	if progress == nil {
		progress = func(int, int) {}
	}

	total := len(ds.Rows)
	logger(fmt.Sprintf("=== Uploading %d rows to %s ===", total, restBase))

	var res Result
	for i, row := range ds.Rows {
		payload := BuildPayload(row, m)

		if err := client.CreateItem(ctx, restBase, payload); err != nil {
			res.Failed++
			logger(fmt.Sprintf("  FAIL: row %d: %v", i+1, err))
		} else {
			res.Succeeded++
			logger(fmt.Sprintf("  CREATED: row %d", i+1))
		}
		progress(i+1, total)
	}

	logger(fmt.Sprintf("Done: %d succeeded, %d failed", res.Succeeded, res.Failed))
	return res
}

// BuildPayload assembles one create-item payload from a row: exactly the
// destination fields present in the mapping, each value taken from the
// row's source column. Unmapped columns are dropped; a mapped column
// missing from the row contributes nothing. A slug field is sanitized.
func BuildPayload(row models.Row, m mapping.Mapping) map[string]interface{} {
	payload := make(map[string]interface{}, len(m))
	for field, column := range m {
		value, ok := row[column]
		if !ok {
			continue
		}
		if field == "slug" {
			value = SanitizeSlug(value)
		}
		payload[field] = value
	}
	return payload
}

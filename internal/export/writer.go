package export

import (
	"encoding/csv"
	"io"

	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
)

// Write emits the collection as CSV: one header line plus one line per
// record.
func Write(w io.Writer, records Records) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(records.Header()); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to write csv header")
	}
	for _, row := range records.Rows() {
		if err := cw.Write(row); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "failed to write csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "failed to flush csv output")
	}
	return nil
}

package store

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/collatzlab/internal/collatz"
)

// WriteCSV writes one step,value row per term. Step 0 is the start value.
func WriteCSV(w io.Writer, t collatz.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "value", "parity"}); err != nil {
		return err
	}
	for i, v := range t {
		parity := "odd"
		if collatz.IsEven(v) {
			parity = "even"
		}
		if err := cw.Write([]string{strconv.Itoa(i), v.String(), parity}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

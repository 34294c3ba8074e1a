// Package store persists Collatz trajectories as JSON records.
//
// A record file holds exactly two fields:
//
//	{
//	  "numero_inicial": 27,
//	  "secuencia": [27, 82, 41, ...]
//	}
//
// Integers are written as JSON number literals in plain decimal, so values of
// any size survive a save/load round trip unchanged.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"

	"github.com/san-kum/collatzlab/internal/collatz"
)

// Record errors. Each is distinguishable with errors.Is.
var (
	// ErrNotFound indicates the record source does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrMalformedRecord indicates a source that does not hold a valid record.
	ErrMalformedRecord = errors.New("store: malformed record")

	// ErrIO indicates the record could not be written or read.
	ErrIO = errors.New("store: i/o failure")
)

const (
	fieldStart    = "numero_inicial"
	fieldSequence = "secuencia"
)

// Record pairs a start value with its trajectory.
type Record struct {
	Start    *big.Int
	Sequence collatz.Trajectory
}

// NewRecord builds a record from a generated trajectory.
func NewRecord(t collatz.Trajectory) Record {
	return Record{Start: t.Start(), Sequence: t}
}

// Equal reports whether both records hold the same values.
func (r Record) Equal(other Record) bool {
	if r.Start == nil || other.Start == nil {
		return r.Start == other.Start && r.Sequence.Equal(other.Sequence)
	}
	return r.Start.Cmp(other.Start) == 0 && r.Sequence.Equal(other.Sequence)
}

// Verify checks that Sequence is the Collatz trajectory of Start.
func (r Record) Verify() error {
	if err := r.Sequence.Validate(); err != nil {
		return err
	}
	if r.Start == nil || r.Start.Cmp(r.Sequence.Start()) != 0 {
		return fmt.Errorf("%w: start %v does not match first term %s",
			collatz.ErrInvalidTrajectory, r.Start, r.Sequence.Start())
	}
	return nil
}

type encodedRecord struct {
	Start    *big.Int   `json:"numero_inicial"`
	Sequence []*big.Int `json:"secuencia"`
}

type decodedRecord struct {
	Start    json.RawMessage   `json:"numero_inicial"`
	Sequence []json.RawMessage `json:"secuencia"`
}

// Encode writes r to w as an indented JSON record.
func Encode(w io.Writer, r Record) error {
	if r.Start == nil {
		return fmt.Errorf("%w: missing %s", ErrMalformedRecord, fieldStart)
	}
	if len(r.Sequence) == 0 {
		return fmt.Errorf("%w: empty %s", ErrMalformedRecord, fieldSequence)
	}
	for i, v := range r.Sequence {
		if v == nil {
			return fmt.Errorf("%w: %s[%d] is missing", ErrMalformedRecord, fieldSequence, i)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(encodedRecord{Start: r.Start, Sequence: r.Sequence}); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// Decode parses a JSON record. Missing fields, wrong JSON types and
// integers that are not plain decimal literals are ErrMalformedRecord.
func Decode(data []byte) (Record, error) {
	var dr decodedRecord
	if err := json.Unmarshal(data, &dr); err != nil {
		return Record{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	if isAbsent(dr.Start) {
		return Record{}, fmt.Errorf("%w: missing %s", ErrMalformedRecord, fieldStart)
	}
	if dr.Sequence == nil {
		return Record{}, fmt.Errorf("%w: missing %s", ErrMalformedRecord, fieldSequence)
	}
	if len(dr.Sequence) == 0 {
		return Record{}, fmt.Errorf("%w: empty %s", ErrMalformedRecord, fieldSequence)
	}

	start, err := parseInteger(dr.Start)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, fieldStart, err)
	}

	seq := make(collatz.Trajectory, len(dr.Sequence))
	for i, raw := range dr.Sequence {
		v, err := parseInteger(raw)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %s[%d]: %w", ErrMalformedRecord, fieldSequence, i, err)
		}
		seq[i] = v
	}

	return Record{Start: start, Sequence: seq}, nil
}

// Save writes r to path, replacing any existing file.
func Save(path string, r Record) (err error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrIO, path, cerr)
		}
	}()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}
	return nil
}

// Load reads the record stored at path.
func Load(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Record{}, fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	r, err := Decode(data)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseInteger(raw json.RawMessage) (*big.Int, error) {
	text := bytes.TrimSpace(raw)
	if len(text) == 0 || bytes.Equal(text, []byte("null")) {
		return nil, errors.New("missing value")
	}

	digits := bytes.TrimPrefix(text, []byte("-"))
	if len(digits) == 0 {
		return nil, fmt.Errorf("%s is not an integer", text)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("%s is not a decimal integer", text)
		}
	}

	n, ok := new(big.Int).SetString(string(text), 10)
	if !ok {
		return nil, fmt.Errorf("%s is not a decimal integer", text)
	}
	return n, nil
}

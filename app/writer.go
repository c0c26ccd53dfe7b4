package app

import (
	"encoding/json"
	"io"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// RecordWriter writes one JSON document per line. A record is written with
// a single Write call so that a failing writer never leaves half a line
// behind.
type RecordWriter struct {
	w io.Writer
}

func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{w: w}
}

func (rw *RecordWriter) Write(v any) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return &models.SerializationError{Err: err}
	}
	buf = append(buf, '\n')
	if _, err := rw.w.Write(buf); err != nil {
		return &models.WriteError{Err: err}
	}
	return nil
}

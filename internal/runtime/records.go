package runtime

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// RecordReader reads newline-terminated records from one named input.
// A final line without a newline is still a record.
type RecordReader struct {
	name string
	br   *bufio.Reader
	err  error
}

// NewRecordReader wraps r. name is what FILENAME reports for it.
func NewRecordReader(name string, r io.Reader) *RecordReader {
	return &RecordReader{name: name, br: bufio.NewReaderSize(r, 64*1024)}
}

// Name returns the input name.
func (rr *RecordReader) Name() string {
	return rr.name
}

// Next returns the next record without its newline. It returns io.EOF
// once the input is exhausted; any other error comes from the reader.
func (rr *RecordReader) Next() (string, error) {
	if rr.err != nil {
		return "", rr.err
	}
	line, err := rr.br.ReadString('\n')
	if err != nil {
		rr.err = err
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

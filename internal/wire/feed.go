package wire

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// MaxLineBytes caps a single feed line. Longer lines abort the scan instead
// of buffering without bound.
const MaxLineBytes = 1 << 20

// LineError records a feed line that failed to parse.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// ReadFeed reads a JSONL puzzle feed. Blank lines are ignored; lines that
// fail to parse are collected as LineErrors and skipped so one bad record
// never poisons the rest of the feed. The error return covers the scan
// itself (I/O failure, oversized line).
func ReadFeed(r io.Reader) ([]Record, []LineError, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)

	var (
		records []Record
		bad     []LineError
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rec, err := ParseRecord([]byte(line))
		if err != nil {
			bad = append(bad, LineError{Line: lineNo, Err: err})
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, bad, fmt.Errorf("wire: reading feed: %w", err)
	}
	return records, bad, nil
}

// WriteFeed appends records to w, one JSON line each.
func WriteFeed(w io.Writer, records []Record) error {
	for _, rec := range records {
		line, err := rec.MarshalLine()
		if err != nil {
			return err
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("wire: writing feed: %w", err)
		}
	}
	return nil
}

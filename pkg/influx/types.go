package influx

import (
	"time"
)

// Precision is the timestamp resolution used when encoding points and when
// requesting epoch-formatted timestamps in query responses.
type Precision string

// Supported precisions, matching the values accepted by the /write and /query
// endpoints.
const (
	PrecisionNanosecond  Precision = "ns"
	PrecisionMicrosecond Precision = "u"
	PrecisionMillisecond Precision = "ms"
	PrecisionSecond      Precision = "s"
	PrecisionMinute      Precision = "m"
	PrecisionHour        Precision = "h"
)

// Valid reports whether p is one of the precisions the server accepts.
func (p Precision) Valid() bool {
	switch p {
	case PrecisionNanosecond, PrecisionMicrosecond, PrecisionMillisecond,
		PrecisionSecond, PrecisionMinute, PrecisionHour:
		return true
	}

	return false
}

// Point represents a single write record: one measurement with its tags,
// fields, and an optional timestamp.
//
// Measurement is required and Fields must contain at least one entry. Field
// values may be integers, floats, booleans, or strings. A zero Time means the
// server assigns the ingestion time.
type Point struct {
	Measurement string                 `json:"measurement"         yaml:"measurement"`
	Tags        map[string]string      `json:"tags,omitempty"      yaml:"tags,omitempty"`
	Fields      map[string]interface{} `json:"fields"              yaml:"fields"`
	Time        time.Time              `json:"time,omitempty"      yaml:"time,omitempty"`
}

// Series is one named/tagged time series within a ResultSet. Values holds the
// rows in server response order; each row is positionally aligned to Columns.
type Series struct {
	Name    string            `json:"name"              yaml:"name"`
	Tags    map[string]string `json:"tags,omitempty"    yaml:"tags,omitempty"`
	Columns []string          `json:"columns"           yaml:"columns"`
	Values  [][]interface{}   `json:"values"            yaml:"values"`
}

// Row is a convenience projection of one values entry: a mapping from column
// name to value. Rows are derived on demand and never stored.
type Row map[string]interface{}

// Rows materializes every values entry of the series as a Row. Columns without
// a corresponding value in a short row are omitted from that Row.
func (s *Series) Rows() []Row {
	rows := make([]Row, 0, len(s.Values))

	for _, values := range s.Values {
		row := make(Row, len(s.Columns))

		for i, col := range s.Columns {
			if i < len(values) {
				row[col] = values[i]
			}
		}

		rows = append(rows, row)
	}

	return rows
}

// ResultSet is the parsed outcome of one statement within a query response.
// Series preserves server response order. A non-empty Error means the
// statement failed server-side.
type ResultSet struct {
	Series []Series `json:"series,omitempty" yaml:"series,omitempty"`
	Error  string   `json:"error,omitempty"  yaml:"error,omitempty"`
}

// Err returns the statement error carried by the result set, or nil.
func (r *ResultSet) Err() error {
	if r.Error == "" {
		return nil
	}

	return &StatementError{Message: r.Error}
}

// RetentionPolicy describes a retention policy to create on a database.
// Duration accepts the server's duration literals (1h, 90m, 7d, 4w, INF).
// A zero Replication is submitted as 1.
type RetentionPolicy struct {
	Name        string `json:"name"               yaml:"name"`
	Duration    string `json:"duration"           yaml:"duration"`
	Replication int    `json:"replication"        yaml:"replication"`
	Database    string `json:"database,omitempty" yaml:"database,omitempty"`
	Default     bool   `json:"default,omitempty"  yaml:"default,omitempty"`
}

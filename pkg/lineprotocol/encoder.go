package lineprotocol

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fluxwire-io/influx/pkg/influx"
)

// Encoder serializes a write payload into newline-terminated line protocol
// text.
type Encoder interface {
	Encode() (string, error)
}

// measurementEscaper covers measurement names, where commas and spaces are
// reserved.
var measurementEscaper = strings.NewReplacer(`,`, `\,`, ` `, `\ `)

// keyEscaper covers tag keys, tag values, and field keys, where commas,
// equals signs, and spaces are reserved.
var keyEscaper = strings.NewReplacer(`,`, `\,`, `=`, `\=`, ` `, `\ `)

// stringFieldEscaper covers string field values, which are double-quoted on
// the wire.
var stringFieldEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// PointEncoder renders structured points. Timestamps are emitted in the
// configured precision; a zero precision means nanoseconds.
type PointEncoder struct {
	Points    []influx.Point
	Precision influx.Precision
}

// NewPointEncoder creates an encoder for structured points.
func NewPointEncoder(points []influx.Point, precision influx.Precision) *PointEncoder {
	return &PointEncoder{Points: points, Precision: precision}
}

// Encode implements Encoder.
func (e *PointEncoder) Encode() (string, error) {
	var b strings.Builder

	for i, point := range e.Points {
		err := encodePoint(&b, &point, e.Precision, i)
		if err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

// LineEncoder passes pre-encoded line protocol strings through verbatim,
// joined by newlines.
type LineEncoder struct {
	Lines []string
}

// NewLineEncoder creates an encoder for pre-encoded lines.
func NewLineEncoder(lines []string) *LineEncoder {
	return &LineEncoder{Lines: lines}
}

// Encode implements Encoder.
func (e *LineEncoder) Encode() (string, error) {
	if len(e.Lines) == 0 {
		return "", nil
	}

	return strings.Join(e.Lines, "\n") + "\n", nil
}

// Encode is a convenience wrapper around PointEncoder for the common case.
func Encode(points []influx.Point, precision influx.Precision) (string, error) {
	return NewPointEncoder(points, precision).Encode()
}

func encodePoint(b *strings.Builder, point *influx.Point, precision influx.Precision, index int) error {
	if point.Measurement == "" {
		return &influx.EncodingError{Index: index, Reason: "missing measurement"}
	}

	if len(point.Fields) == 0 {
		return &influx.EncodingError{Index: index, Reason: "at least one field is required"}
	}

	b.WriteString(measurementEscaper.Replace(point.Measurement))

	for _, key := range sortedKeys(point.Tags) {
		b.WriteByte(',')
		b.WriteString(keyEscaper.Replace(key))
		b.WriteByte('=')
		b.WriteString(keyEscaper.Replace(point.Tags[key]))
	}

	b.WriteByte(' ')

	fieldKeys := make([]string, 0, len(point.Fields))
	for key := range point.Fields {
		fieldKeys = append(fieldKeys, key)
	}

	sort.Strings(fieldKeys)

	for i, key := range fieldKeys {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(keyEscaper.Replace(key))
		b.WriteByte('=')

		err := writeFieldValue(b, point.Fields[key])
		if err != nil {
			return &influx.EncodingError{Index: index, Reason: err.Error()}
		}
	}

	if !point.Time.IsZero() {
		b.WriteByte(' ')
		b.WriteString(strconv.FormatInt(timestampIn(point.Time, precision), 10))
	}

	b.WriteByte('\n')

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// writeFieldValue renders a field value with its type marker: integers carry
// an "i" suffix, strings are double-quoted, floats use the shortest decimal
// form that round-trips.
func writeFieldValue(b *strings.Builder, value interface{}) error {
	switch v := value.(type) {
	case int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		b.WriteByte('i')
	case int32:
		b.WriteString(strconv.FormatInt(int64(v), 10))
		b.WriteByte('i')
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
		b.WriteByte('i')
	case uint:
		b.WriteString(strconv.FormatUint(uint64(v), 10))
		b.WriteByte('i')
	case uint64:
		b.WriteString(strconv.FormatUint(v, 10))
		b.WriteByte('i')
	case float32:
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case string:
		b.WriteByte('"')
		b.WriteString(stringFieldEscaper.Replace(v))
		b.WriteByte('"')
	default:
		return fmt.Errorf("unsupported field type %T", value)
	}

	return nil
}

// timestampIn converts t to an integer timestamp in the given precision.
func timestampIn(t time.Time, precision influx.Precision) int64 {
	switch precision {
	case influx.PrecisionMicrosecond:
		return t.UnixMicro()
	case influx.PrecisionMillisecond:
		return t.UnixMilli()
	case influx.PrecisionSecond:
		return t.Unix()
	case influx.PrecisionMinute:
		return t.Unix() / 60
	case influx.PrecisionHour:
		return t.Unix() / 3600
	case influx.PrecisionNanosecond:
		return t.UnixNano()
	default:
		return t.UnixNano()
	}
}

// Package lineprotocol serializes write payloads into the InfluxDB line
// protocol wire format:
//
//	measurement[,tag=val,...] field=val[,field=val...][ timestamp]
//
// Two encoders cover the two input shapes: PointEncoder renders structured
// influx.Point values, LineEncoder passes pre-encoded lines through verbatim.
// Both satisfy the Encoder interface and are selected explicitly by the
// caller.
//
// Output is deterministic: tags and fields are emitted in lexicographic key
// order, so identical input always produces byte-identical output. Reserved
// characters are escaped unconditionally; the encoder never assumes clean
// input.
package lineprotocol

package lineprotocol_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxwire-io/influx/pkg/influx"
	"github.com/fluxwire-io/influx/pkg/lineprotocol"
)

func TestPointEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("single point with tags and fields", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "cpu",
			Tags:        map[string]string{"host": "server01", "region": "us-west"},
			Fields:      map[string]interface{}{"value": 0.64},
		}}, "")
		require.NoError(t, err)
		assert.Equal(t, "cpu,host=server01,region=us-west value=0.64\n", out)
	})

	t.Run("tags and fields in lexicographic order", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "m",
			Tags:        map[string]string{"b": "2", "a": "1", "c": "3"},
			Fields:      map[string]interface{}{"z": int64(1), "a": int64(2)},
		}}, "")
		require.NoError(t, err)
		assert.Equal(t, "m,a=1,b=2,c=3 a=2i,z=1i\n", out)
	})

	t.Run("field value types", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "m",
			Fields: map[string]interface{}{
				"b": true,
				"f": 1.5,
				"i": 42,
				"s": "hello",
			},
		}}, "")
		require.NoError(t, err)
		assert.Equal(t, `m b=true,f=1.5,i=42i,s="hello"`+"\n", out)
	})

	t.Run("escapes reserved characters", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "my measurement,v1",
			Tags:        map[string]string{"data center": "us east,1", "k=v": "a b"},
			Fields:      map[string]interface{}{"msg": `say "hi"`},
		}}, "")
		require.NoError(t, err)
		assert.Equal(t, `my\ measurement\,v1,data\ center=us\ east\,1,k\=v=a\ b msg="say \"hi\""`+"\n", out)
	})

	t.Run("timestamp in requested precision", func(t *testing.T) {
		t.Parallel()

		ts := time.Unix(1465839830, 100400200).UTC()
		point := influx.Point{
			Measurement: "weather",
			Fields:      map[string]interface{}{"temperature": int64(82)},
			Time:        ts,
		}

		out, err := lineprotocol.Encode([]influx.Point{point}, "")
		require.NoError(t, err)
		assert.Equal(t, "weather temperature=82i 1465839830100400200\n", out)

		out, err = lineprotocol.Encode([]influx.Point{point}, influx.PrecisionSecond)
		require.NoError(t, err)
		assert.Equal(t, "weather temperature=82i 1465839830\n", out)

		out, err = lineprotocol.Encode([]influx.Point{point}, influx.PrecisionMillisecond)
		require.NoError(t, err)
		assert.Equal(t, "weather temperature=82i 1465839830100\n", out)
	})

	t.Run("zero time omits the timestamp", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "m",
			Fields:      map[string]interface{}{"v": int64(1)},
		}}, "")
		require.NoError(t, err)
		assert.Equal(t, "m v=1i\n", out)
	})

	t.Run("multiple points newline separated", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.Encode([]influx.Point{
			{Measurement: "a", Fields: map[string]interface{}{"v": int64(1)}},
			{Measurement: "b", Fields: map[string]interface{}{"v": int64(2)}},
		}, "")
		require.NoError(t, err)
		assert.Equal(t, "a v=1i\nb v=2i\n", out)
	})

	t.Run("idempotent across calls", func(t *testing.T) {
		t.Parallel()

		points := []influx.Point{{
			Measurement: "m",
			Tags:        map[string]string{"x": "1", "y": "2", "z": "3"},
			Fields:      map[string]interface{}{"a": 1.0, "b": 2.0, "c": 3.0},
		}}

		first, err := lineprotocol.Encode(points, "")
		require.NoError(t, err)

		second, err := lineprotocol.Encode(points, "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestPointEncoder_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing measurement names the point index", func(t *testing.T) {
		t.Parallel()

		_, err := lineprotocol.Encode([]influx.Point{
			{Measurement: "ok", Fields: map[string]interface{}{"v": int64(1)}},
			{Fields: map[string]interface{}{"v": int64(2)}},
		}, "")
		require.Error(t, err)
		assert.True(t, influx.IsEncodingError(err))
		assert.Contains(t, err.Error(), "point 1")
		assert.Contains(t, err.Error(), "measurement")
	})

	t.Run("empty fields", func(t *testing.T) {
		t.Parallel()

		_, err := lineprotocol.Encode([]influx.Point{{Measurement: "m"}}, "")
		require.Error(t, err)
		assert.True(t, influx.IsEncodingError(err))
		assert.Contains(t, err.Error(), "field")
	})

	t.Run("unsupported field type", func(t *testing.T) {
		t.Parallel()

		_, err := lineprotocol.Encode([]influx.Point{{
			Measurement: "m",
			Fields:      map[string]interface{}{"v": []int{1, 2}},
		}}, "")
		require.Error(t, err)
		assert.True(t, influx.IsEncodingError(err))
	})
}

func TestLineEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("joins lines with trailing newline", func(t *testing.T) {
		t.Parallel()

		encoder := lineprotocol.NewLineEncoder([]string{
			"cpu,host=server01 value=0.64",
			"mem,host=server01 used=12345i",
		})

		out, err := encoder.Encode()
		require.NoError(t, err)
		assert.Equal(t, "cpu,host=server01 value=0.64\nmem,host=server01 used=12345i\n", out)
	})

	t.Run("no lines yields empty output", func(t *testing.T) {
		t.Parallel()

		out, err := lineprotocol.NewLineEncoder(nil).Encode()
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

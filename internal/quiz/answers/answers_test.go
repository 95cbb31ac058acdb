package answers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalSniffsShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Value
	}{
		{
			name: "string decodes as scalar",
			raw:  `"California"`,
			want: String("California"),
		},
		{
			name: "array decodes as list",
			raw:  `["a","b"]`,
			want: List("a", "b"),
		},
		{
			name: "object decodes as details",
			raw:  `{"cause":{"example":"x","when":"Last 30 days","evidence":["Witnesses"]}}`,
			want: Details(map[string]CauseDetail{
				"cause": {Example: "x", When: "Last 30 days", Evidence: []string{"Witnesses"}},
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestValueUnmarshalRejectsOtherShapes(t *testing.T) {
	for _, raw := range []string{`42`, `true`, `null`, ``} {
		var v Value
		assert.Error(t, json.Unmarshal([]byte(raw), &v), "raw=%s", raw)
	}
}

func TestValueMarshalByKind(t *testing.T) {
	scalar, err := json.Marshal(String("hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `"hi"`, string(scalar))

	list, err := json.Marshal(List("a"))
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, string(list))

	// A zero value has no kind and cannot go on the wire.
	_, err = json.Marshal(Value{})
	assert.Error(t, err)
}

func TestSetWithDoesNotMutateOriginal(t *testing.T) {
	orig := Set{"a": String("1")}
	next := orig.With("b", String("2"))

	assert.Len(t, orig, 1)
	assert.Len(t, next, 2)
	assert.Equal(t, "2", next.Scalar("b"))

	overwritten := next.With("a", String("3"))
	assert.Equal(t, "1", next.Scalar("a"))
	assert.Equal(t, "3", overwritten.Scalar("a"))
}

func TestSetAccessorsReturnZeroOnKindMismatch(t *testing.T) {
	set := Set{
		"scalar": String("x"),
		"list":   List("a"),
	}

	assert.Equal(t, "", set.Scalar("list"))
	assert.Nil(t, set.Selection("scalar"))
	assert.Nil(t, set.DetailRecords("scalar"))
	assert.Equal(t, "", set.Scalar("absent"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	set := Set{
		"state":  String("Texas"),
		"causes": List("one", "two"),
		"details": Details(map[string]CauseDetail{
			"one": {Example: "it happened", When: "Last 30 days", Evidence: []string{"Witnesses"}},
		}),
	}

	encoded, err := set.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, set, decoded)
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	set, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, set)

	_, err = Decode("not json")
	assert.Error(t, err)
}

package canonical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeScalars(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "null"},
		{"string", "Jane", "Jane"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float", 1.5, "1.5"},
		{"float whole", 3.0, "3"},
		{"number", json.Number("12345678901234567890"), "12345678901234567890"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Serialize(tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSerializeSortsObjectKeys(t *testing.T) {
	got, err := Serialize(map[string]any{
		"zip":    "10115",
		"city":   "Berlin",
		"street": map[string]any{"number": 7, "name": "Unter den Linden"},
	})
	require.NoError(t, err)
	require.Equal(t,
		`{"city":"Berlin","street":{"name":"Unter den Linden","number":7},"zip":"10115"}`,
		got)
}

func TestSerializeStruct(t *testing.T) {
	type address struct {
		Zip  string `json:"zip"`
		City string `json:"city"`
	}
	fromStruct, err := Serialize(address{Zip: "10115", City: "Berlin"})
	require.NoError(t, err)
	fromMap, err := Serialize(map[string]any{"zip": "10115", "city": "Berlin"})
	require.NoError(t, err)
	require.Equal(t, fromMap, fromStruct)
}

func TestSerializeUnserializable(t *testing.T) {
	_, err := Serialize(map[string]any{"ch": make(chan int)})
	require.Error(t, err)
}

func TestNormalizeJSONLD(t *testing.T) {
	doc := func() map[string]any {
		return map[string]any{
			"@context": map[string]any{
				"name":     "http://schema.org/name",
				"jobTitle": "http://schema.org/jobTitle",
			},
			"name":     "Jane Doe",
			"jobTitle": "Engineer",
		}
	}

	quads, err := NormalizeJSONLD(doc(), nil)
	require.NoError(t, err)
	require.Contains(t, quads, "http://schema.org/name")

	again, err := NormalizeJSONLD(doc(), nil)
	require.NoError(t, err)
	require.Equal(t, quads, again)
}

func TestJSONLDSerializerFallback(t *testing.T) {
	serialize := JSONLDSerializer(nil)

	plain, err := serialize(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	require.Equal(t, `{"a":1,"b":2}`, plain)

	quads, err := serialize(map[string]any{
		"@context": map[string]any{"name": "http://schema.org/name"},
		"name":     "Jane",
	})
	require.NoError(t, err)
	require.Contains(t, quads, "Jane")
}

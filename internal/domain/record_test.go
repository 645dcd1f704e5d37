package domain

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetKeepsInsertionOrder(t *testing.T) {
	var r Record
	r.Set("title", "Widget")
	r.Set("sku", "A1")
	r.Set("title", "Gadget")

	assert.Equal(t, []string{"title", "sku"}, r.Keys())
	assert.Equal(t, 2, r.Len())

	value, ok := r.Get("title")
	assert.True(t, ok)
	assert.Equal(t, "Gadget", value)

	first, ok := r.First()
	assert.True(t, ok)
	assert.Equal(t, "Gadget", first)
}

func TestRecord_FirstOnEmpty(t *testing.T) {
	var r Record

	_, ok := r.First()
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRecord_MarshalJSON(t *testing.T) {
	r := NewRecord("zeta", "1", "Наименование", "Чай <зелёный>", "alpha", "")

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(r))

	assert.Equal(t, `{"zeta":"1","Наименование":"Чай <зелёный>","alpha":""}`+"\n", buf.String())
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		want     map[string]string
	}{
		{
			name:     "keeps key order",
			input:    `{"b":"2","a":"1","c":"3"}`,
			wantKeys: []string{"b", "a", "c"},
			want:     map[string]string{"a": "1", "b": "2", "c": "3"},
		},
		{
			name:     "stringifies non-string values",
			input:    `{"price": 12.50, "active": true, "missing": null}`,
			wantKeys: []string{"price", "active", "missing"},
			want:     map[string]string{"price": "12.50", "active": "true", "missing": ""},
		},
		{
			name:     "empty object",
			input:    `{}`,
			wantKeys: []string{},
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Record
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))

			assert.Equal(t, tt.wantKeys, r.Keys())
			for key, want := range tt.want {
				got, ok := r.Get(key)
				assert.True(t, ok, "key %q", key)
				assert.Equal(t, want, got, "key %q", key)
			}
		})
	}
}

func TestRecord_UnmarshalRejectsNonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &r))
	assert.Error(t, json.Unmarshal([]byte(`"text"`), &r))
}

func TestRecord_RoundTripSlice(t *testing.T) {
	in := []Record{
		NewRecord("name", "Widget", "code", "A1"),
		NewRecord("code", "B2", "name", "Gizmo"),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out []Record
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out, 2)
	assert.Equal(t, in[0].Keys(), out[0].Keys())
	assert.Equal(t, in[1].Keys(), out[1].Keys())
	assert.Equal(t, in, out)
}

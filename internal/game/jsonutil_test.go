package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare payload untouched", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"anonymous fence", "```\n[\"x\"]\n```", `["x"]`},
		{"surrounding whitespace", "  \n```json\n{}\n```  ", "{}"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripCodeFence(tc.in))
		})
	}
}

func TestDecodeStringList(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"direct array", `["a", "b"]`, []string{"a", "b"}},
		{"fenced array", "```json\n[\"a\"]\n```", []string{"a"}},
		{"object wrapped under facts", `{"facts": ["a", "b"]}`, []string{"a", "b"}},
		{"object wrapped under results", `{"results": ["a"]}`, []string{"a"}},
		{"blank entries dropped", `["a", "  ", ""]`, []string{"a"}},
		{"non-string entries dropped", `{"facts": ["a", 3, null]}`, []string{"a"}},
		{"unknown wrapper key", `{"stuff": ["a"]}`, []string{}},
		{"not json at all", "the rag is soft", []string{}},
		{"empty input", "", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeStringList(tc.in))
		})
	}
}

func TestDecodeSingleKey(t *testing.T) {
	t.Run("extracts the key", func(t *testing.T) {
		got, ok := decodeSingleKey(`{"entity_id": "rag_01"}`, "entity_id")
		assert.True(t, ok)
		assert.Equal(t, "rag_01", got)
	})

	t.Run("fenced payload", func(t *testing.T) {
		got, ok := decodeSingleKey("```json\n{\"perception\": \"Something glints.\"}\n```", "perception")
		assert.True(t, ok)
		assert.Equal(t, "Something glints.", got)
	})

	t.Run("null value is not ok", func(t *testing.T) {
		_, ok := decodeSingleKey(`{"entity_id": null}`, "entity_id")
		assert.False(t, ok)
	})

	t.Run("missing key is not ok", func(t *testing.T) {
		_, ok := decodeSingleKey(`{"other": "x"}`, "entity_id")
		assert.False(t, ok)
	})

	t.Run("blank value is not ok", func(t *testing.T) {
		_, ok := decodeSingleKey(`{"entity_id": "  "}`, "entity_id")
		assert.False(t, ok)
	})

	t.Run("malformed payload is not ok", func(t *testing.T) {
		_, ok := decodeSingleKey(`{"entity_id":`, "entity_id")
		assert.False(t, ok)
	})
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerValidator_IsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		want      bool
	}{
		{name: "exact", submitted: "Toshkent", expected: "Toshkent", want: true},
		{name: "case and surrounding whitespace", submitted: " Toshkent ", expected: "toshkent", want: true},
		{name: "upper case", submitted: "OLMA", expected: "olma", want: true},
		{name: "tabs and newline", submitted: "\tdasturlash\n", expected: "dasturlash", want: true},
		{name: "expected has whitespace", submitted: "17", expected: " 17 ", want: true},
		{name: "different spelling", submitted: "Tashkent", expected: "Toshkent", want: false},
		{name: "number word", submitted: "seven", expected: "7", want: false},
		{name: "inner whitespace matters", submitted: "dastur lash", expected: "dasturlash", want: false},
		{name: "punctuation matters", submitted: "olma.", expected: "olma", want: false},
		{name: "empty answer", submitted: "", expected: "7", want: false},
		{name: "non latin", submitted: "ЁЛКА", expected: "ёлка", want: true},
	}

	v := NewAnswerValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.IsCorrect(tt.submitted, tt.expected))
		})
	}
}

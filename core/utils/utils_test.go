package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 42, 42},
		{"Float", 3.9, 3},
		{"String", " 17 ", 17},
		{"FloatString", "12.0", 12},
		{"Bytes", []byte("5"), 5},
		{"Bool", true, 1},
		{"Garbage", "abc", 0},
		{"Nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToID(t *testing.T) {
	assert.Equal(t, uint(7), ToID("7"))
	assert.Equal(t, uint(7), ToID(-7))
	assert.Equal(t, uint(0), ToID("x"))
}

func TestToBool(t *testing.T) {
	for _, v := range []any{true, 1, "1", "true", "YES", "on", []byte("true"), 2.0} {
		assert.True(t, ToBool(v), "%#v", v)
	}
	for _, v := range []any{false, 0, "0", "", "no", nil} {
		assert.False(t, ToBool(v), "%#v", v)
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Valve", SanitizeText("  <b>Valve</b>\n"))
	assert.Equal(t, "Rock & Roll", SanitizeText("Rock &amp; Roll"))
	assert.Equal(t, "", SanitizeText("<script>x</script>"))
}

func TestSanitizeHTML(t *testing.T) {
	out := SanitizeHTML(`<p onclick="x()">Hi <script>alert(1)</script><strong>there</strong></p>`)
	assert.Equal(t, "<p>Hi <strong>there</strong></p>", out)
}

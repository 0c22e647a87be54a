package exchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadingInt(t *testing.T) {
	cases := map[string]int{
		"10":       10,
		"  7 ":     7,
		"12 cajas": 12,
		"3.9":      3,
		"-2":       -2,
		"+5":       5,
		"1e3":      1,
		"abc":      0,
		"":         0,
		"-":        0,
	}
	for in, want := range cases {
		assert.Equal(t, want, leadingInt(in), "entrada %q", in)
	}
}

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "AB", want: "%AB%"},
		{in: "", want: "%%"},
		{in: "50%", want: `%50\%%`},
		{in: "A_1", want: `%A\_1%`},
		{in: `C:\tmp`, want: `%C:\\tmp%`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsPattern(tt.in))
		})
	}
}

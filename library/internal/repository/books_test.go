package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsPattern(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		q    string
		want string
	}{
		{name: "plain", q: "dune", want: `%dune%`},
		{name: "underscore", q: "_", want: `%\_%`},
		{name: "percent", q: "100%", want: `%100\%%`},
		{name: "backslash", q: `a\b`, want: `%a\\b%`},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, containsPattern(tt.q))
		})
	}
}

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNames(t *testing.T) {
	testCases := []struct {
		name  string
		block string
		want  []string
	}{
		{
			name:  "one name per line",
			block: "Alex\nBlake\nCasey",
			want:  []string{"Alex", "Blake", "Casey"},
		},
		{
			name:  "comma separated with stray whitespace",
			block: "  Alex ,Blake ,  Casey  ",
			want:  []string{"Alex", "Blake", "Casey"},
		},
		{
			name:  "mixed separators",
			block: "Alex, Blake; Casey\nDana",
			want:  []string{"Alex", "Blake", "Casey", "Dana"},
		},
		{
			name:  "duplicates within the batch are dropped",
			block: "Alex\nBlake\nalex\nBlake",
			want:  []string{"Alex", "Blake"},
		},
		{
			name:  "blank lines and empty fields ignored",
			block: "\n\nAlex,,;\n\nBlake\n",
			want:  []string{"Alex", "Blake"},
		},
		{
			name:  "windows line endings",
			block: "Alex\r\nBlake\r\n",
			want:  []string{"Alex", "Blake"},
		},
		{
			name:  "names with inner spaces survive",
			block: "Alex Jr.\nMary Anne",
			want:  []string{"Alex Jr.", "Mary Anne"},
		},
		{
			name:  "empty block",
			block: "   \n  ",
			want:  nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Names(tc.block))
		})
	}
}

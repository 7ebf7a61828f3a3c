package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	testCases := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{59, "0:59"},
		{60, "1:00"},
		{65, "1:05"},
		{150, "2:30"},
		{600, "10:00"},
		{3599, "59:59"},
		{3661, "61:01"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, FormatSeconds(tc.seconds), "FormatSeconds(%d)", tc.seconds)
	}
}

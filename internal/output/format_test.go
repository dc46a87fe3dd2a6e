package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{1024, "1.0KB"},
		{1536, "1.5KB"},
		{1048576, "1.0MB"},
		{5 * 1048576, "5.0MB"},
		{1073741824, "1.0GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.size), "size %d", tt.size)
	}
}

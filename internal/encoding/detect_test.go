package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, encoding.Charset) {
	t.Helper()

	r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestNewUTF8Reader(t *testing.T) {
	const header = "date,amount,category,description\n2024-01-01,4.50,Café,Crème brûlée\n"

	tests := []struct {
		name        string
		input       []byte
		want        string
		wantCharset encoding.Charset
	}{
		{
			name:        "UTF8Passthrough",
			input:       []byte(header),
			want:        header,
			wantCharset: encoding.UTF8,
		},
		{
			name:        "UTF8BOMStripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, header...),
			want:        header,
			wantCharset: encoding.UTF8BOM,
		},
		{
			name: "Windows1252",
			// "Café" with é = 0xE9.
			input: []byte{'C', 'a', 'f', 0xE9, ',', '1', '\n'},
			// chardet may pick any Latin charset here; é decodes the same in all of them.
			want: "Café,1\n",
		},
		{
			name:        "UTF16LE",
			input:       []byte{0xFF, 0xFE, 'F', 0, 'o', 0, 'o', 0, 'd', 0},
			want:        "Food",
			wantCharset: encoding.UTF16LE,
		},
		{
			name:        "UTF16BE",
			input:       []byte{0xFE, 0xFF, 0, 'F', 0, 'o', 0, 'o', 0, 'd'},
			want:        "Food",
			wantCharset: encoding.UTF16BE,
		},
		{
			name:        "Empty",
			input:       nil,
			want:        "",
			wantCharset: encoding.UTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, charset := readAll(t, tt.input)
			assert.Equal(t, tt.want, got)

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			}
		})
	}
}

func TestNewUTF8Reader_RuneSplitAtSniffBoundary(t *testing.T) {
	// Place a two-byte "é" across the 4096-byte sniff window.
	input := strings.Repeat("a", 4095) + "é,rest\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, encoding.UTF8, charset)
	assert.Equal(t, input, got)
}

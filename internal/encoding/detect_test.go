package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadebe/kobo/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	input := "Date,Narration,Debit,Credit\n01-Mar-2024,Café Neo Lekki,4500.00,\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Café Neo\n" (é = 0xE9).
	input := []byte{'C', 'a', 'f', 0xE9, ' ', 'N', 'e', 'o', '\n'}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café Neo\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Narration\n")...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date,Narration\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE BOM followed by "Date\n".
	input := []byte{0xFF, 0xFE, 'D', 0, 'a', 0, 't', 0, 'e', 0, '\n', 0}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date\n", string(got))
}

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendDigit(t *testing.T) {
	p := AppendDigit("", '1')
	p = AppendDigit(p, '2')
	assert.Equal(t, "12", p)
}

func TestAppendDigitIgnoresDuplicates(t *testing.T) {
	p := AppendDigit("12", '1')
	assert.Equal(t, "12", p)

	// Идемпотентность: повторное нажатие ничего не меняет
	once := AppendDigit("34", '5')
	twice := AppendDigit(once, '5')
	assert.Equal(t, once, twice)
}

func TestAppendDigitIgnoresNonDigits(t *testing.T) {
	assert.Equal(t, "12", AppendDigit("12", 'x'))
	assert.Equal(t, "12", AppendDigit("12", ':'))
}

func TestCommitTooShort(t *testing.T) {
	for _, pending := range []string{"", "1", "12", "123"} {
		_, err := Commit(pending)
		assert.ErrorIs(t, err, ErrTooShort, "pending %q", pending)
	}
}

func TestCommitSucceeds(t *testing.T) {
	for _, pending := range []string{"1234", "12345", "1234567890"} {
		code, err := Commit(pending)
		require.NoError(t, err, "pending %q", pending)
		assert.Equal(t, pending, code)
	}
}

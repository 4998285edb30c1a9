package plist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// invalidPlists mirrors invalid_text_test.go's flat list-of-bad-input
// style; this module has a single dialect taxonomy to check instead
// of a per-format Decode, so each case also names the ErrorKind it's
// expected to surface.
var invalidPlists = []struct {
	Name  string
	Input string
	Kind  ErrorKind
}{
	{"UnclosedArrayAtEOF", "(/", ErrPrematureEOF},
	{"UnclosedDictionaryAtEOF", "{/", ErrPrematureEOF},
	{"UnterminatedData", "<abcd", ErrUnterminatedData},
	{"DictionaryMissingTrailingSeparator", "{0=()}", ErrMissingEntrySeparator},
	{"MissingKeyValSeparator", `{"A"A;}`, ErrMissingKeyValSeparator},
	{"MissingEntrySeparator", `{"A"=A}`, ErrMissingEntrySeparator},
	{"DataAsDictionaryKey", "{<ab>=1;}", ErrInvalidDictionaryKey},
	{"TrailingTokenAfterTopLevelValue", "1 2", ErrTrailingToken},
	{"PrematureEOFInsideArray", "(1, 2", ErrPrematureEOF},
	{"PrematureEOFInsideDictionary", "{a = 1;", ErrPrematureEOF},
	{"MismatchedCloserBraceForArray", "(1, 2}", ErrMismatchedCloser},
	{"MismatchedCloserParenForDictionary", "{a = 1)", ErrMismatchedCloser},
}

func TestInvalidPlistsFailWithExpectedKind(t *testing.T) {
	for _, c := range invalidPlists {
		t.Run(c.Name, func(t *testing.T) {
			_, err := Parse([]byte(c.Input))
			require.Error(t, err)
			perr, ok := err.(*Error)
			require.True(t, ok)
			assert.Equal(t, c.Kind, perr.Kind, "message: %s", perr.Message)
		})
	}
}

func TestInvalidGNUStepTypeCharacter(t *testing.T) {
	_, err := Parse([]byte("{a = <*F33>;}"), WithStyle(GNUStepStyle))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidToken, perr.Kind)
}

func TestInvalidDataHexCharacters(t *testing.T) {
	_, err := Parse([]byte("<EQ>"))
	require.Error(t, err)
}

func TestInvalidIntegerOutOfRange(t *testing.T) {
	_, err := Parse([]byte("99999999999999999999999999"))
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, ErrIntegerOutOfRange, perr.Kind)
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentType(t *testing.T) {
	for input, want := range map[string]DocumentType{
		"mfr":         TypeMFR,
		"opord":       TypeOPORD,
		"unspecified": TypeUnspecified,
		"":            TypeUnspecified,
	} {
		got, err := ParseDocumentType(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDocumentType("memo")
	assert.Error(t, err)
}

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsFieldErrors(t *testing.T) {
	err := Validate(KindClassifier, []byte(`{"type": "logistic_regression", "n_features": 0}`))
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, KindClassifier, schemaErr.Kind)
	assert.NotEmpty(t, schemaErr.Fields)
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	err := Validate(KindLabelEncoder, []byte(`{"classes": [`))
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestValidateAcceptsMinimalDocuments(t *testing.T) {
	assert.NoError(t, Validate(KindLabelEncoder, []byte(`{"classes": ["A", "B"]}`)))
	assert.NoError(t, Validate(KindVectorizer, []byte(`{"vocabulary": {"go": 0}, "idf": [1.5]}`)))
	assert.NoError(t, Validate(KindClassifier, []byte(`{"type": "multinomial_nb", "n_features": 1,
		"feature_log_prob": [[0], [0]], "class_log_prior": [-0.69, -0.69]}`)))
}

func TestValidateRequiresModelParameters(t *testing.T) {
	err := Validate(KindClassifier, []byte(`{"type": "multinomial_nb", "n_features": 3}`))
	assert.ErrorIs(t, err, ErrInvalidArtifact)

	err = Validate(KindLabelEncoder, []byte(`{"classes": ["A", "A"]}`))
	assert.ErrorIs(t, err, ErrInvalidArtifact)
}

func TestSchemaEmbedded(t *testing.T) {
	for _, kind := range Kinds {
		data, err := Schema(kind)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"$schema"`)
	}
}

package model_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-recommender/internal/model"
	"career-recommender/internal/model/modeltest"
	"career-recommender/internal/shared/storage/object/local"
	"career-recommender/internal/shared/util"
)

func TestLoadFromLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, modeltest.WriteFiles(dir))

	bundle, err := model.Load(context.Background(), local.New(dir), model.DefaultPaths())
	require.NoError(t, err)

	assert.Equal(t, model.ClassifierLogisticRegression, bundle.Info.ClassifierType)
	assert.Equal(t, 10, bundle.Info.Features)
	assert.Len(t, bundle.Info.Classes, 4)

	vec := bundle.Vectorizer.Transform("python sql excel data analysis")
	probs, err := bundle.Classifier.PredictProba(vec)
	require.NoError(t, err)
	label, err := bundle.Labels.InverseTransform(model.ArgMax(probs))
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist", label)
	assert.InDelta(t, 0.8652533680834831, probs[1], 1e-9)

	require.Len(t, bundle.Info.Checksums, 3)
	assert.Equal(t, util.Checksum(modeltest.LabelEncoderJSON), bundle.Info.Checksums[model.KindLabelEncoder])
}

func TestLoadMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, modeltest.WriteFiles(dir))
	require.NoError(t, os.Remove(filepath.Join(dir, "vectorizer.json")))

	_, err := model.Load(context.Background(), local.New(dir), model.DefaultPaths())
	assert.ErrorIs(t, err, model.ErrArtifactNotFound)
}

func TestLoadRejectsInvalidDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, modeltest.WriteFiles(dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "label_encoder.json"), []byte(`{"classes": []}`), 0o644))

	_, err := model.Load(context.Background(), local.New(dir), model.DefaultPaths())
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)
}

func TestNewChecksConsistency(t *testing.T) {
	v, err := model.DecodeVectorizer(modeltest.VectorizerJSON)
	require.NoError(t, err)
	c, err := model.DecodeClassifier(modeltest.ClassifierJSON)
	require.NoError(t, err)

	labels, err := model.NewLabelEncoder(model.LabelEncoderSpec{Classes: []string{"A", "B"}})
	require.NoError(t, err)
	_, err = model.New(v, c, labels)
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)

	small, err := model.NewVectorizer(model.VectorizerSpec{Vocabulary: map[string]int{"go": 0}, IDF: []float64{1}})
	require.NoError(t, err)
	fixture := modeltest.Artifacts()
	_, err = model.New(small, c, fixture.Labels)
	assert.ErrorIs(t, err, model.ErrDimensionMismatch)
}

func TestDecodeDispatchesByKind(t *testing.T) {
	part, err := model.Decode(model.KindLabelEncoder, modeltest.LabelEncoderJSON)
	require.NoError(t, err)
	assert.IsType(t, &model.LabelEncoder{}, part)

	_, err = model.Decode(model.Kind("scaler"), []byte(`{}`))
	assert.ErrorIs(t, err, model.ErrInvalidArtifact)
}

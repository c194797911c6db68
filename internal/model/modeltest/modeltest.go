// Package modeltest provides a small, hand-computable model bundle for tests.
//
// Vocabulary: python sql excel data analysis react css api java design, idf 1, l2 norm.
// Classes: Backend Developer, Data Scientist, Frontend Developer, UX Designer (multinomial LR).
package modeltest

import (
	"os"
	"path/filepath"

	"career-recommender/internal/model"
)

var VectorizerJSON = []byte(`{
  "vocabulary": {"python": 0, "sql": 1, "excel": 2, "data": 3, "analysis": 4,
                 "react": 5, "css": 6, "api": 7, "java": 8, "design": 9},
  "idf": [1, 1, 1, 1, 1, 1, 1, 1, 1, 1],
  "lowercase": true,
  "ngram_range": [1, 1],
  "token_pattern": "(?u)\\b\\w\\w+\\b",
  "norm": "l2",
  "use_idf": true,
  "sublinear_tf": false,
  "binary": false
}`)

var ClassifierJSON = []byte(`{
  "type": "logistic_regression",
  "multi_class": "multinomial",
  "n_features": 10,
  "coef": [
    [0, 1, 0, 0, 0, 0, 0, 2, 2, 0],
    [2, 1, 0.5, 2, 1.5, 0, 0, 0, 0, 0],
    [0, 0, 0, 0, 0, 2, 2, 0, 0, 0.5],
    [0, 0, 0, 0, 0, 0, 0, 0, 0, 3]
  ],
  "intercept": [0, 0, 0, 0]
}`)

var LabelEncoderJSON = []byte(`{
  "classes": ["Backend Developer", "Data Scientist", "Frontend Developer", "UX Designer"]
}`)

// Artifacts decodes the fixture bundle. It panics on error since the fixtures are constant.
func Artifacts() *model.Artifacts {
	v, err := model.DecodeVectorizer(VectorizerJSON)
	if err != nil {
		panic(err)
	}
	c, err := model.DecodeClassifier(ClassifierJSON)
	if err != nil {
		panic(err)
	}
	l, err := model.DecodeLabelEncoder(LabelEncoderJSON)
	if err != nil {
		panic(err)
	}
	a, err := model.New(v, c, l)
	if err != nil {
		panic(err)
	}
	return a
}

// WriteFiles writes the fixture documents into dir under the default keys.
func WriteFiles(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	paths := model.DefaultPaths()
	files := map[string][]byte{
		paths.Classifier:   ClassifierJSON,
		paths.Vectorizer:   VectorizerJSON,
		paths.LabelEncoder: LabelEncoderJSON,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"career-recommender/internal/shared/storage/object"
	"career-recommender/internal/shared/telemetry"
	"career-recommender/internal/shared/util"
)

// Opener reads artifact documents by key. object.ObjectStore satisfies it.
type Opener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// Paths holds the object keys of the three artifacts.
type Paths struct {
	Classifier   string
	Vectorizer   string
	LabelEncoder string
}

// DefaultPaths returns the keys the training pipeline writes.
func DefaultPaths() Paths {
	return Paths{
		Classifier:   "career_model.json",
		Vectorizer:   "vectorizer.json",
		LabelEncoder: "label_encoder.json",
	}
}

// Key returns the object key configured for kind.
func (p Paths) Key(kind Kind) string {
	switch kind {
	case KindClassifier:
		return p.Classifier
	case KindVectorizer:
		return p.Vectorizer
	default:
		return p.LabelEncoder
	}
}

// Info summarizes a loaded bundle.
type Info struct {
	ClassifierType string    `json:"classifierType"`
	Classes        []string  `json:"classes"`
	Features       int       `json:"features"`
	LoadedAt       time.Time `json:"loadedAt"`
	// Checksums holds the SHA-256 of each artifact document when loaded from a store.
	Checksums map[Kind]string `json:"checksums,omitempty"`
}

// Artifacts is the immutable model bundle shared by every request.
type Artifacts struct {
	Vectorizer *Vectorizer
	Classifier Classifier
	Labels     *LabelEncoder
	Info       Info
}

// New checks that the three parts agree on dimensions and class count.
func New(v *Vectorizer, c Classifier, labels *LabelEncoder) (*Artifacts, error) {
	if v == nil || c == nil || labels == nil {
		return nil, fmt.Errorf("%w: incomplete model bundle", ErrInvalidArtifact)
	}
	if v.Dim() != c.NumFeatures() {
		return nil, fmt.Errorf("%w: vectorizer has %d terms, classifier expects %d", ErrDimensionMismatch, v.Dim(), c.NumFeatures())
	}
	if c.NumClasses() != labels.Len() {
		return nil, fmt.Errorf("%w: classifier has %d classes, label encoder has %d", ErrInvalidArtifact, c.NumClasses(), labels.Len())
	}
	return &Artifacts{
		Vectorizer: v,
		Classifier: c,
		Labels:     labels,
		Info: Info{
			ClassifierType: classifierType(c),
			Classes:        labels.Classes(),
			Features:       v.Dim(),
			LoadedAt:       time.Now().UTC(),
		},
	}, nil
}

// Load fetches, validates and decodes the three artifacts in parallel.
func Load(ctx context.Context, opener Opener, paths Paths) (*Artifacts, error) {
	docs := make([][]byte, len(Kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range Kinds {
		g.Go(func() error {
			data, err := readArtifact(gctx, opener, kind, paths.Key(kind))
			if err != nil {
				return err
			}
			docs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	classifier, err := DecodeClassifier(docs[0])
	if err != nil {
		return nil, err
	}
	vectorizer, err := DecodeVectorizer(docs[1])
	if err != nil {
		return nil, err
	}
	labels, err := DecodeLabelEncoder(docs[2])
	if err != nil {
		return nil, err
	}

	bundle, err := New(vectorizer, classifier, labels)
	if err != nil {
		return nil, err
	}
	bundle.Info.Checksums = make(map[Kind]string, len(Kinds))
	for i, kind := range Kinds {
		bundle.Info.Checksums[kind] = util.Checksum(docs[i])
	}
	telemetry.Info("model.loaded", map[string]any{
		"classifier": bundle.Info.ClassifierType,
		"classes":    len(bundle.Info.Classes),
		"features":   bundle.Info.Features,
		"checksums":  bundle.Info.Checksums,
	})
	return bundle, nil
}

// DecodeVectorizer validates and decodes a vectorizer document.
func DecodeVectorizer(doc []byte) (*Vectorizer, error) {
	var spec VectorizerSpec
	if err := decode(KindVectorizer, doc, &spec); err != nil {
		return nil, err
	}
	return NewVectorizer(spec)
}

// DecodeClassifier validates and decodes a classifier document.
func DecodeClassifier(doc []byte) (Classifier, error) {
	var spec ClassifierSpec
	if err := decode(KindClassifier, doc, &spec); err != nil {
		return nil, err
	}
	return NewClassifier(spec)
}

// DecodeLabelEncoder validates and decodes a label encoder document.
func DecodeLabelEncoder(doc []byte) (*LabelEncoder, error) {
	var spec LabelEncoderSpec
	if err := decode(KindLabelEncoder, doc, &spec); err != nil {
		return nil, err
	}
	return NewLabelEncoder(spec)
}

// Decode validates doc against the schema for kind and decodes it into the matching part.
func Decode(kind Kind, doc []byte) (any, error) {
	switch kind {
	case KindClassifier:
		return DecodeClassifier(doc)
	case KindVectorizer:
		return DecodeVectorizer(doc)
	case KindLabelEncoder:
		return DecodeLabelEncoder(doc)
	default:
		return nil, fmt.Errorf("%w: unknown artifact kind %q", ErrInvalidArtifact, kind)
	}
}

func decode(kind Kind, doc []byte, dst any) error {
	if err := Validate(kind, doc); err != nil {
		return err
	}
	if err := json.Unmarshal(doc, dst); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidArtifact, kind, err)
	}
	return nil
}

func readArtifact(ctx context.Context, opener Opener, kind Kind, key string) ([]byte, error) {
	rc, err := opener.Open(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrArtifactNotFound, kind, key)
		}
		return nil, fmt.Errorf("open %s artifact %s: %w", kind, key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s artifact %s: %w", kind, key, err)
	}
	return data, nil
}

func classifierType(c Classifier) string {
	switch c.(type) {
	case *LogisticRegression:
		return ClassifierLogisticRegression
	case *MultinomialNB:
		return ClassifierMultinomialNB
	default:
		return fmt.Sprintf("%T", c)
	}
}

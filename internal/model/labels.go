package model

import "fmt"

// LabelEncoderSpec is the exported form of a fitted label encoder.
type LabelEncoderSpec struct {
	Classes []string `json:"classes"`
}

// LabelEncoder maps class indices to career labels.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func NewLabelEncoder(spec LabelEncoderSpec) (*LabelEncoder, error) {
	if len(spec.Classes) == 0 {
		return nil, fmt.Errorf("%w: label encoder has no classes", ErrInvalidArtifact)
	}
	enc := &LabelEncoder{
		classes: append([]string(nil), spec.Classes...),
		index:   make(map[string]int, len(spec.Classes)),
	}
	for i, c := range enc.classes {
		if _, dup := enc.index[c]; dup {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrInvalidArtifact, c)
		}
		enc.index[c] = i
	}
	return enc, nil
}

func (e *LabelEncoder) Len() int { return len(e.classes) }

// Classes returns a copy of the class labels in index order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *LabelEncoder) InverseTransform(i int) (string, error) {
	if i < 0 || i >= len(e.classes) {
		return "", fmt.Errorf("%w: index %d", ErrUnknownClass, i)
	}
	return e.classes[i], nil
}

func (e *LabelEncoder) Transform(label string) (int, error) {
	i, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownClass, label)
	}
	return i, nil
}

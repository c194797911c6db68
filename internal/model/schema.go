package model

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Kind names one of the three artifacts a model bundle is made of.
type Kind string

const (
	KindClassifier   Kind = "classifier"
	KindVectorizer   Kind = "vectorizer"
	KindLabelEncoder Kind = "label_encoder"
)

// Kinds lists every artifact kind in load order.
var Kinds = []Kind{KindClassifier, KindVectorizer, KindLabelEncoder}

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// SchemaError is returned when an artifact document does not match its schema.
type SchemaError struct {
	Kind   Kind
	Fields []FieldError
}

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s artifact failed schema validation:", e.Kind)
	for i, f := range e.Fields {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, f.Field, f.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidArtifact
}

// Schema returns the embedded JSON schema for kind.
func Schema(kind Kind) ([]byte, error) {
	data, err := schemaFS.ReadFile("schemas/" + string(kind) + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("schema for %q: %w", kind, err)
	}
	return data, nil
}

// Validate checks an artifact document against the schema for kind.
func Validate(kind Kind, doc []byte) error {
	schema, err := Schema(kind)
	if err != nil {
		return err
	}
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, kind, err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Kind: kind, Fields: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		schemaErr.Fields = append(schemaErr.Fields, FieldError{Field: field, Message: desc.Description()})
	}
	return schemaErr
}

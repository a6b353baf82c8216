package filesystem

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/revelaction/subsent/conllu"
	sent "github.com/revelaction/subsent/sentence"
)

// ErrSchema is returned for JSON docs not matching the doc schema.
var ErrSchema = errors.New("doc schema validation failed")

//go:embed doc.schema.json
var docSchema []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(docSchema))
})

// ValidateDoc validates the JSON doc data against the doc schema.
func ValidateDoc(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("failed to load doc schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("JSON decoding error: %w", err)
	}

	if !result.Valid() {
		var validationErrors []string
		for _, validationErr := range result.Errors() {
			validationErrors = append(validationErrors, fmt.Sprintf("%s: %s", validationErr.Field(), validationErr.Description()))
		}
		return fmt.Errorf("%w: %s", ErrSchema, strings.Join(validationErrors, "; "))
	}

	return nil
}

// DecodeDoc validates and unmarshals a JSON doc.
func DecodeDoc(data []byte) (sent.Doc, error) {
	if err := ValidateDoc(data); err != nil {
		return sent.Doc{}, err
	}

	var doc sent.Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return sent.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sent.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sent.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	return DecodeDoc(f)
}

// ReadFile reads a JSON or CoNLL-U doc, depending on the extension of path.
func ReadFile(path string) (sent.Doc, error) {
	if filepath.Ext(path) == conllu.Ext {
		return conllu.ReadFile(path)
	}

	doc, err := ReadDoc(path)
	if err != nil {
		return sent.Doc{}, err
	}

	if doc.Title == "" {
		doc.Title = filepath.Base(path)
	}
	return doc, nil
}

// IsDocFile reports whether the file name has a doc extension.
func IsDocFile(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".json" || ext == conllu.Ext
}

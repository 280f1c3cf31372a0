// Package config loads and validates the checkpatch rules document.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/smykla-labs/checkpatch/pkg/config"
)

var (
	// ErrRulesFileNotFound is returned when the rules file does not exist.
	ErrRulesFileNotFound = errors.New("rules file not found")

	// ErrMalformedYAML is returned when the rules file cannot be parsed.
	ErrMalformedYAML = errors.New("malformed YAML")
)

// Loader reads a rules document from disk.
type Loader struct {
	validator *Validator
}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{
		validator: NewValidator(),
	}
}

// Load reads, parses, and validates the rules document at path.
func (l *Loader) Load(path string) (*config.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRulesFileNotFound, "%s", path)
		}

		return nil, errors.Wrapf(err, "reading rules file %s", path)
	}

	doc, err := l.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}

	return doc, nil
}

// Parse decodes and validates a rules document. Unknown keys are rejected
// at decode time so shape errors surface at load rather than at use.
func (l *Loader) Parse(data []byte) (*config.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc config.Document

	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.WithMessage(ErrInvalidDocument, "rules file is empty")
		}

		return nil, errors.Wrapf(ErrMalformedYAML, "%v", err)
	}

	if err := l.validator.Validate(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

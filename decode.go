package lsys

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decoder reads project documents from a stream.
// Documents are YAML; JSON is accepted as the flow-style subset of YAML.
type Decoder struct {
	dec *yaml.Decoder
}

// NewDecoder returns a Decoder reading from r.
// Unknown fields are rejected so that misspelled keys do not silently
// render an empty grammar.
func NewDecoder(r io.Reader) *Decoder {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return &Decoder{dec: dec}
}

// Decode reads the next document and validates it.
// It returns io.EOF when the stream has no more documents.
func (d *Decoder) Decode() (*Project, error) {
	var p Project
	if err := d.dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidProject, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Parse decodes a single project document from data.
func Parse(data []byte) (*Project, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}
	p, err := NewDecoder(bytes.NewReader(data)).Decode()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDocument
	}
	return p, err
}

// Load reads a project document from a file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lsys: read project: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode writes p as a YAML document.
func Encode(w io.Writer, p *Project) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("lsys: encode project: %w", err)
	}
	return enc.Close()
}

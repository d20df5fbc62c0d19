package pipeline

import (
	"github.com/matzehuels/multiplex/pkg/document"
	"github.com/matzehuels/multiplex/pkg/errors"
)

// Parse decodes a document received without a file name. An empty format
// tries TOML first, then YAML.
func Parse(data []byte, format string) (*document.Document, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "empty document")
	}
	if format != "" {
		f, err := document.ParseFormat(format)
		if err != nil {
			return nil, err
		}
		return document.Decode(data, f)
	}

	doc, tomlErr := document.Decode(data, document.FormatTOML)
	if tomlErr == nil {
		return doc, nil
	}
	doc, yamlErr := document.Decode(data, document.FormatYAML)
	if yamlErr == nil {
		return doc, nil
	}
	// report the TOML error unless the YAML decode got further
	if errors.UserMessage(yamlErr) != "decode YAML" {
		return nil, yamlErr
	}
	return nil, tomlErr
}

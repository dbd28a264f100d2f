package metadata

import (
	"sync"

	"github.com/bytedance/sonic"

	oerrors "github.com/appupdater/cli/internal/errors"
)

var defaultValidator = sync.OnceValues(NewValidator)

// Decode parses a metadata document. Any syntax, type or missing-field problem
// yields an error wrapping ErrMalformedMetadata. An empty elements list is
// not an error here.
func Decode(doc []byte) (*BuildMetadata, error) {
	validator, err := defaultValidator()
	if err != nil {
		return nil, oerrors.Wrap(oerrors.ErrMalformedMetadata, err, "loading metadata schema")
	}

	if err := validator.Validate(doc); err != nil {
		return nil, oerrors.Wrap(oerrors.ErrMalformedMetadata, err, "validating metadata")
	}

	var m BuildMetadata
	if err := sonic.Unmarshal(doc, &m); err != nil {
		return nil, oerrors.Wrap(oerrors.ErrMalformedMetadata, err, "decoding metadata")
	}

	return &m, nil
}

// Encode serializes m. A nil elements list is written as an empty array so
// the output always decodes.
func Encode(m *BuildMetadata) ([]byte, error) {
	out := *m
	if out.Elements == nil {
		out.Elements = []BuildVariant{}
	}
	return sonic.Marshal(&out)
}

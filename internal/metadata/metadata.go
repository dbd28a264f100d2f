// Package metadata defines the build metadata document published alongside a release.
package metadata

// BuildMetadata is the document produced by the build for a single variant.
// Unknown wire fields are ignored.
type BuildMetadata struct {
	// SchemaVersion is the version of the document format.
	SchemaVersion int `json:"version" yaml:"version"`

	// ApplicationID identifies the application the document describes.
	ApplicationID string `json:"applicationId" yaml:"applicationId"`

	// VariantName is the build variant, e.g. "release".
	VariantName string `json:"variantName" yaml:"variantName"`

	// Elements holds the variant outputs. Only the first element is authoritative.
	Elements []BuildVariant `json:"elements" yaml:"elements"`
}

// BuildVariant is a single build output.
type BuildVariant struct {
	// Kind is the output type, e.g. "SINGLE".
	Kind string `json:"type" yaml:"type"`

	// VersionCode is the monotonically increasing build number used for ordering.
	VersionCode int64 `json:"versionCode" yaml:"versionCode"`

	// VersionName is display-only and never compared.
	VersionName string `json:"versionName" yaml:"versionName"`

	// OutputFile is the file name of the produced package.
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// Latest returns the authoritative variant and whether one exists.
func (m *BuildMetadata) Latest() (BuildVariant, bool) {
	if m == nil || len(m.Elements) == 0 {
		return BuildVariant{}, false
	}
	return m.Elements[0], true
}

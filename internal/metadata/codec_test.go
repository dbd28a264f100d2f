package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/appupdater/cli/internal/errors"
)

const outputJSON = `{
  "version": 3,
  "artifactType": {"type": "APK", "kind": "Directory"},
  "applicationId": "dk.example.app",
  "variantName": "release",
  "elements": [
    {
      "type": "SINGLE",
      "filters": [],
      "attributes": [],
      "versionCode": 42,
      "versionName": "1.4.0",
      "outputFile": "app-release.apk"
    }
  ],
  "elementType": "File"
}`

func TestDecode(t *testing.T) {
	t.Run("ignores unknown fields", func(t *testing.T) {
		m, err := Decode([]byte(outputJSON))
		require.NoError(t, err)

		assert.Equal(t, 3, m.SchemaVersion)
		assert.Equal(t, "dk.example.app", m.ApplicationID)
		assert.Equal(t, "release", m.VariantName)
		require.Len(t, m.Elements, 1)
		assert.Equal(t, BuildVariant{
			Kind:        "SINGLE",
			VersionCode: 42,
			VersionName: "1.4.0",
			OutputFile:  "app-release.apk",
		}, m.Elements[0])
	})

	t.Run("empty elements is not a decode error", func(t *testing.T) {
		m, err := Decode([]byte(`{"version":1,"applicationId":"a","variantName":"release","elements":[]}`))
		require.NoError(t, err)
		assert.Empty(t, m.Elements)

		_, ok := m.Latest()
		assert.False(t, ok)
	})

	t.Run("large version codes survive", func(t *testing.T) {
		m, err := Decode([]byte(`{"version":1,"applicationId":"a","variantName":"v","elements":[
			{"type":"SINGLE","versionCode":4102444800123,"versionName":"x","outputFile":"o"}]}`))
		require.NoError(t, err)
		assert.Equal(t, int64(4102444800123), m.Elements[0].VersionCode)
	})
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ``},
		{name: "not json", doc: `<html>502 Bad Gateway</html>`},
		{name: "array instead of object", doc: `[1, 2, 3]`},
		{name: "missing elements", doc: `{"version":1,"applicationId":"a","variantName":"release"}`},
		{name: "missing applicationId", doc: `{"version":1,"variantName":"release","elements":[]}`},
		{name: "string version code", doc: `{"version":1,"applicationId":"a","variantName":"r","elements":[
			{"type":"SINGLE","versionCode":"5","versionName":"x","outputFile":"o"}]}`},
		{name: "missing version code", doc: `{"version":1,"applicationId":"a","variantName":"r","elements":[
			{"type":"SINGLE","versionName":"x","outputFile":"o"}]}`},
		{name: "null element field", doc: `{"version":1,"applicationId":"a","variantName":"r","elements":[
			{"type":"SINGLE","versionCode":5,"versionName":null,"outputFile":"o"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, oerrors.ErrMalformedMetadata), "got %v", err)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &BuildMetadata{
		SchemaVersion: 3,
		ApplicationID: "dk.example.app",
		VariantName:   "release",
		Elements: []BuildVariant{
			{Kind: "SINGLE", VersionCode: 7, VersionName: "2.0.0-beta.1", OutputFile: "app-release.apk"},
			{Kind: "ONE_OF_MANY", VersionCode: 8, VersionName: "2.0.0", OutputFile: "app-arm64.apk"},
		},
	}

	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeNilElements(t *testing.T) {
	data, err := Encode(&BuildMetadata{SchemaVersion: 1, ApplicationID: "a", VariantName: "r"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"elements":[]`)

	_, err = Decode(data)
	assert.NoError(t, err)
}

func TestLatest(t *testing.T) {
	var nilMeta *BuildMetadata
	_, ok := nilMeta.Latest()
	assert.False(t, ok)

	m := &BuildMetadata{Elements: []BuildVariant{{VersionCode: 3}, {VersionCode: 9}}}
	v, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, int64(3), v.VersionCode, "first element is authoritative")
}

// Package resolver finds the latest published build and compares it to the running one.
package resolver

import (
	"context"
	"errors"
	"fmt"

	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/metadata"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/transport"
)

// DebugVersionCode marks a development build that never checks for updates.
const DebugVersionCode int64 = 1

// Reason explains how a check reached its result.
type Reason string

const (
	// ReasonNewer means the published build is newer than the running one.
	ReasonNewer Reason = "newer"

	// ReasonUpToDate means the published build is not newer.
	ReasonUpToDate Reason = "up-to-date"

	// ReasonDebugBuild means the check was skipped for a debug build.
	ReasonDebugBuild Reason = "debug-build"

	// ReasonTransportFailure means the metadata could not be fetched.
	ReasonTransportFailure Reason = "transport-failure"

	// ReasonInvalidMetadata means the metadata was fetched but is unusable.
	ReasonInvalidMetadata Reason = "invalid-metadata"
)

// CheckResult is computed fresh for every check.
type CheckResult struct {
	CurrentVersionCode int64  `json:"currentVersionCode" yaml:"currentVersionCode"`
	RemoteVersionCode  int64  `json:"remoteVersionCode" yaml:"remoteVersionCode"`
	RemoteVersionName  string `json:"remoteVersionName,omitempty" yaml:"remoteVersionName,omitempty"`
	IsNewer            bool   `json:"isNewer" yaml:"isNewer"`
	Reason             Reason `json:"reason" yaml:"reason"`

	// Err holds the cause of a degraded result.
	Err error `json:"-" yaml:"-"`
}

// Degraded reports whether the result is "no update" because of a failure
// rather than because the running build is current.
func (r CheckResult) Degraded() bool {
	return r.Reason == ReasonTransportFailure || r.Reason == ReasonInvalidMetadata
}

// DocumentFetcher retrieves small documents over the network.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string, limit int64, opts ...transport.RequestOption) ([]byte, error)
}

// ResolveLatestVariant decodes document and returns its authoritative variant.
func ResolveLatestVariant(document []byte) (metadata.BuildVariant, error) {
	m, err := metadata.Decode(document)
	if err != nil {
		return metadata.BuildVariant{}, err
	}

	variant, ok := m.Latest()
	if !ok {
		return metadata.BuildVariant{}, oerrors.Wrap(oerrors.ErrNoVariant, nil, "resolving latest version")
	}
	return variant, nil
}

// ResolveLatestVersion returns the version code of the first element of document.
func ResolveLatestVersion(document []byte) (int64, error) {
	variant, err := ResolveLatestVariant(document)
	if err != nil {
		return 0, err
	}
	return variant.VersionCode, nil
}

// Resolver checks a metadata URL for a newer build.
type Resolver struct {
	client DocumentFetcher
}

// New creates a Resolver using client for metadata requests.
func New(client DocumentFetcher) *Resolver {
	return &Resolver{client: client}
}

// CheckForUpdate fetches metadataURL and compares its version code to current.
//
// Transport failures degrade to "no update" and return a nil error; the cause
// is kept in CheckResult.Err. Malformed documents and documents without
// variants also report "no update" but return the error so callers can
// tell them apart.
func (r *Resolver) CheckForUpdate(ctx context.Context, metadataURL string, current int64) (CheckResult, error) {
	result := CheckResult{CurrentVersionCode: current}

	if current == DebugVersionCode {
		output.Debug("debug build, skipping update check", "versionCode", current)
		result.Reason = ReasonDebugBuild
		return result, nil
	}

	doc, err := r.client.Fetch(ctx, metadataURL, transport.MaxDocumentSize)
	if err != nil {
		output.Warn("metadata fetch failed, assuming no update", "url", metadataURL, "error", err)
		result.Reason = ReasonTransportFailure
		result.Err = err
		return result, nil
	}

	variant, err := ResolveLatestVariant(doc)
	if err != nil {
		output.Error("invalid metadata", "url", metadataURL, "error", err)
		result.Reason = ReasonInvalidMetadata
		result.Err = err
		return result, fmt.Errorf("checking %s: %w", metadataURL, err)
	}

	result.RemoteVersionCode = variant.VersionCode
	result.RemoteVersionName = variant.VersionName
	result.IsNewer = variant.VersionCode > current
	if result.IsNewer {
		result.Reason = ReasonNewer
	} else {
		result.Reason = ReasonUpToDate
	}

	output.Debug("metadata resolved",
		"remote", variant.VersionCode,
		"current", current,
		"newer", result.IsNewer,
	)
	return result, nil
}

// IsMetadataError reports whether err came from an unusable metadata document.
func IsMetadataError(err error) bool {
	return errors.Is(err, oerrors.ErrMalformedMetadata) || errors.Is(err, oerrors.ErrNoVariant)
}

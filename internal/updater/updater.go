// Package updater drives a single update attempt from version check to
// installer handoff.
package updater

import (
	"context"
	"errors"

	"github.com/appupdater/cli/internal/changelog"
	"github.com/appupdater/cli/internal/download"
	"github.com/appupdater/cli/internal/installer"
	"github.com/appupdater/cli/internal/output"
	"github.com/appupdater/cli/internal/resolver"
)

const (
	// PromptTitle is the title of the consent prompt.
	PromptTitle = "Update app"

	// UpdateReadyMessage opens the consent prompt.
	UpdateReadyMessage = "A new version of the app is ready."

	// FailureMessage is shown when the package could not be downloaded.
	FailureMessage = "Unable to update app"

	checkingTitle    = "Checking for updates..."
	downloadingTitle = "Downloading update..."
)

// Host is the surface the update runs in.
type Host interface {
	// Confirm asks the user to accept the update.
	Confirm(ctx context.Context, title, message string) (bool, error)

	// RunWithProgress runs action while showing a loading indicator.
	RunWithProgress(ctx context.Context, title string, action func(ctx context.Context) error) error

	// NotifyFailure shows a short failure notice.
	NotifyFailure(message string)

	// Close dismisses the update surface.
	Close()
}

// Checker compares the published build with the running one.
type Checker interface {
	CheckForUpdate(ctx context.Context, metadataURL string, current int64) (resolver.CheckResult, error)
}

// ChangelogFetcher retrieves truncated release notes.
type ChangelogFetcher interface {
	Fetch(ctx context.Context, url string) changelog.Result
}

// PackageDownloader stores the release package locally.
type PackageDownloader interface {
	Download(ctx context.Context, url string) (*download.Package, error)
}

// Recorder observes run results.
type Recorder interface {
	ObserveCheck(reason string)
	ObserveOutcome(outcome string)
	ObserveDownload(n int64)
}

// Request is the entry contract of an update run.
type Request struct {
	// CurrentVersion is the running build's version code. 1 marks a debug build.
	CurrentVersion int64
	MetadataURL    string
	PackageURL     string
	// ChangelogURL is optional.
	ChangelogURL string
}

// Report describes a finished run.
type Report struct {
	State     State                `json:"state" yaml:"state"`
	Outcome   Outcome              `json:"outcome" yaml:"outcome"`
	Check     resolver.CheckResult `json:"check" yaml:"check"`
	Changelog changelog.Result     `json:"changelog" yaml:"changelog"`
	Prompt    string               `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Package   *download.Package    `json:"package,omitempty" yaml:"package,omitempty"`

	// Err is set for invalid metadata, download and installer failures.
	Err error `json:"-" yaml:"-"`
}

// Option configures an Updater.
type Option func(*Updater)

// WithRecorder records check reasons, outcomes and downloaded bytes.
func WithRecorder(r Recorder) Option {
	return func(u *Updater) {
		u.recorder = r
	}
}

// WithTransitionHook calls fn on every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(u *Updater) {
		u.onTransition = fn
	}
}

// Updater runs update attempts.
type Updater struct {
	checker    Checker
	changelog  ChangelogFetcher
	downloader PackageDownloader
	installer  installer.Installer
	host       Host

	recorder     Recorder
	onTransition func(from, to State)
}

// New creates an Updater from its collaborators.
func New(checker Checker, notes ChangelogFetcher, downloader PackageDownloader, inst installer.Installer, host Host, opts ...Option) *Updater {
	u := &Updater{
		checker:    checker,
		changelog:  notes,
		downloader: downloader,
		installer:  inst,
		host:       host,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ComposePrompt joins the update-ready message with the changelog.
func ComposePrompt(notes string) string {
	if notes == "" {
		return UpdateReadyMessage
	}
	return UpdateReadyMessage + "\n\n" + notes
}

// Run performs one update attempt. ctx represents the host's lifetime: once
// it is done no prompt, notice or handoff is issued. The host is closed
// exactly once when Run returns.
func (u *Updater) Run(ctx context.Context, req Request) Report {
	rep := &Report{State: StateIdle}
	defer u.host.Close()
	defer u.observeOutcome(rep)

	u.enter(rep, StateChecking)
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}

	var checkErr error
	progressErr := u.host.RunWithProgress(ctx, checkingTitle, func(ctx context.Context) error {
		rep.Check, checkErr = u.checker.CheckForUpdate(ctx, req.MetadataURL, req.CurrentVersion)
		if rep.Check.IsNewer {
			rep.Changelog = u.changelog.Fetch(ctx, req.ChangelogURL)
		}
		return nil
	})
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}
	if progressErr != nil {
		return u.finish(rep, OutcomeCheckFailed, progressErr)
	}
	if u.recorder != nil && rep.Check.Reason != "" {
		u.recorder.ObserveCheck(string(rep.Check.Reason))
	}

	switch {
	case rep.Check.Reason == resolver.ReasonDebugBuild:
		return u.finish(rep, OutcomeDebugBuild, nil)
	case rep.Check.Degraded():
		return u.finish(rep, OutcomeCheckFailed, checkErr)
	case !rep.Check.IsNewer:
		return u.finish(rep, OutcomeUpToDate, nil)
	}

	rep.Prompt = ComposePrompt(rep.Changelog.Text)
	u.enter(rep, StateAwaitingConsent)
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}

	accepted, err := u.host.Confirm(ctx, PromptTitle, rep.Prompt)
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}
	if err != nil {
		output.Warn("consent prompt failed, treating as declined", "error", err)
		return u.abort(rep, OutcomeDeclined, nil)
	}
	if !accepted {
		return u.abort(rep, OutcomeDeclined, nil)
	}

	u.enter(rep, StateDownloading)
	err = u.host.RunWithProgress(ctx, downloadingTitle, func(ctx context.Context) error {
		pkg, err := u.downloader.Download(ctx, req.PackageURL)
		rep.Package = pkg
		return err
	})
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}
	if err != nil {
		output.Error("update download failed", "url", req.PackageURL, "error", err)
		u.host.NotifyFailure(FailureMessage)
		return u.abort(rep, OutcomeDownloadFailed, err)
	}
	if rep.Package == nil {
		err := errors.New("downloader returned no package")
		u.host.NotifyFailure(FailureMessage)
		return u.abort(rep, OutcomeDownloadFailed, err)
	}
	if u.recorder != nil {
		u.recorder.ObserveDownload(rep.Package.Size)
	}

	u.enter(rep, StateInstalling)
	if ctx.Err() != nil {
		return u.abort(rep, OutcomeCancelled, nil)
	}
	if err := u.installer.Install(ctx, rep.Package); err != nil {
		output.Error("installer handoff failed", "path", rep.Package.Path, "error", err)
		return u.finish(rep, OutcomeInstallerFailed, err)
	}
	return u.finish(rep, OutcomeInstallerLaunched, nil)
}

func (u *Updater) enter(rep *Report, to State) {
	from := rep.State
	rep.State = to
	output.Debug("update state", "from", from.String(), "to", to.String())
	if u.onTransition != nil {
		u.onTransition(from, to)
	}
}

func (u *Updater) finish(rep *Report, outcome Outcome, err error) Report {
	rep.Outcome = outcome
	rep.Err = err
	u.enter(rep, StateDone)
	return *rep
}

func (u *Updater) abort(rep *Report, outcome Outcome, err error) Report {
	rep.Outcome = outcome
	rep.Err = err
	u.enter(rep, StateAborted)
	return *rep
}

func (u *Updater) observeOutcome(rep *Report) {
	if u.recorder != nil && rep.Outcome != "" {
		u.recorder.ObserveOutcome(string(rep.Outcome))
	}
}

package updater

// State is a stage of an update run.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateAwaitingConsent
	StateDownloading
	StateInstalling
	StateDone
	StateAborted
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StateChecking:        "checking",
	StateAwaitingConsent: "awaiting-consent",
	StateDownloading:     "downloading",
	StateInstalling:      "installing",
	StateDone:            "done",
	StateAborted:         "aborted",
}

// String returns the state name.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText renders the state by name in yaml and json output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}

// Outcome names how a run ended.
type Outcome string

const (
	OutcomeDebugBuild        Outcome = "debug-build"
	OutcomeUpToDate          Outcome = "up-to-date"
	OutcomeCheckFailed       Outcome = "check-failed"
	OutcomeDeclined          Outcome = "declined"
	OutcomeCancelled         Outcome = "cancelled"
	OutcomeDownloadFailed    Outcome = "download-failed"
	OutcomeInstallerLaunched Outcome = "installer-launched"
	OutcomeInstallerFailed   Outcome = "installer-failed"
)

// Package document owns the lifecycle of the file being worked on: the
// uploaded original, the redacted result, which of the two is displayed,
// and the export of the final artifact.
package document

import (
	"errors"
	"path/filepath"

	"github.com/spf13/afero"
)

// ExportPrefix is prepended to the original file name when exporting.
const ExportPrefix = "REDACTED_"

var (
	ErrNoDocument = errors.New("no document loaded")
	ErrNoResult   = errors.New("no redacted result")
	ErrBusy       = errors.New("redaction already in flight")
)

// Display selects which rendition of the document is shown.
type Display int

const (
	DisplayOriginal Display = iota
	DisplayRedacted
)

// Workspace is the document state machine. A redacted result only ever
// belongs to the generation of upload it was requested for; uploading a
// new file bumps the generation so late results for the old file are
// dropped on arrival.
type Workspace struct {
	name     string
	original []byte
	redacted []byte
	display  Display
	inFlight bool
	gen      uint64
}

func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Upload replaces the current document. Any previous redacted result is
// discarded, the display resets to the original, and outstanding
// redaction calls are invalidated.
func (w *Workspace) Upload(name string, data []byte) {
	w.name = name
	w.original = data
	w.redacted = nil
	w.display = DisplayOriginal
	w.inFlight = false
	w.gen++
}

func (w *Workspace) HasDocument() bool { return w.original != nil }
func (w *Workspace) HasResult() bool   { return w.redacted != nil }
func (w *Workspace) InFlight() bool    { return w.inFlight }
func (w *Workspace) Name() string      { return w.name }
func (w *Workspace) Display() Display  { return w.display }

// Original returns the uploaded file bytes.
func (w *Workspace) Original() []byte { return w.original }

// Displayed returns the bytes for the currently selected rendition.
func (w *Workspace) Displayed() []byte {
	if w.display == DisplayRedacted {
		return w.redacted
	}
	return w.original
}

// BeginRedaction marks a redaction call as outstanding and returns the
// generation token the eventual result must present. It rejects the call
// when no document is loaded or one is already in flight.
func (w *Workspace) BeginRedaction() (uint64, error) {
	if !w.HasDocument() {
		return 0, ErrNoDocument
	}
	if w.inFlight {
		return 0, ErrBusy
	}
	w.inFlight = true
	return w.gen, nil
}

// IngestResult attaches a redacted result and switches the display to it.
// A result carrying a stale generation is ignored; the return value
// reports whether the result was accepted.
func (w *Workspace) IngestResult(gen uint64, data []byte) bool {
	if gen != w.gen {
		return false
	}
	w.inFlight = false
	w.redacted = data
	w.display = DisplayRedacted
	return true
}

// FailRedaction clears the in-flight marker for a failed call. The rest
// of the state is left exactly as it was; stale failures are ignored.
func (w *Workspace) FailRedaction(gen uint64) {
	if gen != w.gen {
		return
	}
	w.inFlight = false
}

// ToggleDisplay flips between the original and redacted renditions. It
// mutates neither.
func (w *Workspace) ToggleDisplay() error {
	if !w.HasResult() {
		return ErrNoResult
	}
	if w.display == DisplayRedacted {
		w.display = DisplayOriginal
	} else {
		w.display = DisplayRedacted
	}
	return nil
}

// ExportName is the artifact file name: the original name behind a fixed
// redaction marker.
func (w *Workspace) ExportName() (string, error) {
	if !w.HasResult() {
		return "", ErrNoResult
	}
	return ExportPrefix + w.name, nil
}

// ExportTo writes the redacted artifact into dir and returns its path.
func (w *Workspace) ExportTo(fsys afero.Fs, dir string) (string, error) {
	name, err := w.ExportName()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := afero.WriteFile(fsys, path, w.redacted, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

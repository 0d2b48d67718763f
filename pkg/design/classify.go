package design

import (
	"errors"
	"io/fs"

	"github.com/matzehuels/boardtree/pkg/core/layout"
	"github.com/matzehuels/boardtree/pkg/core/node"
	"github.com/matzehuels/boardtree/pkg/core/pcb"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

// Classify maps an error from this package or the core packages to the
// matching error code. Coded errors keep their code; unknown errors are
// internal.
func Classify(err error) bterrors.Code {
	if err == nil {
		return ""
	}
	if code := bterrors.GetCode(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, node.ErrCycle):
		return bterrors.ErrCodeCycle
	case errors.Is(err, pcb.ErrNoParent):
		return bterrors.ErrCodeNoParent
	case errors.Is(err, pcb.ErrUnresolvedPosition),
		errors.Is(err, pcb.ErrResolutionCycle),
		errors.Is(err, pcb.ErrMaxDepth):
		return bterrors.ErrCodeUnresolvedPosition
	case errors.Is(err, layout.ErrNoTargets),
		errors.Is(err, layout.ErrInvalidColumns),
		errors.Is(err, layout.ErrUnknownLayout),
		errors.Is(err, ErrInvalidVector):
		return bterrors.ErrCodeInvalidLayout
	case errors.Is(err, ErrUnknownParent), errors.Is(err, ErrUnknownTarget):
		return bterrors.ErrCodeNodeNotFound
	case errors.Is(err, ErrDuplicateKey),
		errors.Is(err, ErrUnknownComponent),
		errors.Is(err, ErrEmptyDesign),
		errors.Is(err, node.ErrAlreadyParented),
		errors.Is(err, pcb.ErrUnknownLayer):
		return bterrors.ErrCodeInvalidDesign
	case errors.Is(err, ErrUnknownFormat), errors.Is(err, ErrMalformed):
		return bterrors.ErrCodeInvalidFormat
	case errors.Is(err, fs.ErrNotExist):
		return bterrors.ErrCodeFileNotFound
	}
	return bterrors.ErrCodeInternal
}

// Coded wraps err in a *errors.Error carrying its classified code. It
// returns nil for nil and leaves coded errors untouched.
func Coded(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if bterrors.GetCode(err) != "" {
		return err
	}
	return bterrors.Wrap(Classify(err), err, format, args...)
}

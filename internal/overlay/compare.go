package overlay

import (
	"fmt"
	"log/slog"

	"github.com/vantage-sim/vantage/internal/view"
)

// AxisSignature is the observable fingerprint compare-mode gating
// checks. Two runs compare only when their signatures deep-equal.
type AxisSignature struct {
	GraphKind string `json:"graph_kind"`
	SampleVar string `json:"sample_var,omitempty"`
	XUnit     string `json:"x_unit,omitempty"`
	YUnit     string `json:"y_unit,omitempty"`
	XKind     string `json:"x_kind,omitempty"`
	YKind     string `json:"y_kind,omitempty"`
}

// SignatureOf derives the axis signature of a graph. Every graph this
// layer renders is an xy series plot; the distinguishing metadata is
// the sampled variable and axis unit/kind pairs.
func SignatureOf(g *view.Graph) AxisSignature {
	sig := AxisSignature{GraphKind: "xy"}
	if g.Sample != nil {
		sig.SampleVar = g.Sample.Var
	}
	if g.Axis != nil {
		sig.XUnit = g.Axis.X.Unit
		sig.YUnit = g.Axis.Y.Unit
		sig.XKind = g.Axis.X.AxisKind
		sig.YKind = g.Axis.Y.AxisKind
	}
	return sig
}

// CompareSession is the state of compare mode: one frozen baseline, at
// most one variant, and the reason the last candidate was blocked.
type CompareSession struct {
	BaselineID  string
	VariantID   string
	Signature   AxisSignature
	SeriesID    string
	BlockReason string
}

// CompareStatus is the externally visible compare state.
type CompareStatus struct {
	Enabled       bool   `json:"enabled"`
	BaselineLabel string `json:"baseline_label,omitempty"`
	VariantLabel  string `json:"variant_label,omitempty"`
	BlockReason   string `json:"block_reason,omitempty"`
	Sequencing    bool   `json:"sequencing,omitempty"`
}

// EnterCompare freezes the active run as the baseline, recording its
// axis signature and series id for variant gating.
func (r *Registry) EnterCompare() error {
	run := r.ActiveRun()
	if run == nil {
		return fmt.Errorf("compare mode needs an active run")
	}
	r.ExitCompare()
	run.CompareRole = RoleBaseline
	r.compare = &CompareSession{
		BaselineID: run.ID,
		Signature:  run.Signature,
		SeriesID:   run.SeriesID,
	}
	slog.Info("compare mode entered", "baseline", run.ID, "label", run.Label)
	return nil
}

// ProposeVariant gates a candidate run against the baseline. The
// candidate is installed only when its axis signature deep-equals the
// baseline's and the series ids do not conflict (absent on either side,
// or equal). A rejected candidate sets a human-readable block reason
// and installs nothing; a previously accepted variant stays in place.
// The session recovers on the next proposal or mode change.
func (r *Registry) ProposeVariant(id string) bool {
	if r.compare == nil {
		return false
	}
	run, ok := r.runs[id]
	if !ok {
		r.compare.BlockReason = fmt.Sprintf("no run %q to compare", id)
		return false
	}
	if run.ID == r.compare.BaselineID {
		r.compare.BlockReason = "variant must differ from the baseline run"
		return false
	}
	if reason := incompatibility(r.compare, run); reason != "" {
		r.compare.BlockReason = reason
		slog.Warn("compare candidate blocked", "candidate", id, "reason", reason)
		return false
	}

	r.clearVariant()
	run.CompareRole = RoleVariant
	r.compare.VariantID = run.ID
	r.compare.BlockReason = ""
	slog.Info("compare variant installed", "variant", run.ID, "label", run.Label)
	return true
}

// incompatibility explains why a candidate cannot be the variant, or
// returns "" when it can.
func incompatibility(s *CompareSession, candidate *Run) string {
	if candidate.Signature != s.Signature {
		return fmt.Sprintf("axis signature mismatch: baseline %s, candidate %s",
			describeSignature(s.Signature), describeSignature(candidate.Signature))
	}
	if s.SeriesID != "" && candidate.SeriesID != "" && s.SeriesID != candidate.SeriesID {
		return fmt.Sprintf("series mismatch: baseline %q, candidate %q", s.SeriesID, candidate.SeriesID)
	}
	return ""
}

func describeSignature(sig AxisSignature) string {
	return fmt.Sprintf("{kind:%s sample:%s x:%s/%s y:%s/%s}",
		sig.GraphKind, sig.SampleVar, sig.XUnit, sig.XKind, sig.YUnit, sig.YKind)
}

// ExitCompare leaves compare mode, stopping any sequencing and clearing
// roles. Safe to call when compare mode is off.
func (r *Registry) ExitCompare() {
	if r.compare == nil {
		return
	}
	r.StopSequence()
	if run := r.runs[r.compare.BaselineID]; run != nil {
		run.CompareRole = RoleNone
	}
	r.clearVariant()
	r.compare = nil
	slog.Info("compare mode exited")
}

func (r *Registry) clearVariant() {
	if r.compare == nil || r.compare.VariantID == "" {
		return
	}
	if run := r.runs[r.compare.VariantID]; run != nil {
		run.CompareRole = RoleNone
	}
	r.compare.VariantID = ""
}

// Compare returns the live compare session, or nil when compare mode is
// off. Exposed for tests and status derivation.
func (r *Registry) Compare() *CompareSession { return r.compare }

// Status reports the externally visible compare state.
func (r *Registry) Status() CompareStatus {
	st := CompareStatus{}
	if r.compare == nil {
		return st
	}
	st.Enabled = true
	st.BlockReason = r.compare.BlockReason
	st.Sequencing = r.seq != nil
	if run := r.runs[r.compare.BaselineID]; run != nil {
		st.BaselineLabel = run.Label
	}
	if run := r.runs[r.compare.VariantID]; run != nil {
		st.VariantLabel = run.Label
	}
	return st
}

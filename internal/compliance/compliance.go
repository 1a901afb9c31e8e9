// Package compliance implements the cross-framework compliance evaluator
// (spec C5): given the actions, evidence and documentation an incident
// responder recorded for a phase, it scores each applicable framework's
// controls as compliant, partial, a gap, or not evaluated, and rolls
// several frameworks' findings up into one coverage report via
// internal/framework's UnifiedControl equivalence table.
//
// Grounded on
// original_source/apps/api/src/integrations/iso_mapper.py's
// ISOComplianceMapper.validate_phase_compliance and
// _evaluate_control_compliance, generalized from ISO-only to every
// framework internal/framework catalogs.
package compliance

import (
	"time"

	"github.com/isora-platform/cyberops-core/internal/framework"
)

// Status is a single control's evaluated compliance state.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusPartial      Status = "partial"
	StatusGap          Status = "gap"
	StatusNotEvaluated Status = "not_evaluated"
)

// RemediationPriority ranks how urgently a non-compliant control should be
// addressed.
type RemediationPriority string

const (
	PriorityHigh   RemediationPriority = "high"
	PriorityMedium RemediationPriority = "medium"
	PriorityLow    RemediationPriority = "low"
)

// ComplianceCheck is one control's evaluation result.
type ComplianceCheck struct {
	Framework           framework.Framework
	ControlID           string
	ControlName         string
	Status              Status
	EvidenceRequired     []string
	Recommendation      string
	GapDescription      string
	RemediationPriority RemediationPriority
	EvaluatedBy         string
	CheckedAt           time.Time
}

// EvaluationInput is the raw material an operator supplies for a phase:
// free-text descriptions of what was done, what evidence was gathered,
// and what documentation was produced. The evaluator keyword-matches
// against all three combined, exactly as the original does.
type EvaluationInput struct {
	CompletedActions       []string
	EvidenceCollected      []string
	DocumentationProvided  []string
	Operator               string
}

// ComplianceReport is the per-framework rollup EvaluatePhase and
// EvaluateCrossFramework return: totals plus the derived score.
type ComplianceReport struct {
	Phase              framework.Phase
	Framework          framework.Framework // zero value for cross-framework reports
	Checks             []ComplianceCheck
	TotalControls      int
	CompliantCount     int
	PartialCount       int
	GapCount           int
	NotEvaluatedCount  int
	ComplianceScore    float64 // 0-100, see scoreReport
}

func scoreReport(r *ComplianceReport) {
	r.TotalControls = len(r.Checks)
	r.CompliantCount, r.PartialCount, r.GapCount, r.NotEvaluatedCount = 0, 0, 0, 0
	for _, c := range r.Checks {
		switch c.Status {
		case StatusCompliant:
			r.CompliantCount++
		case StatusPartial:
			r.PartialCount++
		case StatusGap:
			r.GapCount++
		default:
			r.NotEvaluatedCount++
		}
	}
	if r.TotalControls == 0 {
		r.ComplianceScore = 0
		return
	}
	r.ComplianceScore = 100 * (float64(r.CompliantCount) + 0.5*float64(r.PartialCount)) / float64(r.TotalControls)
}

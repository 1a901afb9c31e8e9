package compliance

import (
	"strings"
	"time"

	"github.com/isora-platform/cyberops-core/internal/framework"
)

// Evaluator scores phase evidence against one or more frameworks' control
// catalogs. It is stateless; Now exists only so tests can pin time.Now.
type Evaluator struct {
	Now func() time.Time
}

// NewEvaluator builds an Evaluator with the real clock.
func NewEvaluator() *Evaluator {
	return &Evaluator{Now: time.Now}
}

func (e *Evaluator) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// EvaluatePhase scores every control fw registers for phase against
// input, mirroring validate_phase_compliance: one ComplianceCheck per
// control, mandatory controls scored "high" priority and the rest
// "medium".
func (e *Evaluator) EvaluatePhase(fw framework.Framework, phase framework.Phase, input EvaluationInput) ComplianceReport {
	controls := framework.ControlsForPhase(fw, phase)
	mandatory := framework.MandatoryControlIDs(fw, phase)
	mandatorySet := make(map[string]bool, len(mandatory))
	for _, id := range mandatory {
		mandatorySet[id] = true
	}

	evidence := combineEvidence(input)

	report := ComplianceReport{Phase: phase, Framework: fw}
	for _, c := range controls {
		status := evaluateControl(c.ControlID, evidence)

		check := ComplianceCheck{
			Framework:   fw,
			ControlID:   c.ControlID,
			ControlName: c.Name,
			Status:      status,
			EvaluatedBy: input.Operator,
			CheckedAt:   e.now(),
		}
		if mandatorySet[c.ControlID] {
			check.RemediationPriority = PriorityHigh
		} else {
			check.RemediationPriority = PriorityMedium
		}
		if status != StatusCompliant {
			check.Recommendation = recommendationFor(c.ControlID)
			check.EvidenceRequired = c.EvidenceRequirements
		}
		if status == StatusGap {
			check.GapDescription = "Control " + c.ControlID + " requirements not fully documented or implemented."
		}

		report.Checks = append(report.Checks, check)
	}

	scoreReport(&report)
	return report
}

// EvaluateCrossFramework evaluates phase against every framework in fws
// and returns one report per framework plus an aggregate with every
// framework's checks pooled together (Framework is left as the zero
// value on the aggregate to mark it as cross-framework).
func (e *Evaluator) EvaluateCrossFramework(phase framework.Phase, input EvaluationInput, fws ...framework.Framework) (perFramework map[framework.Framework]ComplianceReport, aggregate ComplianceReport) {
	perFramework = make(map[framework.Framework]ComplianceReport, len(fws))
	aggregate.Phase = phase
	for _, fw := range fws {
		r := e.EvaluatePhase(fw, phase, input)
		perFramework[fw] = r
		aggregate.Checks = append(aggregate.Checks, r.Checks...)
	}
	scoreReport(&aggregate)
	return perFramework, aggregate
}

// CoverageEntry is one unified control's per-framework standing after
// evaluation: which participating frameworks have compliant/partial
// evidence for their native equivalent of that control, and which don't.
type CoverageEntry struct {
	UnifiedID    string
	Category     string
	Name         string
	Phase        framework.Phase
	CoveredBy    []framework.Framework // frameworks with a compliant or partial native control
	UncoveredBy  []framework.Framework // frameworks with a gap, not-evaluated, or no native control at all
}

// ComputeCrossFrameworkCoverage evaluates phase's unified control groups
// across every framework that participates in cross-mapping
// (framework.UnifiedFrameworks), and reports, per unified control, which
// frameworks have evidence of coverage and which don't. This is the
// dashboard-facing view a report rolls up to show one line per security
// outcome instead of one line per framework's native control ID.
func (e *Evaluator) ComputeCrossFrameworkCoverage(phase framework.Phase, input EvaluationInput) []CoverageEntry {
	evidence := combineEvidence(input)
	groups := framework.ControlsForPhaseUnified(phase)

	out := make([]CoverageEntry, 0, len(groups))
	for _, uc := range groups {
		entry := CoverageEntry{UnifiedID: uc.UnifiedID, Category: uc.Category, Name: uc.Name, Phase: uc.Phase}
		for _, fw := range framework.UnifiedFrameworks() {
			nativeIDs := uc.Native[fw]
			if len(nativeIDs) == 0 {
				entry.UncoveredBy = append(entry.UncoveredBy, fw)
				continue
			}
			covered := false
			for _, id := range nativeIDs {
				if status := evaluateControl(id, evidence); status == StatusCompliant || status == StatusPartial {
					covered = true
					break
				}
			}
			if covered {
				entry.CoveredBy = append(entry.CoveredBy, fw)
			} else {
				entry.UncoveredBy = append(entry.UncoveredBy, fw)
			}
		}
		out = append(out, entry)
	}
	return out
}

func combineEvidence(input EvaluationInput) string {
	all := strings.Join(input.CompletedActions, " ") + " " +
		strings.Join(input.EvidenceCollected, " ") + " " +
		strings.Join(input.DocumentationProvided, " ")
	return strings.ToLower(all)
}

// evaluateControl ports _evaluate_control_compliance: a control with no
// keyword entry is NotEvaluated; otherwise the fraction of its keywords
// present in the combined evidence text determines Compliant (all),
// Partial (some) or Gap (none).
func evaluateControl(controlID, evidenceLower string) Status {
	keywords, ok := controlKeywords[controlID]
	if !ok || len(keywords) == 0 {
		return StatusNotEvaluated
	}

	matches := 0
	for _, kw := range keywords {
		if strings.Contains(evidenceLower, kw) {
			matches++
		}
	}

	switch {
	case matches >= len(keywords):
		return StatusCompliant
	case matches > 0:
		return StatusPartial
	default:
		return StatusGap
	}
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/compliance"
	"github.com/isora-platform/cyberops-core/internal/framework"
	"github.com/isora-platform/cyberops-core/internal/repository"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

type evaluateComplianceRequest struct {
	Phase                  framework.Phase       `json:"phase"`
	Frameworks             []framework.Framework `json:"frameworks"`
	CompletedActions       []string              `json:"completed_actions"`
	EvidenceCollected      []string              `json:"evidence_collected"`
	DocumentationProvided  []string              `json:"documentation_provided"`
	Operator               string                `json:"operator"`
}

// handleEvaluateCompliance scores a phase's recorded evidence against one
// or more frameworks and persists the run for later retrieval (spec C5).
func (s *Server) handleEvaluateCompliance(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	var req evaluateComplianceRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	if !req.Phase.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownPhase, "unknown phase"))
		return
	}
	for _, fw := range req.Frameworks {
		if !fw.Valid() {
			apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownFramework, "unknown framework").
				WithDetail(map[string]any{"framework": string(fw)}))
			return
		}
	}

	input := compliance.EvaluationInput{
		CompletedActions:      req.CompletedActions,
		EvidenceCollected:     req.EvidenceCollected,
		DocumentationProvided: req.DocumentationProvided,
		Operator:              req.Operator,
	}

	perFramework, aggregate := s.Evaluator.EvaluateCrossFramework(req.Phase, input, req.Frameworks...)
	now := time.Now()
	for fw, report := range perFramework {
		s.Repo.Compliance.Record(repository.ComplianceRun{
			TenantID:    tc.TenantID,
			Framework:   fw,
			Phase:       req.Phase,
			Report:      report,
			EvaluatedAt: now,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"per_framework": perFramework,
		"aggregate":     aggregate,
	})
}

type complianceCoverageRequest struct {
	Phase                 framework.Phase `json:"phase"`
	CompletedActions      []string        `json:"completed_actions"`
	EvidenceCollected     []string        `json:"evidence_collected"`
	DocumentationProvided []string        `json:"documentation_provided"`
	Operator              string          `json:"operator"`
}

// handleComplianceCoverage computes the cross-framework unified-control
// coverage rollup for a phase (spec C4/C5 combined).
func (s *Server) handleComplianceCoverage(w http.ResponseWriter, r *http.Request) {
	var req complianceCoverageRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	if !req.Phase.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownPhase, "unknown phase"))
		return
	}

	input := compliance.EvaluationInput{
		CompletedActions:      req.CompletedActions,
		EvidenceCollected:     req.EvidenceCollected,
		DocumentationProvided: req.DocumentationProvided,
		Operator:              req.Operator,
	}
	writeJSON(w, http.StatusOK, s.Evaluator.ComputeCrossFrameworkCoverage(req.Phase, input))
}

// handleComplianceHistory returns every recorded evaluation run for the
// caller's tenant against one framework/phase pair, oldest first.
func (s *Server) handleComplianceHistory(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	fw := framework.Framework(r.URL.Query().Get("framework"))
	phase := framework.Phase(r.URL.Query().Get("phase"))
	if !fw.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownFramework, "unknown framework"))
		return
	}
	if !phase.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownPhase, "unknown phase"))
		return
	}

	writeJSON(w, http.StatusOK, s.Repo.Compliance.History(tc.TenantID, fw, phase))
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/riskstage/pkg/domain/model"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
	"github.com/secmon-lab/riskstage/pkg/usecase"
)

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := s.uc.Project.Create(r.Context())
	if err != nil {
		handleError(w, r, "create_project", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]types.ProjectID{"projectId": projectID})
}

func (s *Server) getRiskSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.uc.Source.Sources(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "get_risk_sources", err)
		return
	}
	writeJSON(w, r, http.StatusOK, sources)
}

func (s *Server) updateRiskSources(w http.ResponseWriter, r *http.Request) {
	var sources model.RiskSourceCatalog
	if err := decodeJSON(r, &sources); err != nil {
		handleError(w, r, "update_risk_sources", err)
		return
	}

	result, err := s.uc.Source.UpdateSources(r.Context(), projectFrom(r.Context()), &sources)
	if err != nil {
		handleError(w, r, "update_risk_sources", err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) getRiskEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.uc.Event.Catalog())
}

func (s *Server) selectRiskEvents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SelectedEvents []types.RiskID `json:"selectedEvents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, "select_risk_events", err)
		return
	}

	selection, err := s.uc.Event.SelectEvents(r.Context(), projectFrom(r.Context()), req.SelectedEvents)
	if err != nil {
		handleError(w, r, "select_risk_events", err)
		return
	}
	writeJSON(w, r, http.StatusOK, selection)
}

func (s *Server) getSelectedEvents(w http.ResponseWriter, r *http.Request) {
	selection, err := s.uc.Event.Selected(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "get_selected_events", err)
		return
	}
	writeJSON(w, r, http.StatusOK, selection)
}

func (s *Server) analyzeRisk(w http.ResponseWriter, r *http.Request) {
	var input usecase.AnalyzeInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, "analyze_risk", err)
		return
	}

	risk, err := s.uc.Analysis.AnalyzeRisk(r.Context(), projectFrom(r.Context()), input)
	if err != nil {
		handleError(w, r, "analyze_risk", err)
		return
	}
	writeJSON(w, r, http.StatusOK, risk)
}

func (s *Server) getAnalyzedRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.uc.Analysis.ListAnalyzedRisks(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "list_analyzed_risks", err)
		return
	}
	writeJSON(w, r, http.StatusOK, risks)
}

func (s *Server) prioritizeRisks(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Risks []*model.PrioritizedRisk `json:"risks"`
		Count int                      `json:"count"`
	}

	risks, err := s.uc.Analysis.PrioritizeRisks(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "prioritize_risks", err)
		return
	}
	writeJSON(w, r, http.StatusOK, response{Risks: risks, Count: len(risks)})
}

func (s *Server) getMitigationMeasures(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.uc.Mitigation.Measures())
}

func (s *Server) assignMitigation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RiskID    types.RiskID    `json:"riskId"`
		MeasureID types.MeasureID `json:"measureId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, "assign_mitigation", err)
		return
	}

	plan, err := s.uc.Mitigation.AssignMitigation(r.Context(), projectFrom(r.Context()), req.RiskID, req.MeasureID)
	if err != nil {
		handleError(w, r, "assign_mitigation", err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

// getMitigationPlans returns the plans keyed by risk ID
func (s *Server) getMitigationPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.uc.Mitigation.ListPlans(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "list_mitigation_plans", err)
		return
	}

	resp := make(map[types.RiskID]*model.MitigationPlan, len(plans))
	for _, plan := range plans {
		resp[plan.RiskID] = plan
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) monitorRisk(w http.ResponseWriter, r *http.Request) {
	var input usecase.MonitorInput
	if err := decodeJSON(r, &input); err != nil {
		handleError(w, r, "monitor_risk", err)
		return
	}

	result, err := s.uc.Monitoring.MonitorRisk(r.Context(), projectFrom(r.Context()), input)
	if err != nil {
		handleError(w, r, "monitor_risk", err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// getMonitoringData returns the monitoring results keyed by risk ID
func (s *Server) getMonitoringData(w http.ResponseWriter, r *http.Request) {
	results, err := s.uc.Monitoring.ListResults(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "list_monitoring_results", err)
		return
	}

	resp := make(map[types.RiskID]*model.MonitoringResult, len(results))
	for _, result := range results {
		resp[result.RiskID] = result
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) getMonitoringResult(w http.ResponseWriter, r *http.Request) {
	riskID := types.RiskID(chi.URLParam(r, "riskID"))

	result, err := s.uc.Monitoring.GetResult(r.Context(), projectFrom(r.Context()), riskID)
	if err != nil {
		handleError(w, r, "get_monitoring_result", err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) getProjectStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.uc.Project.Status(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "project_status", err)
		return
	}
	writeJSON(w, r, http.StatusOK, status)
}

func (s *Server) resetProject(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Project.Reset(r.Context(), projectFrom(r.Context())); err != nil {
		handleError(w, r, "reset_project", err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "project data has been reset"})
}

func (s *Server) getSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.uc.Project.Snapshot(r.Context(), projectFrom(r.Context()))
	if err != nil {
		handleError(w, r, "snapshot", err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

package devserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/skywarn/pkg/model"
)

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	alerts := append([]model.Alert(nil), s.alerts...)
	s.mu.Unlock()

	if alerts == nil {
		alerts = []model.Alert{}
	}
	respondJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.alerts {
		if a.ID == id {
			respondJSON(w, http.StatusOK, a)
			return
		}
	}
	respondError(w, http.StatusNotFound, "Alert not found")
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if !req.Type.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown alert type")
		return
	}
	if !req.Severity.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown severity")
		return
	}

	alert := model.Alert{
		ID:          newID("alr"),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Severity:    req.Severity,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsActive:    req.IsActive,
		CreatedAt:   time.Now().UTC(),
	}

	// Canonical order is oldest first; clients that want most-recent-first
	// apply their own presentation ordering.
	s.mu.Lock()
	s.alerts = append(s.alerts, alert)
	s.mu.Unlock()

	s.logger.Debug("alert created", "id", alert.ID)
	respondJSON(w, http.StatusCreated, alert)
}

func (s *Server) handleUpdateAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Type != nil && !req.Type.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown alert type")
		return
	}
	if req.Severity != nil && !req.Severity.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown severity")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID != id {
			continue
		}
		applyUpdate(&s.alerts[i], req)
		s.logger.Debug("alert updated", "id", id)
		respondJSON(w, http.StatusOK, s.alerts[i])
		return
	}
	respondError(w, http.StatusNotFound, "Alert not found")
}

func applyUpdate(a *model.Alert, req model.UpdateAlertRequest) {
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.Severity != nil {
		a.Severity = *req.Severity
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.Latitude != nil {
		a.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		a.Longitude = req.Longitude
	}
	if req.StartDate != nil {
		a.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		a.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			s.logger.Debug("alert deleted", "id", id)
			respondJSON(w, http.StatusNoContent, nil)
			return
		}
	}
	respondError(w, http.StatusNotFound, "Alert not found")
}

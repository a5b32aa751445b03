package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/meur/harborline/internal/forms"
)

// form resolves the {form} URL parameter against the visitor session
func (s *Server) form(w http.ResponseWriter, r *http.Request) (forms.Form, bool) {
	name := chi.URLParam(r, "form")
	form, ok := s.session(w, r).Form(name)
	if !ok {
		respondError(w, http.StatusNotFound, "Form not found")
		return nil, false
	}
	return form, true
}

// handleGetForm returns the form's state and field values
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.form(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, form.Status())
}

// handleEditForm applies field edits
func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.form(w, r)
	if !ok {
		return
	}

	var values forms.Values
	if err := decodeJSON(r, &values); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := form.SetAll(values); err != nil {
		switch {
		case errors.Is(err, forms.ErrUnknownField):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, forms.ErrAlreadySubmitted):
			respondError(w, http.StatusConflict, "Form already submitted")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to update form")
		}
		return
	}
	respondJSON(w, http.StatusOK, form.Status())
}

// handleSubmitForm submits the form to the store
func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.form(w, r)
	if !ok {
		return
	}

	err := form.Submit(r.Context())
	if err == nil {
		respondJSON(w, http.StatusCreated, form.Status())
		return
	}

	var validation *forms.ValidationError
	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":   "Required fields missing",
			"missing": validation.Fields,
		})
	case errors.Is(err, forms.ErrInFlight):
		respondError(w, http.StatusConflict, "Submission already in progress")
	case errors.Is(err, forms.ErrAlreadySubmitted):
		respondError(w, http.StatusConflict, "Form already submitted")
	default:
		s.logger.Warn("form submission failed", zap.String("form", form.Name()), zap.Error(err))
		respondJSON(w, http.StatusBadGateway, form.Status())
	}
}

// handleResetForm clears the form
func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.form(w, r)
	if !ok {
		return
	}
	form.Reset()
	respondJSON(w, http.StatusOK, form.Status())
}

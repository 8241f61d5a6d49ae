package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	profilessvc "github.com/David-1512/LearnHub/internal/services/profiles"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

type ProfilesHandler struct {
	profiles *profilessvc.Service
}

func NewProfilesHandler(profiles *profilessvc.Service) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

func (h *ProfilesHandler) ListTutors(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	tutors, err := h.profiles.ListTutors(r.Context(), r.URL.Query().Get("city"), r.URL.Query().Get("subject"))
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load tutors")
		return
	}

	out := make([]dto.TutorResponse, 0, len(tutors))
	for _, tutor := range tutors {
		out = append(out, mapTutor(tutor))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *ProfilesHandler) GetTutor(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	tutor, err := h.profiles.GetTutor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, profilessvc.ErrNotFound) {
			writeNotFound(w, "TUTOR_NOT_FOUND", "tutor not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load tutor")
		return
	}

	httperrors.Write(w, http.StatusOK, mapTutor(tutor))
}

func (h *ProfilesHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	students, err := h.profiles.ListStudents(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load students")
		return
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		out = append(out, mapStudent(student))
	}
	httperrors.Write(w, http.StatusOK, out)
}

func (h *ProfilesHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	student, err := h.profiles.GetStudent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, profilessvc.ErrNotFound) {
			writeNotFound(w, "STUDENT_NOT_FOUND", "student not found")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to load student")
		return
	}

	httperrors.Write(w, http.StatusOK, mapStudent(student))
}

func (h *ProfilesHandler) ReplaceSubjects(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	tutorID := chi.URLParam(r, "id")
	if tutorID != identity.UserID && !identity.HasRole(enums.RoleAdmin) {
		writeForbidden(w, "FORBIDDEN", "cannot modify another tutor's subjects")
		return
	}

	var req dto.SubjectsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	saved, err := h.profiles.ReplaceSubjects(r.Context(), tutorID, req.Subjects)
	if err != nil {
		switch {
		case errors.Is(err, profilessvc.ErrNotFound):
			writeNotFound(w, "TUTOR_NOT_FOUND", "tutor not found")
		case errors.Is(err, profilessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "too many subjects")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to save subjects")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SubjectsResponse{Subjects: saved})
}

func (h *ProfilesHandler) ReplaceInterests(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		writeInternal(w, "PROFILES_SERVICE_UNAVAILABLE", "profiles service is unavailable")
		return
	}

	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	studentID := chi.URLParam(r, "id")
	if studentID != identity.UserID && !identity.HasRole(enums.RoleAdmin) {
		writeForbidden(w, "FORBIDDEN", "cannot modify another student's interests")
		return
	}

	var req dto.InterestsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	saved, err := h.profiles.ReplaceInterests(r.Context(), studentID, req.Interests)
	if err != nil {
		switch {
		case errors.Is(err, profilessvc.ErrNotFound):
			writeNotFound(w, "STUDENT_NOT_FOUND", "student not found")
		case errors.Is(err, profilessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "too many interests")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to save interests")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.InterestsResponse{Interests: saved})
}

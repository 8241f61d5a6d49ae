package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/David-1512/LearnHub/internal/domain/enums"
	"github.com/David-1512/LearnHub/internal/domain/model"
	userssvc "github.com/David-1512/LearnHub/internal/services/users"
	"github.com/David-1512/LearnHub/internal/transport/http/dto"
	httperrors "github.com/David-1512/LearnHub/internal/transport/http/errors"
)

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func writeValidation(w http.ResponseWriter, verr *userssvc.ValidationError) {
	issues := make([]httperrors.FieldIssue, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		issues = append(issues, httperrors.FieldIssue{Field: f.Field, Message: f.Message})
	}
	httperrors.Write(w, http.StatusBadRequest, httperrors.ValidationError{
		Code:    "VALIDATION_ERROR",
		Message: "request validation failed",
		Fields:  issues,
	})
}

func mapUser(user model.PublicUser) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: enums.RolesToStrings(user.Roles),
	}
}

func mapTutor(tutor model.Tutor) dto.TutorResponse {
	subjects := tutor.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return dto.TutorResponse{
		ID:       tutor.ID,
		Name:     tutor.Name,
		Age:      tutor.Age,
		Rating:   tutor.Rating,
		City:     tutor.City,
		Schedule: tutor.Schedule,
		Subjects: subjects,
		Bio:      tutor.Bio,
		Avatar:   tutor.AvatarKey,
		Email:    tutor.Email,
		Phone:    tutor.Phone,
	}
}

func mapStudent(student model.Student) dto.StudentResponse {
	interests := student.Interests
	if interests == nil {
		interests = []string{}
	}
	return dto.StudentResponse{
		ID:        student.ID,
		Name:      student.Name,
		Age:       student.Age,
		City:      student.City,
		Interests: interests,
		Bio:       student.Bio,
		Avatar:    student.AvatarKey,
		Email:     student.Email,
		Phone:     student.Phone,
	}
}

func mapLike(like model.Like) dto.LikeResponse {
	return dto.LikeResponse{
		ID:        like.ID,
		StudentID: like.StudentID,
		TutorID:   like.TutorID,
		CreatedAt: like.CreatedAt,
	}
}

func mapPass(pass model.Pass) dto.PassResponse {
	return dto.PassResponse{
		ID:        pass.ID,
		StudentID: pass.StudentID,
		TutorID:   pass.TutorID,
		CreatedAt: pass.CreatedAt,
	}
}

func mapLikedTutor(item model.LikedTutor) dto.LikeExpandedResponse {
	return dto.LikeExpandedResponse{
		ID:        item.LikeID,
		CreatedAt: item.CreatedAt,
		Tutor:     mapTutor(item.Tutor),
	}
}

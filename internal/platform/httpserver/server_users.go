package httpserver

import (
	"errors"
	"net/http"

	usererrors "cardhub/contexts/identity-access/user-service/domain/errors"
	userhttp "cardhub/contexts/identity-access/user-service/transport/http"
	"cardhub/internal/platform/validation"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.Parse[userhttp.RegisterUserRequest](http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	resp, err := s.users.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.Parse[userhttp.LoginRequest](http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	resp, err := s.users.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.ListUsersHandler(r.Context(), claim)
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.ProfileHandler(r.Context(), claim)
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.GetUserHandler(r.Context(), claim, r.PathValue("id"))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	req, err := validation.Parse[userhttp.UpdateUserRequest](http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	resp, err := s.users.Handler.UpdateUserHandler(r.Context(), claim, r.PathValue("id"), req)
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleBusiness(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.ToggleBusinessHandler(r.Context(), claim, r.PathValue("id"))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.DeleteUserHandler(r.Context(), claim, r.PathValue("id"))
	if err != nil {
		s.writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeUserDomainError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
	case errors.Is(err, usererrors.ErrInvalidUserID),
		errors.Is(err, usererrors.ErrInvalidEmail),
		errors.Is(err, usererrors.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, usererrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, usererrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, usererrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, usererrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, usererrors.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err.Error())
	default:
		s.logger.Error("user request failed",
			"event", "http_user_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

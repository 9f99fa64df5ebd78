package httpserver

import (
	"errors"
	"net/http"

	carderrors "cardhub/contexts/card-directory/card-service/domain/errors"
	cardhttp "cardhub/contexts/card-directory/card-service/transport/http"
	"cardhub/internal/platform/validation"
)

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	resp, err := s.cards.Handler.ListCardsHandler(r.Context())
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	resp, err := s.cards.Handler.GetCardHandler(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMyCards(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.cards.Handler.MyCardsHandler(r.Context(), claim)
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUserCards(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.cards.Handler.UserCardsHandler(r.Context(), claim, r.PathValue("userId"))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	req, err := validation.Parse[cardhttp.CreateCardRequest](http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	resp, err := s.cards.Handler.CreateCardHandler(r.Context(), claim, req)
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	req, err := validation.Parse[cardhttp.UpdateCardRequest](http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	resp, err := s.cards.Handler.UpdateCardHandler(r.Context(), claim, r.PathValue("cardId"), req)
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.cards.Handler.ToggleLikeHandler(r.Context(), claim, r.PathValue("id"))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	claim, ok := s.requireIdentity(w, r)
	if !ok {
		return
	}
	resp, err := s.cards.Handler.DeleteCardHandler(r.Context(), claim, r.PathValue("cardId"))
	if err != nil {
		s.writeCardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeCardDomainError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
	case errors.Is(err, carderrors.ErrInvalidCardID),
		errors.Is(err, carderrors.ErrInvalidUserID):
		writeError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, carderrors.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
	case errors.Is(err, carderrors.ErrBusinessRequired):
		writeError(w, http.StatusForbidden, "business_required", err.Error())
	case errors.Is(err, carderrors.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, carderrors.ErrCardNotFound):
		writeError(w, http.StatusNotFound, "card_not_found", err.Error())
	case errors.Is(err, carderrors.ErrOwnerNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		s.logger.Error("card request failed",
			"event", "http_card_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

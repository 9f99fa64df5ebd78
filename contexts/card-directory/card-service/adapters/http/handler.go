package httpadapter

import (
	"context"
	"log/slog"

	application "cardhub/contexts/card-directory/card-service/application"
	"cardhub/contexts/card-directory/card-service/application/commands"
	"cardhub/contexts/card-directory/card-service/application/queries"
	"cardhub/contexts/card-directory/card-service/domain/entities"
	httptransport "cardhub/contexts/card-directory/card-service/transport/http"
	"cardhub/internal/platform/validation"
	"cardhub/internal/shared/identity"
)

type Handler struct {
	ListCards        queries.ListCardsUseCase
	ListCardsByOwner queries.ListCardsByOwnerUseCase
	GetCard          queries.GetCardUseCase
	CreateCard       commands.CreateCardUseCase
	UpdateCard       commands.UpdateCardUseCase
	ToggleLike       commands.ToggleLikeUseCase
	DeleteCard       commands.DeleteCardUseCase
	Logger           *slog.Logger
}

// ListCardsHandler godoc
// @Summary List cards
// @Description Returns every published card. No authentication required.
// @Tags cards
// @Produce json
// @Success 200 {array} httptransport.CardResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/card [get]
func (h Handler) ListCardsHandler(ctx context.Context) ([]httptransport.CardResponse, error) {
	cards, err := h.ListCards.Execute(ctx)
	if err != nil {
		application.ResolveLogger(h.Logger).Error("list cards request failed",
			"event", "http_list_cards_failed",
			"module", "card-directory/card-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return nil, err
	}
	return mapCards(cards), nil
}

// MyCardsHandler godoc
// @Summary List own cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {array} httptransport.CardResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/card/my-cards [get]
func (h Handler) MyCardsHandler(ctx context.Context, claim identity.Claim) ([]httptransport.CardResponse, error) {
	return h.UserCardsHandler(ctx, claim, claim.UserID)
}

// UserCardsHandler godoc
// @Summary List a user's cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Owner user id"
// @Success 200 {array} httptransport.CardResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/card/user/{userId} [get]
func (h Handler) UserCardsHandler(ctx context.Context, claim identity.Claim, ownerID string) ([]httptransport.CardResponse, error) {
	cards, err := h.ListCardsByOwner.Execute(ctx, queries.ListCardsByOwnerQuery{
		Actor:   actorFromClaim(claim),
		OwnerID: ownerID,
	})
	if err != nil {
		return nil, err
	}
	return mapCards(cards), nil
}

// GetCardHandler godoc
// @Summary Get a card
// @Tags cards
// @Produce json
// @Param id path string true "Card id"
// @Success 200 {object} httptransport.CardResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/card/{id} [get]
func (h Handler) GetCardHandler(ctx context.Context, cardID string) (httptransport.CardResponse, error) {
	card, err := h.GetCard.Execute(ctx, cardID)
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	return mapCard(card), nil
}

// CreateCardHandler godoc
// @Summary Publish a card
// @Description Only business users may publish. The caller becomes the owner.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreateCardRequest true "Card content"
// @Success 201 {object} httptransport.CardResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/card [post]
func (h Handler) CreateCardHandler(
	ctx context.Context,
	claim identity.Claim,
	req httptransport.CreateCardRequest,
) (httptransport.CardResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	req, err := validation.Validate(req)
	if err != nil {
		logger.Debug("create card request rejected",
			"event", "http_create_card_invalid",
			"module", "card-directory/card-service",
			"layer", "transport",
			"user_id", claim.UserID,
			"error", err.Error(),
		)
		return httptransport.CardResponse{}, err
	}

	card, err := h.CreateCard.Execute(ctx, commands.CreateCardCommand{
		Actor:   actorFromClaim(claim),
		Content: contentFromDTO(httptransport.CardContentDTO(req)),
	})
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	return mapCard(card), nil
}

// UpdateCardHandler godoc
// @Summary Edit a card
// @Description Only the card owner may edit. Owner and likes are preserved.
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cardId path string true "Card id"
// @Param request body httptransport.UpdateCardRequest true "Card content"
// @Success 200 {object} httptransport.CardResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/card/{cardId} [put]
func (h Handler) UpdateCardHandler(
	ctx context.Context,
	claim identity.Claim,
	cardID string,
	req httptransport.UpdateCardRequest,
) (httptransport.CardResponse, error) {
	req, err := validation.Validate(req)
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	card, err := h.UpdateCard.Execute(ctx, commands.UpdateCardCommand{
		Actor:   actorFromClaim(claim),
		CardID:  cardID,
		Content: contentFromDTO(httptransport.CardContentDTO(req)),
	})
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	return mapCard(card), nil
}

// ToggleLikeHandler godoc
// @Summary Like or unlike a card
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param id path string true "Card id"
// @Success 200 {object} httptransport.CardResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/card/{id}/like [patch]
func (h Handler) ToggleLikeHandler(ctx context.Context, claim identity.Claim, cardID string) (httptransport.CardResponse, error) {
	card, err := h.ToggleLike.Execute(ctx, commands.ToggleLikeCommand{
		Actor:  actorFromClaim(claim),
		CardID: cardID,
	})
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	return mapCard(card), nil
}

// DeleteCardHandler godoc
// @Summary Delete a card
// @Description Allowed for the card owner and for admins.
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Param cardId path string true "Card id"
// @Success 200 {object} httptransport.CardResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/card/{cardId} [delete]
func (h Handler) DeleteCardHandler(ctx context.Context, claim identity.Claim, cardID string) (httptransport.CardResponse, error) {
	card, err := h.DeleteCard.Execute(ctx, commands.DeleteCardCommand{
		Actor:  actorFromClaim(claim),
		CardID: cardID,
	})
	if err != nil {
		return httptransport.CardResponse{}, err
	}
	return mapCard(card), nil
}

func actorFromClaim(claim identity.Claim) entities.Actor {
	return entities.Actor{
		UserID:     claim.UserID,
		IsAdmin:    claim.IsAdmin,
		IsBusiness: claim.IsBusiness,
	}
}

func contentFromDTO(dto httptransport.CardContentDTO) entities.Content {
	content := entities.Content{
		Title:       dto.Title,
		Subtitle:    dto.Subtitle,
		Description: dto.Description,
		Phone:       dto.Phone,
		Email:       dto.Email,
		Web:         dto.Web,
	}
	if dto.Image != nil {
		content.Image = &entities.Image{URL: dto.Image.URL, Alt: dto.Image.Alt}
	}
	if dto.Address != nil {
		content.Address = entities.Address{
			State:       dto.Address.State,
			Country:     dto.Address.Country,
			City:        dto.Address.City,
			Street:      dto.Address.Street,
			HouseNumber: dto.Address.HouseNumber,
			Zip:         dto.Address.Zip,
		}
	}
	return content
}

func mapCards(cards []entities.Card) []httptransport.CardResponse {
	items := make([]httptransport.CardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, mapCard(card))
	}
	return items
}

func mapCard(card entities.Card) httptransport.CardResponse {
	content := card.Content
	response := httptransport.CardResponse{
		ID:          card.CardID,
		Title:       content.Title,
		Subtitle:    content.Subtitle,
		Description: content.Description,
		Phone:       content.Phone,
		Email:       content.Email,
		Web:         content.Web,
		Address: httptransport.AddressDTO{
			State:       content.Address.State,
			Country:     content.Address.Country,
			City:        content.Address.City,
			Street:      content.Address.Street,
			HouseNumber: content.Address.HouseNumber,
			Zip:         content.Address.Zip,
		},
		Likes:     card.Likes,
		UserID:    card.OwnerID,
		CreatedAt: card.CreatedAt,
	}
	if response.Likes == nil {
		response.Likes = []string{}
	}
	if content.Image != nil {
		response.Image = &httptransport.ImageDTO{URL: content.Image.URL, Alt: content.Image.Alt}
	}
	return response
}

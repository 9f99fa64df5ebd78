package httpadapter

import (
	"context"
	"log/slog"

	application "cardhub/contexts/identity-access/user-service/application"
	"cardhub/contexts/identity-access/user-service/application/commands"
	"cardhub/contexts/identity-access/user-service/application/queries"
	"cardhub/contexts/identity-access/user-service/domain/entities"
	httptransport "cardhub/contexts/identity-access/user-service/transport/http"
	"cardhub/internal/platform/validation"
	"cardhub/internal/shared/identity"
)

// Handler maps HTTP DTOs to application commands/queries. Request bodies are
// validated here, before any policy or store access.
type Handler struct {
	Register       commands.RegisterUserUseCase
	Login          commands.LoginUseCase
	UpdateUser     commands.UpdateUserUseCase
	ToggleBusiness commands.ToggleBusinessUseCase
	DeleteUser     commands.DeleteUserUseCase
	GetUser        queries.GetUserUseCase
	GetProfile     queries.GetProfileUseCase
	ListUsers      queries.ListUsersUseCase
	Logger         *slog.Logger
}

// RegisterHandler godoc
// @Summary Register a user
// @Description Creates an account and returns a session token. Admin accounts cannot be registered.
// @Tags users
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterUserRequest true "Registration payload"
// @Success 201 {object} httptransport.AuthResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/users [post]
func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterUserRequest) (httptransport.AuthResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	req, err := validation.Validate(req)
	if err != nil {
		logger.Debug("register request rejected",
			"event", "http_register_invalid",
			"module", "identity-access/user-service",
			"layer", "transport",
			"error", err.Error(),
		)
		return httptransport.AuthResponse{}, err
	}

	result, err := h.Register.Execute(ctx, commands.RegisterUserCommand{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    addressFromDTO(req.Address),
		IsBusiness: req.IsBusiness,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return httptransport.AuthResponse{
		Token: result.Token,
		User:  mapUser(result.User),
	}, nil
}

// LoginHandler godoc
// @Summary Log in
// @Description Exchanges email and password for a session token.
// @Tags users
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Router /api/users/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	req, err := validation.Validate(req)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	result, err := h.Login.Execute(ctx, commands.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{Token: result.Token}, nil
}

// ListUsersHandler godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /api/users [get]
func (h Handler) ListUsersHandler(ctx context.Context, claim identity.Claim) ([]httptransport.UserResponse, error) {
	users, err := h.ListUsers.Execute(ctx, actorFromClaim(claim))
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, mapUser(user))
	}
	return items, nil
}

// ProfileHandler godoc
// @Summary Read own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} httptransport.ProfileResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/users/profile [get]
func (h Handler) ProfileHandler(ctx context.Context, claim identity.Claim) (httptransport.ProfileResponse, error) {
	profile, err := h.GetProfile.Execute(ctx, actorFromClaim(claim))
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		ID:      profile.UserID,
		Email:   profile.Email,
		Name:    profile.Name,
		IsAdmin: profile.IsAdmin,
	}, nil
}

// GetUserHandler godoc
// @Summary Read a user
// @Description Allowed for the user themselves and for admins.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/users/{id} [get]
func (h Handler) GetUserHandler(ctx context.Context, claim identity.Claim, userID string) (httptransport.UserResponse, error) {
	user, err := h.GetUser.Execute(ctx, queries.GetUserQuery{
		Actor:  actorFromClaim(claim),
		UserID: userID,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return mapUser(user), nil
}

// UpdateUserHandler godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Param request body httptransport.UpdateUserRequest true "Profile fields"
// @Success 200 {object} httptransport.UserResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/users/{id} [put]
func (h Handler) UpdateUserHandler(
	ctx context.Context,
	claim identity.Claim,
	userID string,
	req httptransport.UpdateUserRequest,
) (httptransport.UserResponse, error) {
	req, err := validation.Validate(req)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	user, err := h.UpdateUser.Execute(ctx, commands.UpdateUserCommand{
		Actor:   actorFromClaim(claim),
		UserID:  userID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: addressFromDTO(req.Address),
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return mapUser(user), nil
}

// ToggleBusinessHandler godoc
// @Summary Toggle business status
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/users/{id} [patch]
func (h Handler) ToggleBusinessHandler(ctx context.Context, claim identity.Claim, userID string) (httptransport.UserResponse, error) {
	user, err := h.ToggleBusiness.Execute(ctx, commands.ToggleBusinessCommand{
		Actor:  actorFromClaim(claim),
		UserID: userID,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return mapUser(user), nil
}

// DeleteUserHandler godoc
// @Summary Delete a user
// @Description Removes the user, their cards and their likes on other cards.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /api/users/{id} [delete]
func (h Handler) DeleteUserHandler(ctx context.Context, claim identity.Claim, userID string) (httptransport.UserResponse, error) {
	user, err := h.DeleteUser.Execute(ctx, commands.DeleteUserCommand{
		Actor:  actorFromClaim(claim),
		UserID: userID,
	})
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return mapUser(user), nil
}

func actorFromClaim(claim identity.Claim) entities.Actor {
	return entities.Actor{
		UserID:     claim.UserID,
		IsAdmin:    claim.IsAdmin,
		IsBusiness: claim.IsBusiness,
	}
}

func addressFromDTO(dto *httptransport.AddressDTO) *entities.Address {
	if dto == nil {
		return nil
	}
	return &entities.Address{
		State:       dto.State,
		Country:     dto.Country,
		City:        dto.City,
		Street:      dto.Street,
		HouseNumber: dto.HouseNumber,
		Zip:         dto.Zip,
	}
}

func mapUser(user entities.User) httptransport.UserResponse {
	response := httptransport.UserResponse{
		ID:         user.UserID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		IsAdmin:    user.IsAdmin,
		IsBusiness: user.IsBusiness,
		CreatedAt:  user.CreatedAt,
	}
	if user.Address != nil {
		response.Address = &httptransport.AddressDTO{
			State:       user.Address.State,
			Country:     user.Address.Country,
			City:        user.Address.City,
			Street:      user.Address.Street,
			HouseNumber: user.Address.HouseNumber,
			Zip:         user.Address.Zip,
		}
	}
	return response
}

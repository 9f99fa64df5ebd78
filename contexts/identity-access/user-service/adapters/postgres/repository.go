package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates or updates the users table and its unique email index.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&userModel{})
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrEmailTaken
		}
		return r.logError("user_repo_create_failed", err, "user_id", user.UserID)
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.first(r.db.WithContext(ctx), "user_id = ?", userID)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", email)
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	var rows []userModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("user_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateProfile(
	ctx context.Context,
	userID string,
	update entities.ProfileUpdate,
	now time.Time,
) (entities.User, error) {
	values := map[string]any{
		"name":       update.Name,
		"phone":      update.Phone,
		"updated_at": now.UTC(),
	}
	for column, value := range addressColumns(update.Address) {
		values[column] = value
	}

	var updated entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&userModel{}).Where("user_id = ?", userID).Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrUserNotFound
		}
		user, err := r.first(tx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return updated, nil
}

// ToggleBusiness negates the flag inside the UPDATE statement so concurrent
// toggles never read a stale value.
func (r *Repository) ToggleBusiness(ctx context.Context, userID string, now time.Time) (entities.User, error) {
	var updated entities.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&userModel{}).
			Where("user_id = ?", userID).
			Updates(map[string]any{
				"is_business": gorm.Expr("NOT is_business"),
				"updated_at":  now.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrUserNotFound
		}
		user, err := r.first(tx, "user_id = ?", userID)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	return updated, nil
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userModel{})
	if result.Error != nil {
		return r.logError("user_repo_delete_failed", result.Error, "user_id", userID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "identity-access/user-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("user repository operation failed", fields...)
	return err
}

func (r *Repository) first(tx *gorm.DB, query string, arg string) (entities.User, error) {
	var row userModel
	err := tx.Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

type userModel struct {
	UserID             string    `gorm:"column:user_id;primaryKey"`
	Email              string    `gorm:"column:email;not null;uniqueIndex:users_email_unique"`
	Name               string    `gorm:"column:name"`
	PasswordHash       string    `gorm:"column:password_hash;not null"`
	Phone              string    `gorm:"column:phone"`
	HasAddress         bool      `gorm:"column:has_address"`
	AddressState       string    `gorm:"column:address_state"`
	AddressCountry     string    `gorm:"column:address_country"`
	AddressCity        string    `gorm:"column:address_city"`
	AddressStreet      string    `gorm:"column:address_street"`
	AddressHouseNumber int       `gorm:"column:address_house_number"`
	AddressZip         int       `gorm:"column:address_zip"`
	IsAdmin            bool      `gorm:"column:is_admin;not null;default:false"`
	IsBusiness         bool      `gorm:"column:is_business;not null;default:false"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	row := userModel{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Phone:        user.Phone,
		IsAdmin:      user.IsAdmin,
		IsBusiness:   user.IsBusiness,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
	if user.Address != nil {
		row.HasAddress = true
		row.AddressState = user.Address.State
		row.AddressCountry = user.Address.Country
		row.AddressCity = user.Address.City
		row.AddressStreet = user.Address.Street
		row.AddressHouseNumber = user.Address.HouseNumber
		row.AddressZip = user.Address.Zip
	}
	return row
}

func (m userModel) toEntity() entities.User {
	user := entities.User{
		UserID:       m.UserID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		IsAdmin:      m.IsAdmin,
		IsBusiness:   m.IsBusiness,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
	if m.HasAddress {
		user.Address = &entities.Address{
			State:       m.AddressState,
			Country:     m.AddressCountry,
			City:        m.AddressCity,
			Street:      m.AddressStreet,
			HouseNumber: m.AddressHouseNumber,
			Zip:         m.AddressZip,
		}
	}
	return user
}

func addressColumns(address *entities.Address) map[string]any {
	if address == nil {
		return map[string]any{
			"has_address":          false,
			"address_state":        "",
			"address_country":      "",
			"address_city":         "",
			"address_street":       "",
			"address_house_number": 0,
			"address_zip":          0,
		}
	}
	return map[string]any{
		"has_address":          true,
		"address_state":        address.State,
		"address_country":      address.Country,
		"address_city":         address.City,
		"address_street":       address.Street,
		"address_house_number": address.HouseNumber,
		"address_zip":          address.Zip,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

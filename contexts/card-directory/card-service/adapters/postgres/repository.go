package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists cards in `cards` and the like set in `card_likes`,
// whose (card_id, user_id) primary key makes duplicates impossible.
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

func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&cardModel{}, &cardLikeModel{})
}

func (r *Repository) CreateCard(ctx context.Context, card entities.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := cardModelFromEntity(card)
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(card.Likes) == 0 {
			return nil
		}
		likes := make([]cardLikeModel, 0, len(card.Likes))
		for _, userID := range card.Likes {
			likes = append(likes, cardLikeModel{CardID: card.CardID, UserID: userID, CreatedAt: card.CreatedAt})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&likes).Error
	})
}

func (r *Repository) GetCard(ctx context.Context, cardID string) (entities.Card, error) {
	return r.getCard(r.db.WithContext(ctx), cardID)
}

func (r *Repository) ListCards(ctx context.Context) ([]entities.Card, error) {
	return r.listCards(ctx, "")
}

func (r *Repository) ListCardsByOwner(ctx context.Context, ownerID string) ([]entities.Card, error) {
	return r.listCards(ctx, ownerID)
}

func (r *Repository) UpdateCard(
	ctx context.Context,
	cardID string,
	content entities.Content,
	now time.Time,
) (entities.Card, error) {
	values := contentColumns(content)
	values["updated_at"] = now.UTC()

	var updated entities.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&cardModel{}).Where("card_id = ?", cardID).Updates(values)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCardNotFound
		}
		card, err := r.getCard(tx, cardID)
		if err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return entities.Card{}, err
	}
	return updated, nil
}

// ToggleLike locks the card row so concurrent toggles on one card serialize,
// then deletes the like or inserts it when nothing was deleted.
func (r *Repository) ToggleLike(ctx context.Context, cardID string, userID string, now time.Time) (entities.Card, error) {
	var toggled entities.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row cardModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("card_id = ?", cardID).
			First(&row).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCardNotFound
			}
			return err
		}

		removed := tx.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&cardLikeModel{})
		if removed.Error != nil {
			return removed.Error
		}
		if removed.RowsAffected == 0 {
			like := cardLikeModel{CardID: cardID, UserID: userID, CreatedAt: now.UTC()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&cardModel{}).Where("card_id = ?", cardID).Update("updated_at", now.UTC()).Error; err != nil {
			return err
		}

		row.UpdatedAt = now.UTC()
		likes, err := loadLikes(tx, []string{cardID})
		if err != nil {
			return err
		}
		toggled = row.toEntity(likes[cardID])
		return nil
	})
	if err != nil {
		return entities.Card{}, err
	}
	return toggled, nil
}

func (r *Repository) DeleteCard(ctx context.Context, cardID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", cardID).Delete(&cardLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("card_id = ?", cardID).Delete(&cardModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrCardNotFound
		}
		return nil
	})
}

func (r *Repository) DeleteCardsByOwner(ctx context.Context, ownerID string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&cardModel{}).Select("card_id").Where("owner_id = ?", ownerID)
		if err := tx.Where("card_id IN (?)", owned).Delete(&cardLikeModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("owner_id = ?", ownerID).Delete(&cardModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, r.logError("card_repo_delete_owned_failed", err, "owner_id", ownerID)
	}
	return deleted, nil
}

func (r *Repository) RemoveLikesByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&cardLikeModel{})
	if result.Error != nil {
		return 0, r.logError("card_repo_remove_likes_failed", result.Error, "user_id", userID)
	}
	return result.RowsAffected, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "card-directory/card-service",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("card repository operation failed", fields...)
	return err
}

func (r *Repository) getCard(tx *gorm.DB, cardID string) (entities.Card, error) {
	var row cardModel
	if err := tx.Where("card_id = ?", cardID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Card{}, domainerrors.ErrCardNotFound
		}
		return entities.Card{}, err
	}
	likes, err := loadLikes(tx, []string{cardID})
	if err != nil {
		return entities.Card{}, err
	}
	return row.toEntity(likes[cardID]), nil
}

// listCards returns all cards, or only ownerID's cards when it is set.
func (r *Repository) listCards(ctx context.Context, ownerID string) ([]entities.Card, error) {
	db := r.db.WithContext(ctx)
	query := db.Model(&cardModel{})
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}

	var rows []cardModel
	if err := query.
		Order("created_at ASC").
		Order("card_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []entities.Card{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CardID)
	}
	likes, err := loadLikes(db, ids)
	if err != nil {
		return nil, err
	}

	items := make([]entities.Card, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity(likes[row.CardID]))
	}
	return items, nil
}

func loadLikes(tx *gorm.DB, cardIDs []string) (map[string][]string, error) {
	var rows []cardLikeModel
	if err := tx.
		Where("card_id IN ?", cardIDs).
		Order("created_at ASC").
		Order("user_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	likes := make(map[string][]string, len(cardIDs))
	for _, row := range rows {
		likes[row.CardID] = append(likes[row.CardID], row.UserID)
	}
	return likes, nil
}

type cardModel struct {
	CardID             string    `gorm:"column:card_id;primaryKey"`
	OwnerID            string    `gorm:"column:owner_id;not null;index:cards_owner_id_idx"`
	Title              string    `gorm:"column:title;not null"`
	Subtitle           string    `gorm:"column:subtitle"`
	Description        string    `gorm:"column:description;not null"`
	Phone              string    `gorm:"column:phone;not null"`
	Email              string    `gorm:"column:email;not null"`
	Web                string    `gorm:"column:web"`
	HasImage           bool      `gorm:"column:has_image"`
	ImageURL           string    `gorm:"column:image_url"`
	ImageAlt           string    `gorm:"column:image_alt"`
	AddressState       string    `gorm:"column:address_state"`
	AddressCountry     string    `gorm:"column:address_country;not null"`
	AddressCity        string    `gorm:"column:address_city;not null"`
	AddressStreet      string    `gorm:"column:address_street;not null"`
	AddressHouseNumber int       `gorm:"column:address_house_number;not null"`
	AddressZip         int       `gorm:"column:address_zip"`
	CreatedAt          time.Time `gorm:"column:created_at;index:cards_created_at_idx"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (cardModel) TableName() string {
	return "cards"
}

type cardLikeModel struct {
	CardID    string    `gorm:"column:card_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;primaryKey;index:card_likes_user_id_idx"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (cardLikeModel) TableName() string {
	return "card_likes"
}

func cardModelFromEntity(card entities.Card) cardModel {
	content := card.Content
	row := cardModel{
		CardID:             card.CardID,
		OwnerID:            card.OwnerID,
		Title:              content.Title,
		Subtitle:           content.Subtitle,
		Description:        content.Description,
		Phone:              content.Phone,
		Email:              content.Email,
		Web:                content.Web,
		AddressState:       content.Address.State,
		AddressCountry:     content.Address.Country,
		AddressCity:        content.Address.City,
		AddressStreet:      content.Address.Street,
		AddressHouseNumber: content.Address.HouseNumber,
		AddressZip:         content.Address.Zip,
		CreatedAt:          card.CreatedAt.UTC(),
		UpdatedAt:          card.UpdatedAt.UTC(),
	}
	if content.Image != nil {
		row.HasImage = true
		row.ImageURL = content.Image.URL
		row.ImageAlt = content.Image.Alt
	}
	return row
}

func contentColumns(content entities.Content) map[string]any {
	values := map[string]any{
		"title":                content.Title,
		"subtitle":             content.Subtitle,
		"description":          content.Description,
		"phone":                content.Phone,
		"email":                content.Email,
		"web":                  content.Web,
		"has_image":            false,
		"image_url":            "",
		"image_alt":            "",
		"address_state":        content.Address.State,
		"address_country":      content.Address.Country,
		"address_city":         content.Address.City,
		"address_street":       content.Address.Street,
		"address_house_number": content.Address.HouseNumber,
		"address_zip":          content.Address.Zip,
	}
	if content.Image != nil {
		values["has_image"] = true
		values["image_url"] = content.Image.URL
		values["image_alt"] = content.Image.Alt
	}
	return values
}

func (m cardModel) toEntity(likes []string) entities.Card {
	if likes == nil {
		likes = []string{}
	}
	card := entities.Card{
		CardID:  m.CardID,
		OwnerID: m.OwnerID,
		Likes:   likes,
		Content: entities.Content{
			Title:       m.Title,
			Subtitle:    m.Subtitle,
			Description: m.Description,
			Phone:       m.Phone,
			Email:       m.Email,
			Web:         m.Web,
			Address: entities.Address{
				State:       m.AddressState,
				Country:     m.AddressCountry,
				City:        m.AddressCity,
				Street:      m.AddressStreet,
				HouseNumber: m.AddressHouseNumber,
				Zip:         m.AddressZip,
			},
		},
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
	if m.HasImage {
		card.Content.Image = &entities.Image{URL: m.ImageURL, Alt: m.ImageAlt}
	}
	return card
}

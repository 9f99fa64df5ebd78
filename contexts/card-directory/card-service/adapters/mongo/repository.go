package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cardhub/contexts/card-directory/card-service/domain/entities"
	domainerrors "cardhub/contexts/card-directory/card-service/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cardsCollection = "cards"

// Repository stores each card as one document with its likes embedded.
type Repository struct {
	cards  *mongo.Collection
	logger *slog.Logger
}

func NewRepository(db *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		cards:  db.Collection(cardsCollection),
		logger: logger,
	}
}

func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.cards.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("cards_owner_idx"),
		},
		{
			Keys:    bson.D{{Key: "likes", Value: 1}},
			Options: options.Index().SetName("cards_likes_idx"),
		},
	})
	return err
}

func (r *Repository) CreateCard(ctx context.Context, card entities.Card) error {
	_, err := r.cards.InsertOne(ctx, cardDocumentFromEntity(card))
	return err
}

func (r *Repository) GetCard(ctx context.Context, cardID string) (entities.Card, error) {
	var doc cardDocument
	if err := r.cards.FindOne(ctx, bson.D{{Key: "_id", Value: cardID}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Card{}, domainerrors.ErrCardNotFound
		}
		return entities.Card{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) ListCards(ctx context.Context) ([]entities.Card, error) {
	return r.find(ctx, bson.D{})
}

func (r *Repository) ListCardsByOwner(ctx context.Context, ownerID string) ([]entities.Card, error) {
	return r.find(ctx, bson.D{{Key: "userId", Value: ownerID}})
}

func (r *Repository) UpdateCard(
	ctx context.Context,
	cardID string,
	content entities.Content,
	now time.Time,
) (entities.Card, error) {
	doc := contentDocumentFromEntity(content)
	set := bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "subtitle", Value: doc.Subtitle},
		{Key: "description", Value: doc.Description},
		{Key: "phone", Value: doc.Phone},
		{Key: "email", Value: doc.Email},
		{Key: "web", Value: doc.Web},
		{Key: "address", Value: doc.Address},
		{Key: "updatedAt", Value: now.UTC()},
	}
	if doc.Image != nil {
		set = append(set, bson.E{Key: "image", Value: doc.Image})
		return r.findOneAndUpdate(ctx, cardID, bson.D{{Key: "$set", Value: set}})
	}
	return r.findOneAndUpdate(ctx, cardID, bson.D{
		{Key: "$set", Value: set},
		{Key: "$unset", Value: bson.D{{Key: "image", Value: ""}}},
	})
}

// ToggleLike evaluates membership server-side in a pipeline update so two
// concurrent toggles can never both observe the same like set.
func (r *Repository) ToggleLike(ctx context.Context, cardID string, userID string, now time.Time) (entities.Card, error) {
	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	member := bson.D{{Key: "$literal", Value: userID}}
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{member, likes}}}},
				{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: likes},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", member}}}},
				}}}},
				{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{member}}}}},
			}}}},
			{Key: "updatedAt", Value: now.UTC()},
		}}},
	}
	return r.findOneAndUpdate(ctx, cardID, pipeline)
}

func (r *Repository) DeleteCard(ctx context.Context, cardID string) error {
	result, err := r.cards.DeleteOne(ctx, bson.D{{Key: "_id", Value: cardID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrCardNotFound
	}
	return nil
}

func (r *Repository) DeleteCardsByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.cards.DeleteMany(ctx, bson.D{{Key: "userId", Value: ownerID}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *Repository) RemoveLikesByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.cards.UpdateMany(ctx,
		bson.D{{Key: "likes", Value: userID}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "likes", Value: userID}}}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (r *Repository) find(ctx context.Context, filter bson.D) ([]entities.Card, error) {
	cursor, err := r.cards.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	var docs []cardDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.Card, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) findOneAndUpdate(ctx context.Context, cardID string, update any) (entities.Card, error) {
	var doc cardDocument
	err := r.cards.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: cardID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.Card{}, domainerrors.ErrCardNotFound
		}
		return entities.Card{}, err
	}
	return doc.toEntity(), nil
}

type imageDocument struct {
	URL string `bson:"url"`
	Alt string `bson:"alt"`
}

type addressDocument struct {
	State       string `bson:"state"`
	Country     string `bson:"country"`
	City        string `bson:"city"`
	Street      string `bson:"street"`
	HouseNumber int    `bson:"houseNumber"`
	Zip         int    `bson:"zip"`
}

type cardDocument struct {
	ID          string          `bson:"_id"`
	Title       string          `bson:"title"`
	Subtitle    string          `bson:"subtitle"`
	Description string          `bson:"description"`
	Phone       string          `bson:"phone"`
	Email       string          `bson:"email"`
	Web         string          `bson:"web"`
	Image       *imageDocument  `bson:"image,omitempty"`
	Address     addressDocument `bson:"address"`
	Likes       []string        `bson:"likes"`
	UserID      string          `bson:"userId"`
	CreatedAt   time.Time       `bson:"createdAt"`
	UpdatedAt   time.Time       `bson:"updatedAt"`
}

func contentDocumentFromEntity(content entities.Content) cardDocument {
	doc := cardDocument{
		Title:       content.Title,
		Subtitle:    content.Subtitle,
		Description: content.Description,
		Phone:       content.Phone,
		Email:       content.Email,
		Web:         content.Web,
		Address: addressDocument{
			State:       content.Address.State,
			Country:     content.Address.Country,
			City:        content.Address.City,
			Street:      content.Address.Street,
			HouseNumber: content.Address.HouseNumber,
			Zip:         content.Address.Zip,
		},
	}
	if content.Image != nil {
		doc.Image = &imageDocument{URL: content.Image.URL, Alt: content.Image.Alt}
	}
	return doc
}

func cardDocumentFromEntity(card entities.Card) cardDocument {
	doc := contentDocumentFromEntity(card.Content)
	doc.ID = card.CardID
	doc.UserID = card.OwnerID
	doc.Likes = card.Likes
	if doc.Likes == nil {
		doc.Likes = []string{}
	}
	doc.CreatedAt = card.CreatedAt.UTC()
	doc.UpdatedAt = card.UpdatedAt.UTC()
	return doc
}

func (d cardDocument) toEntity() entities.Card {
	likes := d.Likes
	if likes == nil {
		likes = []string{}
	}
	card := entities.Card{
		CardID:  d.ID,
		OwnerID: d.UserID,
		Likes:   likes,
		Content: entities.Content{
			Title:       d.Title,
			Subtitle:    d.Subtitle,
			Description: d.Description,
			Phone:       d.Phone,
			Email:       d.Email,
			Web:         d.Web,
			Address: entities.Address{
				State:       d.Address.State,
				Country:     d.Address.Country,
				City:        d.Address.City,
				Street:      d.Address.Street,
				HouseNumber: d.Address.HouseNumber,
				Zip:         d.Address.Zip,
			},
		},
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if d.Image != nil {
		card.Content.Image = &entities.Image{URL: d.Image.URL, Alt: d.Image.Alt}
	}
	return card
}

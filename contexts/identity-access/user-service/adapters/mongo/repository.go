package mongoadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cardhub/contexts/identity-access/user-service/domain/entities"
	domainerrors "cardhub/contexts/identity-access/user-service/domain/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// Repository stores users as documents keyed by their UUID string.
type Repository struct {
	users  *mongo.Collection
	logger *slog.Logger
}

func NewRepository(db *mongo.Database, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		users:  db.Collection(usersCollection),
		logger: logger,
	}
}

// EnsureIndexes creates the unique email index backing ErrEmailTaken.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	return err
}

func (r *Repository) CreateUser(ctx context.Context, user entities.User) error {
	if _, err := r.users.InsertOne(ctx, userDocumentFromEntity(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: userID}})
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *Repository) ListUsers(ctx context.Context) ([]entities.User, error) {
	cursor, err := r.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]entities.User, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateProfile(
	ctx context.Context,
	userID string,
	update entities.ProfileUpdate,
	now time.Time,
) (entities.User, error) {
	set := bson.D{
		{Key: "name", Value: update.Name},
		{Key: "phone", Value: update.Phone},
		{Key: "updatedAt", Value: now.UTC()},
	}
	change := bson.D{{Key: "$unset", Value: bson.D{{Key: "address", Value: ""}}}}
	if update.Address != nil {
		set = append(set, bson.E{Key: "address", Value: addressDocumentFromEntity(update.Address)})
		change = nil
	}
	change = append(bson.D{{Key: "$set", Value: set}}, change...)
	return r.findOneAndUpdate(ctx, userID, change)
}

// ToggleBusiness uses a pipeline update so the negation is evaluated by the
// server against the stored value.
func (r *Repository) ToggleBusiness(ctx context.Context, userID string, now time.Time) (entities.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isBusiness", Value: bson.D{{Key: "$not", Value: bson.A{"$isBusiness"}}}},
			{Key: "updatedAt", Value: now.UTC()},
		}}},
	}
	return r.findOneAndUpdate(ctx, userID, pipeline)
}

func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: userID}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.D) (entities.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return doc.toEntity(), nil
}

func (r *Repository) findOneAndUpdate(ctx context.Context, userID string, update any) (entities.User, error) {
	var doc userDocument
	err := r.users.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: userID}},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return doc.toEntity(), nil
}

type addressDocument struct {
	State       string `bson:"state,omitempty"`
	Country     string `bson:"country"`
	City        string `bson:"city"`
	Street      string `bson:"street"`
	HouseNumber int    `bson:"houseNumber"`
	Zip         int    `bson:"zip,omitempty"`
}

type userDocument struct {
	ID           string           `bson:"_id"`
	Email        string           `bson:"email"`
	Name         string           `bson:"name,omitempty"`
	PasswordHash string           `bson:"passwordHash"`
	Phone        string           `bson:"phone,omitempty"`
	Address      *addressDocument `bson:"address,omitempty"`
	IsAdmin      bool             `bson:"isAdmin"`
	IsBusiness   bool             `bson:"isBusiness"`
	CreatedAt    time.Time        `bson:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt"`
}

func userDocumentFromEntity(user entities.User) userDocument {
	return userDocument{
		ID:           user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Phone:        user.Phone,
		Address:      addressDocumentFromEntity(user.Address),
		IsAdmin:      user.IsAdmin,
		IsBusiness:   user.IsBusiness,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func addressDocumentFromEntity(address *entities.Address) *addressDocument {
	if address == nil {
		return nil
	}
	return &addressDocument{
		State:       address.State,
		Country:     address.Country,
		City:        address.City,
		Street:      address.Street,
		HouseNumber: address.HouseNumber,
		Zip:         address.Zip,
	}
}

func (d userDocument) toEntity() entities.User {
	user := entities.User{
		UserID:       d.ID,
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		IsAdmin:      d.IsAdmin,
		IsBusiness:   d.IsBusiness,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.Address != nil {
		user.Address = &entities.Address{
			State:       d.Address.State,
			Country:     d.Address.Country,
			City:        d.Address.City,
			Street:      d.Address.Street,
			HouseNumber: d.Address.HouseNumber,
			Zip:         d.Address.Zip,
		}
	}
	return user
}

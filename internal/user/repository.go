package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lingomate/api/internal/database"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// CreateParams carries the fields needed to create a user record.
// Password is plaintext here; the repository hashes it before persisting.
type CreateParams struct {
	FullName   string
	Email      string
	Password   string
	ProfilePic string
}

// ProfileUpdate carries the onboarding-relevant fields. Empty optional
// fields are left untouched. The password is deliberately absent: profile
// writes never include it, so a stored hash is never re-hashed.
type ProfileUpdate struct {
	FullName         string
	Bio              string
	NativeLanguage   string
	LearningLanguage string
	Location         string
	ProfilePic       string
}

// Repository handles user data persistence
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(database.UsersCollection)}
}

// Create inserts a new user document. The plaintext password is hashed on
// this write path and never stored. Duplicate emails are rejected by the
// store's unique index, not an application-level existence check.
func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	passwordHash, err := HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	doc := &User{
		ID:         primitive.NewObjectID(),
		FullName:   params.FullName,
		Email:      params.Email,
		Password:   passwordHash,
		ProfilePic: params.ProfilePic,
		Friends:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return doc, nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// GetByID retrieves a user by its hex object ID
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var u User
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// UpdateProfile applies onboarding fields to an existing user, marks it
// onboarded and returns the updated document
func (r *Repository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{
		"nativeLanguage":   update.NativeLanguage,
		"learningLanguage": update.LearningLanguage,
		"isOnboarded":      true,
		"updatedAt":        time.Now().UTC(),
	}
	if update.FullName != "" {
		set["fullName"] = update.FullName
	}
	if update.Bio != "" {
		set["bio"] = update.Bio
	}
	if update.Location != "" {
		set["location"] = update.Location
	}
	if update.ProfilePic != "" {
		set["profilePic"] = update.ProfilePic
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	return &u, nil
}

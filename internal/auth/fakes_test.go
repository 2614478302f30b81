package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lingomate/api/internal/user"
)

// fakeUserRepo is an in-memory stand-in for the mongo repository. It honors
// the same contract: hashing on create, sentinel errors, unique emails.
// Setting err makes every operation fail with a non-sentinel error, the way
// a lost store connection would.
type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[string]*user.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, params user.CreateParams) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, exists := f.byEmail[params.Email]; exists {
		return nil, user.ErrDuplicateEmail
	}

	hash, err := user.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:         primitive.NewObjectID(),
		FullName:   params.FullName,
		Email:      params.Email,
		Password:   hash,
		ProfilePic: params.ProfilePic,
		Friends:    []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	f.byEmail[u.Email] = u
	f.byID[u.ID.Hex()] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id string, update user.ProfileUpdate) (*user.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}

	if update.FullName != "" {
		u.FullName = update.FullName
	}
	if update.Bio != "" {
		u.Bio = update.Bio
	}
	if update.Location != "" {
		u.Location = update.Location
	}
	if update.ProfilePic != "" {
		u.ProfilePic = update.ProfilePic
	}
	u.NativeLanguage = update.NativeLanguage
	u.LearningLanguage = update.LearningLanguage
	u.IsOnboarded = true
	u.UpdatedAt = time.Now().UTC()

	return u, nil
}

func (f *fakeUserRepo) remove(u *user.User) {
	delete(f.byEmail, u.Email)
	delete(f.byID, u.ID.Hex())
}

// fakePresence records presence upserts and can be told to fail
type fakePresence struct {
	err   error
	calls []presenceCall
}

type presenceCall struct {
	ID    string
	Name  string
	Image string
}

func (f *fakePresence) UpsertUser(_ context.Context, id, name, image string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, presenceCall{ID: id, Name: name, Image: image})
	return nil
}

package service

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"slices"

	"github.com/TEJ12356788/atmosphere/internal/auth"
	"github.com/TEJ12356788/atmosphere/internal/ids"
	"github.com/TEJ12356788/atmosphere/internal/models"
	"github.com/TEJ12356788/atmosphere/internal/store"
)

type SignupInput struct {
	Username  string   `json:"username" validate:"required,max=64"`
	FullName  string   `json:"full_name" validate:"required,max=128"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6,max=72"`
	Location  string   `json:"location"`
	Interests []string `json:"interests" validate:"dive,required"`
}

type BusinessSignupInput struct {
	SignupInput
	BusinessName string `json:"business_name" validate:"required,max=128"`
	Category     string `json:"category" validate:"required"`
	Address      string `json:"address"`
}

func (s *Service) SignupUser(ctx context.Context, in SignupInput) (models.User, error) {
	if err := validateInput(in); err != nil {
		return models.User{}, err
	}
	user, err := s.newUser(in, models.AccountGeneral)
	if err != nil {
		return models.User{}, err
	}

	unlock := s.lock(store.Users)
	err = s.insertUser(ctx, in.Username, user)
	unlock()
	if err != nil {
		return models.User{}, err
	}

	s.sendWelcome(user, false)
	return user, nil
}

// SignupBusiness creates a business account and its business profile. The
// user is saved before the business.
func (s *Service) SignupBusiness(ctx context.Context, in BusinessSignupInput) (models.User, models.Business, error) {
	if err := validateInput(in); err != nil {
		return models.User{}, models.Business{}, err
	}
	user, err := s.newUser(in.SignupInput, models.AccountBusiness)
	if err != nil {
		return models.User{}, models.Business{}, err
	}
	business := models.Business{
		BusinessID:   ids.GenerateID(ids.PrefixBusiness),
		OwnerID:      user.UserID,
		BusinessName: in.BusinessName,
		Category:     in.Category,
		Verified:     false,
		Locations:    []models.Place{{Address: in.Address}},
		CreatedAt:    s.now(),
	}

	defer s.lock(store.Users, store.Businesses)()

	if err := s.insertUser(ctx, in.Username, user); err != nil {
		return models.User{}, models.Business{}, err
	}

	var businesses models.Businesses
	if err := s.Store.Load(ctx, store.Businesses, &businesses); err != nil {
		return models.User{}, models.Business{}, err
	}
	businesses[business.BusinessID] = business
	if err := s.Store.Save(ctx, store.Businesses, businesses); err != nil {
		return models.User{}, models.Business{}, err
	}

	s.sendWelcome(user, true)
	return user, business, nil
}

func (s *Service) newUser(in SignupInput, accountType models.AccountType) (models.User, error) {
	if len(in.Password) > auth.MaxPasswordBytes {
		return models.User{}, fmt.Errorf("%w: password longer than %d bytes", ErrInvalidInput, auth.MaxPasswordBytes)
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}
	return models.User{
		UserID:       ids.GenerateID(ids.PrefixUser),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		AccountType:  accountType,
		Verified:     false,
		JoinedDate:   s.now(),
		Interests:    interests,
		Location:     models.Place{City: in.Location},
		ProfilePic:   randomProfilePic(),
	}, nil
}

// insertUser must be called with the users lock held.
func (s *Service) insertUser(ctx context.Context, username string, user models.User) error {
	var users models.Users
	if err := s.Store.Load(ctx, store.Users, &users); err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	users[username] = user
	return s.Store.Save(ctx, store.Users, users)
}

func (s *Service) sendWelcome(user models.User, business bool) {
	if s.Mailer == nil {
		return
	}
	if err := s.Mailer.SendWelcomeEmail(user.Email, user.FullName, business); err != nil {
		log.Printf("service: welcome email to %s: %v", user.UserID, err)
	}
}

func randomProfilePic() string {
	gender := "men"
	if rand.IntN(2) == 1 {
		gender = "women"
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, rand.IntN(100)+1)
}

// Login checks the credentials and returns the user. A welcome-back
// notification is added on success.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, error) {
	var users models.Users
	if err := s.load(ctx, store.Users, &users); err != nil {
		return models.User{}, err
	}
	user, ok := users[username]
	if !ok || !auth.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrInvalidCredentials
	}

	if err := s.AddNotification(ctx, user.UserID, NotifyLogin, "Welcome back to Atmosphere!", ""); err != nil {
		log.Printf("service: login notification for %s: %v", user.UserID, err)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, username string) (models.User, error) {
	var users models.Users
	if err := s.load(ctx, store.Users, &users); err != nil {
		return models.User{}, err
	}
	user, ok := users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	return user, nil
}

func (s *Service) BusinessByOwner(ctx context.Context, ownerID string) (models.Business, error) {
	var businesses models.Businesses
	if err := s.load(ctx, store.Businesses, &businesses); err != nil {
		return models.Business{}, err
	}
	return businessByOwner(businesses, ownerID)
}

func businessByOwner(businesses models.Businesses, ownerID string) (models.Business, error) {
	var owned []models.Business
	for _, b := range businesses {
		if b.OwnerID == ownerID {
			owned = append(owned, b)
		}
	}
	if len(owned) == 0 {
		return models.Business{}, fmt.Errorf("business for %s: %w", ownerID, ErrNotFound)
	}
	// oldest first when an owner somehow has several
	slices.SortFunc(owned, func(a, b models.Business) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.BusinessID, b.BusinessID))
	})
	return owned[0], nil
}

// Session returns the session for a user record.
func Session(username string, user models.User) models.Session {
	return models.Session{
		UserID:      user.UserID,
		Username:    username,
		AccountType: user.AccountType,
	}
}

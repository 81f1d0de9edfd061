package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	ierr "dearmind-backend/internal/errors"
	"dearmind-backend/internal/identity"
	"dearmind-backend/internal/model"
	diaryRepository "dearmind-backend/internal/repository/diary"
	userRepository "dearmind-backend/internal/repository/user"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const minPasswordLength = 6

type Service struct {
	provider  identity.Provider
	userRepo  userRepository.IRepository
	diaryRepo diaryRepository.IRepository
	now       func() time.Time
}

func New(provider identity.Provider, userRepo userRepository.IRepository, diaryRepo diaryRepository.IRepository) *Service {
	return &Service{
		provider:  provider,
		userRepo:  userRepo,
		diaryRepo: diaryRepo,
		now:       time.Now,
	}
}

type Profile struct {
	Uid   string  `json:"uid"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *Service) SignUp(ctx context.Context, in SignUpInput) (Profile, error) {
	if err := validateEmail(in.Email); err != nil {
		return Profile{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return Profile{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Profile{}, ierr.BadRequestf("name is required")
	}

	created, err := s.provider.CreateUser(ctx, in.Email, in.Password, name)
	if err != nil {
		return Profile{}, err
	}

	user := model.User{
		Uid:       created.UID,
		Email:     created.Email,
		Name:      &name,
		CreatedAt: s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return Profile{}, err
	}

	log.Info().Msgf("user signed up - uid %s", created.UID)
	return Profile{Uid: user.Uid, Email: user.Email, Name: user.Name}, nil
}

// Login verifies an ID token and records the login on the user document,
// creating the document on first sign-in.
func (s *Service) Login(ctx context.Context, idToken string) (Profile, error) {
	if strings.TrimSpace(idToken) == "" {
		return Profile{}, ierr.BadRequestf("idToken is required")
	}
	id, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Profile{}, err
	}

	var name *string
	if id.Name != "" {
		name = &id.Name
	}
	user, err := s.userRepo.Upsert(ctx, id.UID, id.Email, name, s.now())
	if err != nil {
		return Profile{}, err
	}
	return Profile{Uid: user.Uid, Email: user.Email, Name: user.Name}, nil
}

// GoogleLogin is Login for tokens minted by the Google provider.
func (s *Service) GoogleLogin(ctx context.Context, idToken string) (Profile, error) {
	return s.Login(ctx, idToken)
}

// TestLogin exchanges email and password for an ID token.
func (s *Service) TestLogin(ctx context.Context, email, password string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", ierr.BadRequestf("password is required")
	}
	return s.provider.SignInWithPassword(ctx, email, password)
}

func (s *Service) Me(id identity.Identity) Profile {
	p := Profile{Uid: id.UID, Email: id.Email}
	if id.Name != "" {
		p.Name = &id.Name
	}
	return p
}

func (s *Service) UserMe(ctx context.Context, uid string) (*model.User, error) {
	return s.userRepo.GetById(ctx, uid)
}

func (s *Service) UpdatePassword(ctx context.Context, uid, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	return s.provider.UpdatePassword(ctx, uid, password)
}

func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	return s.provider.SendPasswordReset(ctx, email)
}

// DeleteAccount removes the auth user, the user document with its
// subcollections, and the user's diary entries.
func (s *Service) DeleteAccount(ctx context.Context, uid string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.provider.DeleteUser(gctx, uid)
	})
	g.Go(func() error {
		return s.userRepo.Delete(gctx, uid)
	})
	g.Go(func() error {
		return s.diaryRepo.DeleteByUser(gctx, uid)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("delete account: %w, uid: %s", err, uid)
	}

	log.Info().Msgf("account deleted - uid %s", uid)
	return nil
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ierr.BadRequestf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ierr.BadRequestf("email is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ierr.BadRequestf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

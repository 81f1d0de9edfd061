package identity

import (
	"context"
	"fmt"

	ierr "dearmind-backend/internal/errors"

	"firebase.google.com/go/v4/auth"
)

// Identity is the decoded caller of a request.
type Identity struct {
	UID   string
	Email string
	Name  string
	Token string
}

type Provider interface {
	VerifyIDToken(ctx context.Context, idToken string) (Identity, error)
	CreateUser(ctx context.Context, email, password, name string) (Identity, error)
	UpdatePassword(ctx context.Context, uid, password string) error
	DeleteUser(ctx context.Context, uid string) error
	SignInWithPassword(ctx context.Context, email, password string) (string, error)
	SendPasswordReset(ctx context.Context, email string) error
}

type FirebaseProvider struct {
	auth    *auth.Client
	toolkit Toolkit
}

var _ Provider = FirebaseProvider{}

func New(authClient *auth.Client, toolkit Toolkit) FirebaseProvider {
	return FirebaseProvider{
		auth:    authClient,
		toolkit: toolkit,
	}
}

func (p FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (Identity, error) {
	token, err := p.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Identity{}, ierr.Unauthorizedf("invalid or expired token")
	}
	return Identity{
		UID:   token.UID,
		Email: claim(token.Claims, "email"),
		Name:  claim(token.Claims, "name"),
		Token: idToken,
	}, nil
}

func (p FirebaseProvider) CreateUser(ctx context.Context, email, password, name string) (Identity, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password).DisplayName(name)
	record, err := p.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return Identity{}, ierr.BadRequestf("email already in use")
		}
		return Identity{}, fmt.Errorf("create auth user: %w, email: %s", err, email)
	}
	return Identity{UID: record.UID, Email: record.Email, Name: record.DisplayName}, nil
}

func (p FirebaseProvider) UpdatePassword(ctx context.Context, uid, password string) error {
	if _, err := p.auth.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password)); err != nil {
		if auth.IsUserNotFound(err) {
			return ierr.NotFoundf("user not found")
		}
		return fmt.Errorf("update password: %w, uid: %s", err, uid)
	}
	return nil
}

func (p FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.auth.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return nil
		}
		return fmt.Errorf("delete auth user: %w, uid: %s", err, uid)
	}
	return nil
}

func (p FirebaseProvider) SignInWithPassword(ctx context.Context, email, password string) (string, error) {
	return p.toolkit.SignInWithPassword(ctx, email, password)
}

func (p FirebaseProvider) SendPasswordReset(ctx context.Context, email string) error {
	return p.toolkit.SendPasswordReset(ctx, email)
}

func claim(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

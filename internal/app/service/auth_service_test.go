package service

import (
	"context"
	"techfix/internal/common"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	resp, err := svc.Signup(context.Background(), SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.HashedPassword)

	login, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	// Email also works as the login field.
	login, err = svc.Login(context.Background(), LoginRequest{LoginField: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", login.User.Username)
}

func TestSignupValidatesRequiredFields(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), SignupRequest{Username: "alice"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSignupDuplicateUsernameRejected(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	_, err := svc.Signup(context.Background(), SignupRequest{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupRequest{Username: "alice", Email: "other@example.com", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestSignupDuplicateEmailLeavesFirstUserUnaffected(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	first, err := svc.Signup(context.Background(), SignupRequest{Username: "alice", Email: "shared@example.com", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), SignupRequest{Username: "bob", Email: "shared@example.com", Password: "pw2"})
	assert.ErrorIs(t, err, common.ErrConflict)

	stored, err := userRepo.FindByID(context.Background(), first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "shared@example.com", stored.Email)

	// The first user can still log in with their original password.
	_, err = svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "pw1"})
	assert.NoError(t, err)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo)

	_, err := svc.Signup(context.Background(), SignupRequest{Username: "alice", Email: "alice@example.com", Password: "right"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{LoginField: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Nil(t, resp)
}

func TestLoginUnknownUserRejected(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), LoginRequest{LoginField: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sourcexpress/sourcexpress-backend/internal/data/repos"
	types "github.com/sourcexpress/sourcexpress-backend/internal/domain"
	"github.com/sourcexpress/sourcexpress-backend/internal/pkg/ctxutil"
	apperrors "github.com/sourcexpress/sourcexpress-backend/internal/pkg/errors"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := testDB(t)
	log := testLogger(t)
	return NewAuthService(
		gdb,
		log,
		repos.NewUserRepo(gdb, log),
		repos.NewUserTokenRepo(gdb, log),
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func registerUser(t *testing.T, svc AuthService, email string) *types.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &types.User{
		Email:     email,
		FirstName: "Ana",
		LastName:  "Souza",
	}, "senha-segura")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := registerUser(t, svc, "Ana@Example.com")
	if user.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != types.RoleBuyer {
		t.Fatalf("expected default buyer role, got %q", user.Role)
	}
	if user.Password == "senha-segura" {
		t.Fatalf("password stored in plaintext")
	}

	pair, logged, err := svc.Login(ctx, "ana@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || logged.ID != user.ID {
		t.Fatalf("unexpected login result")
	}

	if _, _, err := svc.Login(ctx, "ana@example.com", "errada"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on bad password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "ninguem@example.com", "senha-segura"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on unknown email, got %v", err)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &types.User{Email: "sem-arroba"}, "senha-segura"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected invalid email, got %v", err)
	}
	if _, err := svc.Register(ctx, &types.User{Email: "ok@example.com"}, "curta"); !errors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected short password rejection, got %v", err)
	}

	registerUser(t, svc, "dup@example.com")
	if _, err := svc.Register(ctx, &types.User{Email: "dup@example.com"}, "senha-segura"); !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAuthRefreshRotation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	registerUser(t, svc, "rot@example.com")
	pair, _, err := svc.Login(ctx, "rot@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}

	// The old token was consumed by the rotation.
	if _, err := svc.Refresh(ctx, pair.RefreshToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized on reused token, got %v", err)
	}

	if err := svc.Logout(ctx, next.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, next.RefreshToken); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestSetContextFromToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user := registerUser(t, svc, "ctx@example.com")
	pair, _, err := svc.Login(ctx, "ctx@example.com", "senha-segura")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	authed, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	data := ctxutil.GetRequestData(authed)
	if data == nil || data.UserID != user.ID {
		t.Fatalf("request data not attached: %+v", data)
	}

	me, err := svc.Me(authed)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if me.Email != "ctx@example.com" {
		t.Fatalf("Me returned wrong user: %s", me.Email)
	}
	if _, err := svc.Me(ctx); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized Me without request data, got %v", err)
	}

	if _, err := svc.SetContextFromToken(ctx, "nao-e-um-jwt"); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for garbage token, got %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, ""); !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for empty token, got %v", err)
	}
}

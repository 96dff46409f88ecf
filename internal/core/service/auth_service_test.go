package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

type authFixture struct {
	svc       *AuthService
	tokens    *TokenService
	students  *stubStudentRepo
	companies *stubCompanyRepo
	tpos      *stubTPORepo
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		tokens:    NewTokenService("secret", time.Hour),
		students:  newStubStudentRepo(),
		companies: newStubCompanyRepo(),
		tpos:      newStubTPORepo(),
	}
	f.svc = NewAuthService(f.students, f.companies, f.tpos, f.tokens, zerolog.Nop())
	return f
}

func register(t *testing.T, f *authFixture, email string, role domain.Role) domain.Principal {
	t.Helper()
	p, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name: "Alice", Email: email, Password: "pass123", Role: role,
	})
	if err != nil {
		t.Fatalf("Register(%s, %s): %v", email, role, err)
	}
	return p
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()

	p := register(t, f, "  Alice@Example.com ", domain.RoleStudent)
	student, ok := p.(*domain.Student)
	if !ok {
		t.Fatalf("expected *domain.Student, got %T", p)
	}
	if student.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", student.Email)
	}
	if student.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if student.IsVerified {
		t.Fatalf("new students must start unverified")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{Email: "a@x.io", Password: "p", Role: domain.RoleStudent})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing name, got %v", err)
	}

	_, err = f.svc.Register(context.Background(), ports.RegisterInput{Name: "A", Email: "a@x.io", Password: "p"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing role, got %v", err)
	}
}

func TestAuthService_Register_DuplicateWithinRole(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "bob@example.com", domain.RoleRecruiter)

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		Name: "Bob", Email: "bob@example.com", Password: "x", Role: domain.RoleRecruiter,
	})
	if !errors.Is(err, domain.ErrEmailTaken) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_SameEmailAcrossRoles(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "shared@example.com", domain.RoleStudent)
	register(t, f, "shared@example.com", domain.RoleRecruiter)
	register(t, f, "shared@example.com", domain.RoleTPO)
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	p := register(t, f, "carol@example.com", domain.RoleTPO)

	res, err := f.svc.Login(context.Background(), ports.LoginInput{
		Email: "carol@example.com", Password: "pass123", Role: domain.RoleTPO,
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}

	id, err := f.tokens.Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	want := domain.Identity{SubjectID: p.Base().ID, Role: domain.RoleTPO, Email: "carol@example.com"}
	if id != want {
		t.Fatalf("expected identity %+v, got %+v", want, id)
	}
	if res.User.Base().ID != p.Base().ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
}

func TestAuthService_Login_RoleMismatchIsGeneric(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "dave@example.com", domain.RoleStudent)

	_, err := f.svc.Login(context.Background(), ports.LoginInput{
		Email: "dave@example.com", Password: "pass123", Role: domain.RoleRecruiter,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	f := newAuthFixture()
	register(t, f, "erin@example.com", domain.RoleStudent)

	_, err := f.svc.Login(context.Background(), ports.LoginInput{
		Email: "erin@example.com", Password: "wrong", Role: domain.RoleStudent,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Login(context.Background(), ports.LoginInput{
		Email: "ghost@example.com", Password: "pass", Role: domain.RoleStudent,
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	f := newAuthFixture()
	boom := errors.New("connection refused")
	f.students.err = boom

	_, err := f.svc.Login(context.Background(), ports.LoginInput{
		Email: "a@x.io", Password: "pass", Role: domain.RoleStudent,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	f := newAuthFixture()
	_, err := f.svc.Login(context.Background(), ports.LoginInput{Email: "a@x.io", Role: domain.RoleStudent})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

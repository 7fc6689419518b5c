package auth

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/auth"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuthDB *database.DB

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

func authTestInit(t *testing.T) {
	t.Helper()
	if testAuthDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testAuthDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateAuthTables(t *testing.T, ctx context.Context) {
	tables := []string{"refresh_tokens", "attendance_logs", "employee_rollcalls", "employees", "register_logs", "registers", "users"}
	for _, table := range tables {
		_, err := testAuthDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestAuthService() auth.AuthService {
	userRepo := postgresql.NewUserRepository(testAuthDB)
	employeeRepo := postgresql.NewEmployeeRepository(testAuthDB)
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	jwtRepo := postgresql.NewJWTRepository(testAuthDB)
	return NewAuthService(testAuthDB, userRepo, employeeRepo, jwtService, jwtRepo)
}

func createTestAdmin(t *testing.T, ctx context.Context, email string) string {
	var userID string
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	err := testAuthDB.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ('Test Admin', $1, $2, 'admin')
		RETURNING id
	`, email, string(hash)).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func createLinkedManager(t *testing.T, ctx context.Context, ownerID, loginKey, pin string) {
	var registerID string
	err := testAuthDB.QueryRow(ctx, `
		INSERT INTO registers (owner_id, name, avatar_seed)
		VALUES ($1, 'Test Store', 'seed')
		RETURNING id
	`, ownerID).Scan(&registerID)
	require.NoError(t, err)

	var managerUserID string
	err = testAuthDB.QueryRow(ctx, `
		INSERT INTO users (name, email, role)
		VALUES ('Test Manager', $1, 'manager')
		RETURNING id
	`, loginKey+"@rollcall.local").Scan(&managerUserID)
	require.NoError(t, err)

	pinHash, _ := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	_, err = testAuthDB.Exec(ctx, `
		INSERT INTO employees (register_id, name, shift_start_minutes, shift_end_minutes,
			allowed_break_minutes, rate_per_day, is_manager, user_id, pin_hash,
			login_key, login_status, created_by)
		VALUES ($1, 'Test Manager', 540, 1020, 60, 800, TRUE, $2, $3, $4, 'linked', $5)
	`, registerID, managerUserID, string(pinHash), loginKey, ownerID)
	require.NoError(t, err)
}

func TestAuthService_Signup_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	email := fmt.Sprintf("signup-%d@example.com", time.Now().UnixNano())
	req := auth.SignupRequest{Name: "Owner", Email: email, Password: "password123"}
	session := auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

	response, err := svc.Signup(ctx, req, session)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()
	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	createTestAdmin(t, ctx, email)

	req := auth.SignupRequest{Name: "Owner", Email: email, Password: "password123"}
	_, err := svc.Signup(ctx, req, auth.SessionTrackingRequest{})
	assert.Error(t, err)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	email := fmt.Sprintf("login-%d@example.com", time.Now().UnixNano())
	createTestAdmin(t, ctx, email)
	svc := newTestAuthService()

	response, err := svc.Login(ctx, auth.LoginRequest{Email: email, Password: "password123"}, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	email := fmt.Sprintf("badpass-%d@example.com", time.Now().UnixNano())
	createTestAdmin(t, ctx, email)
	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: email, Password: "wrong-password"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginManager_Success(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	ownerID := createTestAdmin(t, ctx, fmt.Sprintf("owner-%d@example.com", time.Now().UnixNano()))
	createLinkedManager(t, ctx, ownerID, "priya.sharma", "4321")
	svc := newTestAuthService()

	// The typed name normalizes to the stored login key.
	req := auth.ManagerLoginRequest{Name: "  Priya   SHARMA ", PIN: "4321"}
	response, err := svc.LoginManager(ctx, req, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
}

func TestAuthService_LoginManager_WrongPIN(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	ownerID := createTestAdmin(t, ctx, fmt.Sprintf("owner-%d@example.com", time.Now().UnixNano()))
	createLinkedManager(t, ctx, ownerID, "priya.sharma", "4321")
	svc := newTestAuthService()

	_, err := svc.LoginManager(ctx, auth.ManagerLoginRequest{Name: "Priya Sharma", PIN: "0000"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidPIN)
}

func TestAuthService_LoginManager_UnknownName(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	svc := newTestAuthService()

	_, err := svc.LoginManager(ctx, auth.ManagerLoginRequest{Name: "Ghost Manager", PIN: "1234"}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrAccountNotFound)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	email := fmt.Sprintf("refresh-%d@example.com", time.Now().UnixNano())
	createTestAdmin(t, ctx, email)
	svc := newTestAuthService()

	first, err := svc.Login(ctx, auth.LoginRequest{Email: email, Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken, auth.SessionTrackingRequest{})
	assert.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// The presented token was revoked during rotation.
	_, err = svc.Refresh(ctx, first.RefreshToken, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)
	truncateAuthTables(t, ctx)

	email := fmt.Sprintf("wrongtype-%d@example.com", time.Now().UnixNano())
	createTestAdmin(t, ctx, email)
	svc := newTestAuthService()

	tokens, err := svc.Login(ctx, auth.LoginRequest{Email: email, Password: "password123"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, tokens.AccessToken, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_EmptyTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	authTestInit(t)

	svc := newTestAuthService()
	assert.NoError(t, svc.Logout(ctx, ""))
}

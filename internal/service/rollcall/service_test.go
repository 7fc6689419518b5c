package rollcall

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/chandra447/dk-stores/internal/domain/rollcall"
	"github.com/chandra447/dk-stores/internal/domain/user"
	"github.com/chandra447/dk-stores/internal/pkg/database"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/chandra447/dk-stores/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRollcallDB *database.DB

func rollcallTestInit(t *testing.T) {
	t.Helper()
	if testRollcallDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testRollcallDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
}

func truncateRollcallTables(t *testing.T, ctx context.Context) {
	tables := []string{"attendance_logs", "employee_rollcalls", "employees", "register_logs", "registers", "users"}
	for _, table := range tables {
		_, err := testRollcallDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newTestRollcallService() rollcall.RollcallService {
	rollcallRepo := postgresql.NewRollcallRepository(testRollcallDB)
	breakRepo := postgresql.NewBreakLogRepository(testRollcallDB)
	registerRepo := postgresql.NewRegisterRepository(testRollcallDB)
	logRepo := postgresql.NewRegisterLogRepository(testRollcallDB)
	employeeRepo := postgresql.NewEmployeeRepository(testRollcallDB)
	return NewRollcallService(testRollcallDB, rollcallRepo, breakRepo, registerRepo, logRepo, employeeRepo)
}

// rollcallFixture is one owner with an opened register and a single employee.
type rollcallFixture struct {
	ownerID       string
	registerID    string
	registerLogID string
	employeeID    string
}

func seedRollcallFixture(t *testing.T, ctx context.Context) rollcallFixture {
	var f rollcallFixture

	email := fmt.Sprintf("owner-%d@example.com", time.Now().UnixNano())
	err := testRollcallDB.QueryRow(ctx, `
		INSERT INTO users (name, email, role) VALUES ('Owner', $1, 'admin') RETURNING id
	`, email).Scan(&f.ownerID)
	require.NoError(t, err)

	err = testRollcallDB.QueryRow(ctx, `
		INSERT INTO registers (owner_id, name, avatar_seed) VALUES ($1, 'Store', 'seed') RETURNING id
	`, f.ownerID).Scan(&f.registerID)
	require.NoError(t, err)

	err = testRollcallDB.QueryRow(ctx, `
		INSERT INTO register_logs (register_id, opened_at, created_by) VALUES ($1, NOW(), $2) RETURNING id
	`, f.registerID, f.ownerID).Scan(&f.registerLogID)
	require.NoError(t, err)

	err = testRollcallDB.QueryRow(ctx, `
		INSERT INTO employees (register_id, name, shift_start_minutes, shift_end_minutes,
			allowed_break_minutes, rate_per_day, created_by)
		VALUES ($1, 'Ravi Kumar', 540, 1020, 60, 800, $2) RETURNING id
	`, f.registerID, f.ownerID).Scan(&f.employeeID)
	require.NoError(t, err)

	return f
}

// authedCtx builds a context carrying a verified access token, the same shape
// the router's verifier middleware produces.
func authedCtx(t *testing.T, ctx context.Context, userID string) context.Context {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	tokenStr, _, err := jwtService.GenerateAccessToken(userID, "owner@example.com", user.RoleAdmin, nil, nil)
	require.NoError(t, err)
	token, err := jwtauth.VerifyToken(jwtService.JWTAuth(), tokenStr)
	require.NoError(t, err)
	return jwtauth.NewContext(ctx, token, nil)
}

func TestRollcallService_MarkPresent_CreatesRollcall(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	resp, err := svc.MarkPresent(ctx, &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotNil(t, resp.PresentAtMs)
	assert.Nil(t, resp.AbsentAtMs)
}

func TestRollcallService_MarkPresent_Idempotent(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	req := &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID}
	first, err := svc.MarkPresent(ctx, req)
	require.NoError(t, err)

	second, err := svc.MarkPresent(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.PresentAtMs, second.PresentAtMs)
}

func TestRollcallService_MarkPresent_ReentryRestampsArrival(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	req := &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID}
	marked, err := svc.MarkPresent(ctx, req)
	require.NoError(t, err)

	// Backdate the morning arrival so a stale value is distinguishable.
	_, err = testRollcallDB.Exec(ctx, `
		UPDATE employee_rollcalls SET present_at = present_at - INTERVAL '6 hours' WHERE id = $1
	`, marked.ID)
	require.NoError(t, err)

	_, err = svc.MarkAbsent(ctx, req)
	require.NoError(t, err)

	reentered, err := svc.MarkPresent(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, marked.ID, reentered.ID)
	assert.Nil(t, reentered.AbsentAtMs)
	require.NotNil(t, reentered.PresentAtMs)
	assert.GreaterOrEqual(t, *reentered.PresentAtMs, *marked.PresentAtMs)
}

func TestRollcallService_MarkAbsent_ClosesOpenBreak(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	req := &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID}
	marked, err := svc.MarkPresent(ctx, req)
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, &rollcall.StartBreakRequest{RollcallID: marked.ID})
	require.NoError(t, err)

	_, err = svc.MarkAbsent(ctx, req)
	assert.NoError(t, err)

	status, err := svc.Status(ctx, f.employeeID, f.registerLogID)
	assert.NoError(t, err)
	assert.Equal(t, string(rollcall.StatusAbsent), status.Status)
	assert.Nil(t, status.CurrentBreakID)
}

func TestRollcallService_ReturnFromAbsence_RecordsSpan(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	req := &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID}
	_, err := svc.MarkPresent(ctx, req)
	require.NoError(t, err)
	_, err = svc.MarkAbsent(ctx, req)
	require.NoError(t, err)

	_, err = svc.ReturnFromAbsence(ctx, req)
	assert.NoError(t, err)

	status, err := svc.Status(ctx, f.employeeID, f.registerLogID)
	assert.NoError(t, err)
	assert.Equal(t, string(rollcall.StatusPresent), status.Status)
	// Time away survives as a closed break.
	assert.NotNil(t, status.BreakDurationMs)
}

func TestRollcallService_ReturnFromAbsence_NotAbsent(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	req := &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID}
	_, err := svc.MarkPresent(ctx, req)
	require.NoError(t, err)

	_, err = svc.ReturnFromAbsence(ctx, req)
	assert.ErrorIs(t, err, rollcall.ErrNotAbsent)
}

func TestRollcallService_StartBreak_RejectsSecondOpen(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	marked, err := svc.MarkPresent(ctx, &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID})
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, &rollcall.StartBreakRequest{RollcallID: marked.ID})
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx, &rollcall.StartBreakRequest{RollcallID: marked.ID})
	assert.ErrorIs(t, err, rollcall.ErrBreakOpen)
}

func TestRollcallService_EndBreak(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	marked, err := svc.MarkPresent(ctx, &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID})
	require.NoError(t, err)
	started, err := svc.StartBreak(ctx, &rollcall.StartBreakRequest{RollcallID: marked.ID})
	require.NoError(t, err)

	ended, err := svc.EndBreak(ctx, started.ID)
	assert.NoError(t, err)
	assert.False(t, ended.IsActive)

	// Ending an already closed break is a conflict.
	_, err = svc.EndBreak(ctx, started.ID)
	assert.ErrorIs(t, err, rollcall.ErrBreakClosed)

	// A fresh break can now start.
	_, err = svc.StartBreak(ctx, &rollcall.StartBreakRequest{RollcallID: marked.ID})
	assert.NoError(t, err)
}

func TestRollcallService_SetHalfDay(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	marked, err := svc.MarkPresent(ctx, &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID})
	require.NoError(t, err)

	resp, err := svc.SetHalfDay(ctx, marked.ID, true)
	assert.NoError(t, err)
	assert.True(t, resp.HalfDay)

	resp, err = svc.SetHalfDay(ctx, marked.ID, false)
	assert.NoError(t, err)
	assert.False(t, resp.HalfDay)
}

func TestRollcallService_Status_NotMarked(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()
	ctx = authedCtx(t, ctx, f.ownerID)

	status, err := svc.Status(ctx, f.employeeID, f.registerLogID)
	assert.NoError(t, err)
	assert.Equal(t, string(rollcall.StatusNotMarked), status.Status)
	assert.Nil(t, status.RollcallID)
}

func TestRollcallService_AccessDenied(t *testing.T) {
	ctx := context.Background()
	rollcallTestInit(t)
	truncateRollcallTables(t, ctx)

	f := seedRollcallFixture(t, ctx)
	svc := newTestRollcallService()

	// A different admin with no claim on the register.
	var strangerID string
	err := testRollcallDB.QueryRow(ctx, `
		INSERT INTO users (name, email, role) VALUES ('Stranger', $1, 'admin') RETURNING id
	`, fmt.Sprintf("stranger-%d@example.com", time.Now().UnixNano())).Scan(&strangerID)
	require.NoError(t, err)
	ctx = authedCtx(t, ctx, strangerID)

	_, err = svc.MarkPresent(ctx, &rollcall.MarkRequest{EmployeeID: f.employeeID, RegisterLogID: f.registerLogID})
	assert.Error(t, err)
}

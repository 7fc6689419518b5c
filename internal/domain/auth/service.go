package auth

import "context"

type AuthService interface {
	// Signup registers the first credential pair for a shop owner and signs
	// them in. Never called for managers, whose accounts are provisioned by
	// the roster.
	Signup(ctx context.Context, req SignupRequest, session SessionTrackingRequest) (TokenResponse, error)

	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// LoginManager resolves the manager by deterministic login key and
	// verifies the PIN.
	LoginManager(ctx context.Context, req ManagerLoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle signs in an existing admin by verified Google email.
	LoginWithGoogle(ctx context.Context, email string, session SessionTrackingRequest) (TokenResponse, error)

	Refresh(ctx context.Context, refreshToken string, session SessionTrackingRequest) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	CurrentUser(ctx context.Context) (ProfileResponse, error)
	CreateAdmin(ctx context.Context, req CreateAdminRequest) (ProfileResponse, error)
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/notelock/notelock/internal/logger"
	"github.com/notelock/notelock/internal/service"
	"github.com/notelock/notelock/internal/utils"
	"github.com/notelock/notelock/models"
)

// ─────────────────────────────────────────────
// Service mocks
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.User, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
	changePasswordFn func(ctx context.Context, userID int64, req models.ChangePasswordRequest) error
	deleteAccountFn  func(ctx context.Context, userID int64, sessionID string, req models.DeleteAccountRequest) error
	logoutFn         func(ctx context.Context, sessionID string) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID int64, req models.ChangePasswordRequest) error {
	return m.changePasswordFn(ctx, userID, req)
}

func (m *mockAuthService) DeleteAccount(ctx context.Context, userID int64, sessionID string, req models.DeleteAccountRequest) error {
	return m.deleteAccountFn(ctx, userID, sessionID, req)
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.logoutFn(ctx, sessionID)
}

// mockPinService implements service.PinService for unit tests.
type mockPinService struct {
	setPinFn    func(ctx context.Context, userID int64, rawPin string) error
	resetPinFn  func(ctx context.Context, userID int64, currentRawPin, newRawPin string) error
	verifyPinFn func(ctx context.Context, userID int64, sessionID string, expiresAt time.Time, rawPin string) error
}

func (m *mockPinService) SetPin(ctx context.Context, userID int64, rawPin string) error {
	return m.setPinFn(ctx, userID, rawPin)
}

func (m *mockPinService) ResetPin(ctx context.Context, userID int64, currentRawPin, newRawPin string) error {
	return m.resetPinFn(ctx, userID, currentRawPin, newRawPin)
}

func (m *mockPinService) VerifyPin(ctx context.Context, userID int64, sessionID string, expiresAt time.Time, rawPin string) error {
	return m.verifyPinFn(ctx, userID, sessionID, expiresAt, rawPin)
}

// mockNoteService implements service.NoteService for unit tests.
type mockNoteService struct {
	listFn        func(ctx context.Context, params service.ListParams) (models.NoteList, error)
	createFn      func(ctx context.Context, userID int64, req models.NoteRequest) (models.Note, error)
	updateFn      func(ctx context.Context, userID, noteID int64, req models.NoteRequest) (models.Note, error)
	deleteFn      func(ctx context.Context, userID, noteID int64) error
	addImagesFn   func(ctx context.Context, userID, noteID int64, uploads []service.ImageUpload) ([]models.NoteImage, error)
	deleteImageFn func(ctx context.Context, userID int64, imageID string) error
}

func (m *mockNoteService) List(ctx context.Context, params service.ListParams) (models.NoteList, error) {
	return m.listFn(ctx, params)
}

func (m *mockNoteService) Create(ctx context.Context, userID int64, req models.NoteRequest) (models.Note, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockNoteService) Update(ctx context.Context, userID, noteID int64, req models.NoteRequest) (models.Note, error) {
	return m.updateFn(ctx, userID, noteID, req)
}

func (m *mockNoteService) Delete(ctx context.Context, userID, noteID int64) error {
	return m.deleteFn(ctx, userID, noteID)
}

func (m *mockNoteService) AddImages(ctx context.Context, userID, noteID int64, uploads []service.ImageUpload) ([]models.NoteImage, error) {
	return m.addImagesFn(ctx, userID, noteID, uploads)
}

func (m *mockNoteService) DeleteImage(ctx context.Context, userID int64, imageID string) error {
	return m.deleteImageFn(ctx, userID, imageID)
}

// mockProfileService implements service.ProfileService for unit tests.
type mockProfileService struct {
	getProfileFn    func(ctx context.Context, userID int64) (models.ProfileResponse, error)
	updateProfileFn func(ctx context.Context, userID int64, req models.UpdateProfileRequest, picture *service.ImageUpload) (models.ProfileResponse, error)
}

func (m *mockProfileService) GetProfile(ctx context.Context, userID int64) (models.ProfileResponse, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockProfileService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest, picture *service.ImageUpload) (models.ProfileResponse, error) {
	return m.updateProfileFn(ctx, userID, req, picture)
}

// mockAppInfoService implements service.AppInfoService for unit tests.
type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given mocks. Nil mocks stay nil;
// a test touching an endpoint it did not stub will panic loudly.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &mockAppInfoService{version: "test"}
	}
	return NewHandler(svcs, logger.Nop())
}

// authedRequest returns req with the context values the auth middleware
// would have stored for a logged-in user.
func authedRequest(req *http.Request, userID int64, sessionID string, expiresAt time.Time) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	ctx = context.WithValue(ctx, utils.SessionIDCtxKey, sessionID)
	ctx = context.WithValue(ctx, utils.SessionExpiryCtxKey, expiresAt)
	return req.WithContext(ctx)
}

// doRequest is a small convenience wrapper running one handler func.
func doRequest(handlerFn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

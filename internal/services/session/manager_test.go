package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/jcruden/live-leaderboard/internal/dependencies/mocks"
	"github.com/jcruden/live-leaderboard/internal/model"
)

type ManagerSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC))
	manager, err := NewManager("test-secret", s.clock, false)
	s.Require().NoError(err)
	s.manager = manager
}

func (s *ManagerSuite) TestNewManagerRequiresSecret() {
	_, err := NewManager("", s.clock, false)
	s.Error(err)
}

func (s *ManagerSuite) TestIssueAndVerifyRoundTrip() {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleDictator} {
		token, err := s.manager.Issue(role)
		s.Require().NoError(err)
		s.NotEmpty(token)

		got, err := s.manager.Verify(token)
		s.Require().NoError(err)
		s.Equal(role, got)
	}
}

func (s *ManagerSuite) TestVerifyFailsAfterExpiry() {
	token, err := s.manager.Issue(model.RoleAdmin)
	s.Require().NoError(err)

	s.clock.Advance(12*time.Hour - time.Minute)
	_, err = s.manager.Verify(token)
	s.NoError(err)

	s.clock.Advance(2 * time.Minute)
	_, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrNoSession)
}

func (s *ManagerSuite) TestVerifyFailsWithGarbageToken() {
	_, err := s.manager.Verify("not-a-jwt")
	s.ErrorIs(err, ErrNoSession)

	_, err = s.manager.Verify("")
	s.ErrorIs(err, ErrNoSession)
}

func (s *ManagerSuite) TestVerifyFailsWithWrongSecret() {
	other, err := NewManager("different-secret", s.clock, false)
	s.Require().NoError(err)

	token, err := other.Issue(model.RoleDictator)
	s.Require().NoError(err)

	_, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrNoSession)
}

func (s *ManagerSuite) TestVerifyRejectsUnknownRole() {
	token, err := s.manager.Issue(model.Role("emperor"))
	s.Require().NoError(err)

	_, err = s.manager.Verify(token)
	s.ErrorIs(err, ErrNoSession)
}

func (s *ManagerSuite) TestSetCookieAttributes() {
	token, err := s.manager.Issue(model.RoleAdmin)
	s.Require().NoError(err)

	rr := httptest.NewRecorder()
	s.manager.SetCookie(rr, token)

	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)
	c := cookies[0]
	s.Equal(CookieName, c.Name)
	s.Equal(token, c.Value)
	s.True(c.HttpOnly)
	s.Equal(http.SameSiteLaxMode, c.SameSite)
	s.Equal(int(12*time.Hour/time.Second), c.MaxAge)
	s.False(c.Secure)
}

func (s *ManagerSuite) TestClearCookieExpiresImmediately() {
	rr := httptest.NewRecorder()
	s.manager.ClearCookie(rr)

	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)
	c := cookies[0]
	s.Equal(CookieName, c.Name)
	s.Empty(c.Value)
	s.Negative(c.MaxAge)
}

func (s *ManagerSuite) TestSecureCookiesFlag() {
	manager, err := NewManager("test-secret", s.clock, true)
	s.Require().NoError(err)

	rr := httptest.NewRecorder()
	manager.SetCookie(rr, "token")

	cookies := rr.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.True(cookies[0].Secure)
}

package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"budget_tracker/internal/domain"
	"budget_tracker/internal/store/memory"
	"budget_tracker/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthTestSuite struct {
	suite.Suite
	store  *memory.Store
	tokens *utils.TokenService
	svc    *Service
	ctx    context.Context
}

func (suite *AuthTestSuite) SetupTest() {
	suite.store = memory.New()
	suite.tokens = utils.NewTokenService("test-secret", time.Hour)
	suite.svc = NewService(suite.store, suite.tokens).WithCost(bcrypt.MinCost)
	suite.ctx = context.Background()
}

func (suite *AuthTestSuite) TestSignupThenLogin() {
	signed, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", "pa55word")
	require.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), signed.UserID)
	assert.Equal(suite.T(), "alice", signed.Username)

	logged, err := suite.svc.Login(suite.ctx, "alice", "pa55word")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), signed.UserID, logged.UserID)

	claims, err := suite.tokens.Verify(logged.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), signed.UserID, claims.UserID)
	assert.Equal(suite.T(), "alice", claims.Username)
}

func (suite *AuthTestSuite) TestPasswordIsHashed() {
	_, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", "pa55word")
	require.NoError(suite.T(), err)

	u, err := suite.store.UserByUsername(suite.ctx, "alice")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "pa55word", u.PasswordHash)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pa55word")))
}

func (suite *AuthTestSuite) TestSignupMissingFields() {
	cases := [][3]string{
		{"", "a@example.com", "pw"},
		{"alice", "", "pw"},
		{"alice", "a@example.com", ""},
		{"   ", "a@example.com", "pw"},
	}
	for _, c := range cases {
		_, err := suite.svc.Signup(suite.ctx, c[0], c[1], c[2])
		assert.ErrorIs(suite.T(), err, domain.ErrValidation, "fields %q", c)
	}
}

func (suite *AuthTestSuite) TestSignupConflict() {
	_, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", "pw")
	require.NoError(suite.T(), err)

	_, err = suite.svc.Signup(suite.ctx, "alice", "new@example.com", "pw")
	assert.ErrorIs(suite.T(), err, domain.ErrConflict)
	assert.Equal(suite.T(), "Username or email already exists", domain.Message(err, ""))

	_, err = suite.svc.Signup(suite.ctx, "bob", "alice@example.com", "pw")
	assert.ErrorIs(suite.T(), err, domain.ErrConflict)

	_, err = suite.svc.Login(suite.ctx, "bob", "pw")
	assert.ErrorIs(suite.T(), err, domain.ErrAuth, "conflicting signup must not create a user")
}

func (suite *AuthTestSuite) TestLoginFailures() {
	_, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", "right")
	require.NoError(suite.T(), err)

	_, err = suite.svc.Login(suite.ctx, "alice", "wrong")
	assert.ErrorIs(suite.T(), err, domain.ErrAuth)

	_, err = suite.svc.Login(suite.ctx, "nobody", "right")
	assert.ErrorIs(suite.T(), err, domain.ErrAuth)
	assert.Equal(suite.T(), "Invalid username or password", domain.Message(err, ""))
}

func (suite *AuthTestSuite) TestSignupRejectsOverlongPassword() {
	_, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", strings.Repeat("p", 80))
	assert.ErrorIs(suite.T(), err, domain.ErrValidation)
	assert.Equal(suite.T(), "Password must be at most 72 bytes", domain.Message(err, ""))

	_, err = suite.store.UserByUsername(suite.ctx, "alice")
	assert.Error(suite.T(), err, "rejected signup must not create a user")

	_, err = suite.svc.Signup(suite.ctx, "alice", "alice@example.com", strings.Repeat("p", 72))
	assert.NoError(suite.T(), err)
}

func (suite *AuthTestSuite) TestUserIDsAreUnique() {
	a, err := suite.svc.Signup(suite.ctx, "alice", "alice@example.com", "pw")
	require.NoError(suite.T(), err)
	b, err := suite.svc.Signup(suite.ctx, "bob", "bob@example.com", "pw")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), a.UserID, b.UserID)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

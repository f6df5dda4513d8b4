package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Ogoter374s/BusfahrerV2-sub001/internal/models"
)

type VerifierTestSuite struct {
	suite.Suite

	verifier *TokenVerifier
}

func (s *VerifierTestSuite) SetupTest() {
	var err error
	s.verifier, err = NewTokenVerifier(&Config{
		Secret: "test-secret",
		Issuer: "busfahrer-identity",
	})
	s.Require().NoError(err)
}

func (s *VerifierTestSuite) TestRoundTrip() {
	token, err := s.verifier.Issue(&Principal{
		ID:     "alice",
		Name:   "Alice",
		Gender: models.GenderFemale,
	}, time.Hour)
	s.Require().NoError(err)

	principal, err := s.verifier.Verify(token)
	s.Require().NoError(err)
	s.Equal("alice", principal.ID)
	s.Equal("Alice", principal.Name)
	s.Equal(models.GenderFemale, principal.Gender)
}

func (s *VerifierTestSuite) TestRejectsWrongSignature() {
	other, err := NewTokenVerifier(&Config{
		Secret: "different-secret",
		Issuer: "busfahrer-identity",
	})
	s.Require().NoError(err)

	token, err := other.Issue(&Principal{ID: "alice"}, time.Hour)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestRejectsExpiredToken() {
	token, err := s.verifier.Issue(&Principal{ID: "alice"}, -time.Minute)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(token)
	s.ErrorIs(err, ErrExpiredToken)
}

func (s *VerifierTestSuite) TestRejectsWrongIssuer() {
	other, err := NewTokenVerifier(&Config{
		Secret: "test-secret",
		Issuer: "somebody-else",
	})
	s.Require().NoError(err)

	token, err := other.Issue(&Principal{ID: "alice"}, time.Hour)
	s.Require().NoError(err)

	_, err = s.verifier.Verify(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestRejectsGarbage() {
	_, err := s.verifier.Verify("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *VerifierTestSuite) TestRequiresSubject() {
	_, err := s.verifier.Issue(&Principal{}, time.Hour)
	s.Error(err)
}

func TestVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(VerifierTestSuite))
}

package service

import (
	"testing"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/domain/user"
	ierr "github.com/paperstack/paperstack/internal/errors"
	"github.com/paperstack/paperstack/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
	user    *user.User
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewUserService(newTestServiceParams(&s.BaseServiceTestSuite))

	s.user = user.NewUser(s.GetContext(), "owner@example.com", "hash")
	s.user.BusinessInfo = user.BusinessInfo{Name: "Old Name"}
	s.Require().NoError(s.GetStores().UserRepo.Create(s.GetContext(), s.user))
}

func (s *UserServiceSuite) TestGetProfile() {
	profile, err := s.service.GetProfile(testutil.UserContext(s.user.ID))
	s.NoError(err)
	s.Equal(s.user.ID, profile.ID)
	s.Equal("owner@example.com", profile.Email)
	s.Equal("Old Name", profile.BusinessInfo.Name)
	s.Equal(user.DefaultDocumentCustomization(), profile.DocumentCustomization)

	_, err = s.service.GetProfile(testutil.GuestContext(testutil.DefaultClientIP))
	s.True(ierr.IsUnauthorized(err))
}

func (s *UserServiceSuite) TestProfileIsCachedUntilUpdated() {
	ctx := testutil.UserContext(s.user.ID)

	_, err := s.service.GetProfile(ctx)
	s.Require().NoError(err)

	// a write that bypasses the service is not visible while cached
	stored, err := s.GetStores().UserRepo.GetByID(ctx, s.user.ID)
	s.Require().NoError(err)
	stored.BusinessInfo.Name = "Changed Elsewhere"
	s.Require().NoError(s.GetStores().UserRepo.Update(ctx, stored))

	cached, err := s.service.GetProfile(ctx)
	s.NoError(err)
	s.Equal("Old Name", cached.BusinessInfo.Name)

	updated, err := s.service.UpdateBusinessInfo(ctx, &dto.UpdateBusinessInfoRequest{
		Phone: lo.ToPtr("+1 555 0100"),
	})
	s.NoError(err)
	s.Equal("Changed Elsewhere", updated.BusinessInfo.Name)
	s.Equal("+1 555 0100", updated.BusinessInfo.Phone)

	fresh, err := s.service.GetProfile(ctx)
	s.NoError(err)
	s.Equal("+1 555 0100", fresh.BusinessInfo.Phone)
}

func (s *UserServiceSuite) TestUpdateBusinessInfoValidation() {
	_, err := s.service.UpdateBusinessInfo(testutil.UserContext(s.user.ID), &dto.UpdateBusinessInfoRequest{
		Email: lo.ToPtr("not-an-email"),
	})
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestUpdateDocumentCustomization() {
	ctx := testutil.UserContext(s.user.ID)

	profile, err := s.service.UpdateDocumentCustomization(ctx, &dto.UpdateDocumentCustomizationRequest{
		PrimaryColor: lo.ToPtr("#112233"),
		Footer:       lo.ToPtr("Thank you for your business"),
	})
	s.NoError(err)
	s.Equal("#112233", profile.DocumentCustomization.PrimaryColor)
	s.Equal(user.DefaultDocumentCustomization().AccentColor, profile.DocumentCustomization.AccentColor)
	s.Equal("Thank you for your business", profile.DocumentCustomization.Footer)

	_, err = s.service.UpdateDocumentCustomization(ctx, &dto.UpdateDocumentCustomizationRequest{
		AccentColor: lo.ToPtr("green"),
	})
	s.True(ierr.IsValidation(err))
}

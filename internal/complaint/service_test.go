package complaint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	dErrors "oscahub/pkg/domain-errors"
	id "oscahub/pkg/domain"
	"oscahub/pkg/requestcontext"
)

type ComplaintServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestComplaintServiceSuite(t *testing.T) {
	suite.Run(t, new(ComplaintServiceSuite))
}

func (s *ComplaintServiceSuite) SetupTest() {
	s.service = NewService(NewInMemory(), zap.NewNop())
	s.ctx = requestcontext.WithTime(context.Background(),
		time.Date(2024, time.July, 15, 9, 0, 0, 0, time.UTC))
}

func (s *ComplaintServiceSuite) submit(subject string) Complaint {
	c, err := s.service.Submit(s.ctx, SubmitInput{
		UserID:  id.NewUserID(),
		Subject: subject,
		Details: "details for " + subject,
	})
	s.Require().NoError(err)
	return c
}

func (s *ComplaintServiceSuite) TestSubmit() {
	c := s.submit("Delayed pension release")

	s.False(c.ID.IsNil())
	s.Equal(StatusOpen, c.Status)
	s.Equal(time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC), c.Date)
}

func (s *ComplaintServiceSuite) TestListNewestFirst() {
	first := s.submit("first")
	second := s.submit("second")

	all, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(second.ID, all[0].ID)
	s.Equal(first.ID, all[1].ID)
}

func (s *ComplaintServiceSuite) TestListByUser() {
	mine := s.submit("mine")
	s.submit("someone else's")

	got, err := s.service.ListByUser(s.ctx, mine.UserID)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(mine.ID, got[0].ID)
}

func (s *ComplaintServiceSuite) TestResolve() {
	s.Run("closes an open complaint", func() {
		c := s.submit("noise")
		resolved, err := s.service.Resolve(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(StatusResolved, resolved.Status)
	})

	s.Run("resolving twice conflicts", func() {
		c := s.submit("noise again")
		_, err := s.service.Resolve(s.ctx, c.ID)
		s.Require().NoError(err)

		_, err = s.service.Resolve(s.ctx, c.ID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unknown id is not found", func() {
		_, err := s.service.Resolve(s.ctx, id.NewComplaintID())
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

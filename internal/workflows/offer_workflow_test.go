package workflows

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/activities"
	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

type OfferPipelineTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
}

func (s *OfferPipelineTestSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	var acts *activities.Activities
	s.env.RegisterActivityWithOptions(acts.RenderOfferDocument, activity.RegisterOptions{Name: "RenderOfferDocument"})
	s.env.RegisterActivityWithOptions(acts.PersistInquiry, activity.RegisterOptions{Name: "PersistInquiry"})
	s.env.RegisterActivityWithOptions(acts.NotifyGuest, activity.RegisterOptions{Name: "NotifyGuest"})
	s.env.RegisterActivityWithOptions(acts.NotifyInternal, activity.RegisterOptions{Name: "NotifyInternal"})
}

func (s *OfferPipelineTestSuite) AfterTest(suiteName, testName string) {
	s.env.AssertExpectations(s.T())
}

func TestOfferPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(OfferPipelineTestSuite))
}

func pipelineInput() models.OfferPipelineInput {
	base := decimal.NewFromInt(6650)
	tax := decimal.NewFromFloat(1396.5)
	apa := decimal.NewFromInt(1995)
	fixed := decimal.NewFromInt(300)
	return models.OfferPipelineInput{
		Request: models.CharterRequest{
			GuestName:  "Ana Torres",
			GuestEmail: "ana@example.com",
			YachtID:    "YCH001",
			YachtName:  "Mar Azul",
			StartDate:  models.NewDate(2026, time.July, 10),
			EndDate:    models.NewDate(2026, time.July, 17),
			Currency:   "EUR",
			TaxPercent: decimal.NewFromInt(21),
			APAPercent: decimal.NewFromInt(30),
		},
		Breakdown: models.PriceBreakdown{
			Nights:         7,
			PrimarySeason:  models.SeasonHigh,
			BaseCharterFee: base,
			TaxAmount:      tax,
			APAAmount:      apa,
			FixedFees:      fixed,
			TotalEstimate:  base.Add(tax).Add(apa).Add(fixed),
		},
	}
}

func delivered() models.NotificationOutcome {
	return models.NotificationOutcome{Attempted: true, Delivered: true}
}

func (s *OfferPipelineTestSuite) TestPipeline_FullSuccess() {
	inquiryID := uuid.New()

	s.env.OnActivity("RenderOfferDocument", mock.Anything, mock.Anything).Return(&activities.RenderOfferOutput{
		Document: models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true},
	}, nil)
	s.env.OnActivity("PersistInquiry", mock.Anything, mock.Anything).Return(&activities.PersistInquiryOutput{
		InquiryID: inquiryID,
	}, nil)
	s.env.OnActivity("NotifyGuest", mock.Anything, mock.Anything).Return(delivered(), nil)
	s.env.OnActivity("NotifyInternal", mock.Anything, mock.Anything).Return(delivered(), nil)

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, pipelineInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.OfferPipelineResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.True(result.DocumentAttached)
	s.Require().NotNil(result.InquiryID)
	s.Equal(inquiryID, *result.InquiryID)
	s.True(result.Guest.Delivered)
	s.True(result.Internal.Delivered)
	s.False(result.Partial())
	s.Empty(result.Warnings())
}

func (s *OfferPipelineTestSuite) TestPipeline_PersistenceFailureDoesNotBlockNotification() {
	s.env.OnActivity("RenderOfferDocument", mock.Anything, mock.Anything).Return(&activities.RenderOfferOutput{
		Document: models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true},
	}, nil)
	s.env.OnActivity("PersistInquiry", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	s.env.OnActivity("NotifyGuest", mock.Anything, mock.Anything).Return(delivered(), nil)
	s.env.OnActivity("NotifyInternal", mock.Anything, mock.Anything).Return(delivered(), nil)

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, pipelineInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.OfferPipelineResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Nil(result.InquiryID)
	s.NotEmpty(result.PersistError)
	s.True(result.Guest.Delivered, "notification must still be attempted")
	s.True(result.Internal.Delivered)
	s.True(result.DocumentAttached)
	s.True(result.Partial())
}

func (s *OfferPipelineTestSuite) TestPipeline_RenderFailureContinuesWithoutAttachment() {
	inquiryID := uuid.New()

	s.env.OnActivity("RenderOfferDocument", mock.Anything, mock.Anything).Return(nil, errors.New("font missing"))
	s.env.OnActivity("PersistInquiry", mock.Anything, mock.Anything).Return(&activities.PersistInquiryOutput{
		InquiryID: inquiryID,
	}, nil)
	s.env.OnActivity("NotifyGuest", mock.Anything, mock.Anything).Return(delivered(), nil)
	s.env.OnActivity("NotifyInternal", mock.Anything, mock.Anything).Return(delivered(), nil)

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, pipelineInput())

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result models.OfferPipelineResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.False(result.DocumentAttached)
	s.NotEmpty(result.DocumentError)
	s.NotNil(result.InquiryID)
	s.True(result.Guest.Delivered)
	// Document failure alone is reported but is not a partial failure.
	s.False(result.Partial())
	s.Contains(result.Warnings(), "offer document could not be generated")
}

func (s *OfferPipelineTestSuite) TestPipeline_SkippedChannelsAreNotFailures() {
	inquiryID := uuid.New()
	skipped := models.NotificationOutcome{Attempted: false}

	s.env.OnActivity("RenderOfferDocument", mock.Anything, mock.Anything).Return(&activities.RenderOfferOutput{
		Document: models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true},
	}, nil)
	s.env.OnActivity("PersistInquiry", mock.Anything, mock.Anything).Return(&activities.PersistInquiryOutput{
		InquiryID: inquiryID,
	}, nil)
	s.env.OnActivity("NotifyGuest", mock.Anything, mock.Anything).Return(skipped, nil)
	s.env.OnActivity("NotifyInternal", mock.Anything, mock.Anything).Return(skipped, nil)

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, pipelineInput())

	s.True(s.env.IsWorkflowCompleted())

	var result models.OfferPipelineResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.False(result.Guest.Attempted)
	s.False(result.Internal.Attempted)
	s.False(result.Partial(), "skipped channels must not count as failures")
}

func (s *OfferPipelineTestSuite) TestPipeline_ChannelFailureIsIndependent() {
	inquiryID := uuid.New()

	s.env.OnActivity("RenderOfferDocument", mock.Anything, mock.Anything).Return(&activities.RenderOfferOutput{
		Document: models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true},
	}, nil)
	s.env.OnActivity("PersistInquiry", mock.Anything, mock.Anything).Return(&activities.PersistInquiryOutput{
		InquiryID: inquiryID,
	}, nil)
	s.env.OnActivity("NotifyGuest", mock.Anything, mock.Anything).Return(models.NotificationOutcome{
		Attempted: true, Delivered: false, Error: "mailbox full",
	}, nil)
	s.env.OnActivity("NotifyInternal", mock.Anything, mock.Anything).Return(delivered(), nil)

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, pipelineInput())

	var result models.OfferPipelineResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.False(result.Guest.Delivered)
	s.True(result.Internal.Delivered, "one channel's failure must not block the other")
	s.True(result.Partial())
}

func (s *OfferPipelineTestSuite) TestPipeline_ValidationFailureAbortsBeforeSideEffects() {
	input := pipelineInput()
	input.Request.GuestEmail = ""

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, input)

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Require().Error(err)

	var appErr *temporal.ApplicationError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(string(models.ErrKindValidation), appErr.Type())
	s.env.AssertNotCalled(s.T(), "PersistInquiry", mock.Anything, mock.Anything)
	s.env.AssertNotCalled(s.T(), "NotifyGuest", mock.Anything, mock.Anything)
}

func (s *OfferPipelineTestSuite) TestPipeline_InconsistentBreakdownIsFatal() {
	input := pipelineInput()
	input.Breakdown.TotalEstimate = input.Breakdown.TotalEstimate.Add(decimal.NewFromInt(1))

	s.env.ExecuteWorkflow(OfferPipelineWorkflow, input)

	err := s.env.GetWorkflowError()
	s.Require().Error(err)

	var appErr *temporal.ApplicationError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(string(models.ErrKindPriceConsistency), appErr.Type())
}

func (s *OfferPipelineTestSuite) TestPipeline_StageTimeouts() {
	s.Equal(10*time.Second, RenderTimeout)
	s.Equal(5*time.Second, PersistTimeout)
	s.Equal(15*time.Second, NotifyTimeout)
}

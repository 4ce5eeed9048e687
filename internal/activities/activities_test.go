package activities

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/sandaveisa-cloud/Balearic-Charter-2026-sub001/internal/models"
)

type fakeRenderer struct {
	doc models.OfferDocument
	err error
}

func (f *fakeRenderer) Render(req models.CharterRequest, breakdown models.PriceBreakdown) (models.OfferDocument, error) {
	return f.doc, f.err
}

type fakeStore struct {
	id        uuid.UUID
	err       error
	gotTotal  decimal.Decimal
	callCount int
}

func (f *fakeStore) CreateInquiry(ctx context.Context, req models.CharterRequest, totalEstimate decimal.Decimal) (uuid.UUID, error) {
	f.callCount++
	f.gotTotal = totalEstimate
	return f.id, f.err
}

type fakeNotifier struct {
	guest    models.NotificationOutcome
	internal models.NotificationOutcome
	gotDoc   *models.OfferDocument
}

func (f *fakeNotifier) GuestConfirmation(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown, doc *models.OfferDocument) models.NotificationOutcome {
	f.gotDoc = doc
	return f.guest
}

func (f *fakeNotifier) InternalAlert(ctx context.Context, req models.CharterRequest, breakdown models.PriceBreakdown) models.NotificationOutcome {
	return f.internal
}

func testInput() (models.CharterRequest, models.PriceBreakdown) {
	base := decimal.NewFromInt(1800)
	req := models.CharterRequest{
		GuestName:  "Ana Torres",
		GuestEmail: "ana@example.com",
		YachtID:    "YCH001",
		YachtName:  "Mar Azul",
		StartDate:  models.NewDate(2026, time.March, 29),
		EndDate:    models.NewDate(2026, time.April, 2),
		Currency:   "EUR",
	}
	breakdown := models.PriceBreakdown{
		Nights:         4,
		PrimarySeason:  models.SeasonLow,
		BaseCharterFee: base,
		TotalEstimate:  base,
	}
	return req, breakdown
}

func newActivityEnv(t *testing.T) *testsuite.TestActivityEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	return ts.NewTestActivityEnvironment()
}

func TestRenderOfferDocument_Success(t *testing.T) {
	renderer := &fakeRenderer{doc: models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true}}
	acts := NewActivities(renderer, &fakeStore{}, &fakeNotifier{})

	env := newActivityEnv(t)
	env.RegisterActivity(acts.RenderOfferDocument)

	req, breakdown := testInput()
	val, err := env.ExecuteActivity(acts.RenderOfferDocument, RenderOfferInput{Request: req, Breakdown: breakdown})
	require.NoError(t, err)

	var out RenderOfferOutput
	require.NoError(t, val.Get(&out))
	assert.True(t, out.Document.Generated)
	assert.Equal(t, 4, out.Document.Length)
}

func TestRenderOfferDocument_Failure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("render exploded")}
	acts := NewActivities(renderer, &fakeStore{}, &fakeNotifier{})

	env := newActivityEnv(t)
	env.RegisterActivity(acts.RenderOfferDocument)

	req, breakdown := testInput()
	_, err := env.ExecuteActivity(acts.RenderOfferDocument, RenderOfferInput{Request: req, Breakdown: breakdown})
	assert.Error(t, err)
}

func TestPersistInquiry_Success(t *testing.T) {
	store := &fakeStore{id: uuid.New()}
	acts := NewActivities(&fakeRenderer{}, store, &fakeNotifier{})

	env := newActivityEnv(t)
	env.RegisterActivity(acts.PersistInquiry)

	req, breakdown := testInput()
	val, err := env.ExecuteActivity(acts.PersistInquiry, PersistInquiryInput{Request: req, Breakdown: breakdown})
	require.NoError(t, err)

	var out PersistInquiryOutput
	require.NoError(t, val.Get(&out))
	assert.Equal(t, store.id, out.InquiryID)
	assert.Equal(t, 1, store.callCount, "persistence must be a single insert")
	assert.True(t, store.gotTotal.Equal(breakdown.TotalEstimate))
}

func TestPersistInquiry_FailureIsNotRetriedHere(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	acts := NewActivities(&fakeRenderer{}, store, &fakeNotifier{})

	env := newActivityEnv(t)
	env.RegisterActivity(acts.PersistInquiry)

	req, breakdown := testInput()
	_, err := env.ExecuteActivity(acts.PersistInquiry, PersistInquiryInput{Request: req, Breakdown: breakdown})
	assert.Error(t, err)
	assert.Equal(t, 1, store.callCount)
}

func TestNotifyGuest_PassesDocumentThrough(t *testing.T) {
	notifier := &fakeNotifier{guest: models.NotificationOutcome{Attempted: true, Delivered: true}}
	acts := NewActivities(&fakeRenderer{}, &fakeStore{}, notifier)

	env := newActivityEnv(t)
	env.RegisterActivity(acts.NotifyGuest)

	req, breakdown := testInput()
	doc := &models.OfferDocument{Content: []byte("%PDF"), Length: 4, Generated: true}
	val, err := env.ExecuteActivity(acts.NotifyGuest, NotifyInput{Request: req, Breakdown: breakdown, Document: doc})
	require.NoError(t, err)

	var outcome models.NotificationOutcome
	require.NoError(t, val.Get(&outcome))
	assert.True(t, outcome.Delivered)
	require.NotNil(t, notifier.gotDoc)
	assert.True(t, notifier.gotDoc.Generated)
}

func TestNotifyGuest_NoDocument(t *testing.T) {
	notifier := &fakeNotifier{guest: models.NotificationOutcome{Attempted: true, Delivered: true}}
	acts := NewActivities(&fakeRenderer{}, &fakeStore{}, notifier)

	env := newActivityEnv(t)
	env.RegisterActivity(acts.NotifyGuest)

	req, breakdown := testInput()
	_, err := env.ExecuteActivity(acts.NotifyGuest, NotifyInput{Request: req, Breakdown: breakdown})
	require.NoError(t, err)
	assert.Nil(t, notifier.gotDoc)
}

func TestNotifyInternal_SkippedOutcomeIsNotAnError(t *testing.T) {
	notifier := &fakeNotifier{internal: models.NotificationOutcome{Attempted: false}}
	acts := NewActivities(&fakeRenderer{}, &fakeStore{}, notifier)

	env := newActivityEnv(t)
	env.RegisterActivity(acts.NotifyInternal)

	req, breakdown := testInput()
	val, err := env.ExecuteActivity(acts.NotifyInternal, NotifyInput{Request: req, Breakdown: breakdown})
	require.NoError(t, err)

	var outcome models.NotificationOutcome
	require.NoError(t, val.Get(&outcome))
	assert.False(t, outcome.Attempted)
	assert.Empty(t, outcome.Error)
}

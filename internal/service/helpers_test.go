package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/internal/config"
	"mortgage-connect-be/internal/dto"
	"mortgage-connect-be/internal/entity"
	"mortgage-connect-be/internal/pkg/logger"
	"mortgage-connect-be/internal/repository/contract"
	"mortgage-connect-be/internal/repository/memory"
	"mortgage-connect-be/pkg/crm/gohighlevel"
	"mortgage-connect-be/pkg/formflow"

	"github.com/stretchr/testify/require"
)

var errCrmDown = errors.New("crm unavailable")

// applicantScript answers every step of either catalog with a valid value,
// keyed by step id.
func applicantScript(overrides map[string]string) map[string]string {
	s := map[string]string{
		catalog.StepApplicantType:          catalog.ApplicantIndividual,
		catalog.StepCoApplicantFirstName:   "Grace",
		catalog.StepCoApplicantLastName:    "Hopper",
		catalog.StepCoApplicantCreditScore: "720-760",
		catalog.StepPropertyType:           "townhome-condo",
		catalog.StepPropertyUse:            "primary-home",
		catalog.StepCreditScore:            "700-719",
		catalog.StepPurchaseTimeline:       catalog.TimelineSimplyCurious,
		catalog.StepOpenToSecondOpinion:    "yes",
		catalog.StepReasonForSecondOpinion: "better-rate",
		catalog.StepHasRealEstateAgent:     "no",
		catalog.StepPurchasePrice:          "201k-500k",
		catalog.StepCurrentLoanStatus:      "current",
		catalog.StepRefinanceReason:        "cash-out",
		catalog.StepCurrentHomeValue:       "501k-800k",
		catalog.StepMonthlyPayment:         "2k-3k",
		catalog.StepYearsRemainingOnLoan:   "20-25",
		catalog.StepEmploymentStatus:       "employed",
		catalog.StepSelfEmployedYears:      "yes",
		catalog.StepCompletedTaxes:         "yes",
		catalog.StepMonthlyIncome:          "7000-9999",
		catalog.StepLiquidAssets:           "20000+",
		catalog.StepBankruptcy:             "no",
		catalog.StepMilitaryService:        catalog.MilitaryNoService,
		catalog.StepMilitaryStatus:         "veteran",
		catalog.StepZipCode:                "85712",
		catalog.StepFirstName:              "Ada",
		catalog.StepLastName:               "Lovelace",
		catalog.StepEmail:                  "ada@example.com",
		catalog.StepPhone:                  "(520) 645-5533",
		catalog.StepConfirmation:           formflow.ConfirmYes,
	}
	for k, v := range overrides {
		s[k] = v
	}
	return s
}

// fakeSubmitter records every payload. failures makes the first n attempts
// fail; block, when set, holds each attempt until it is closed.
type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []map[string]string
	failures int
	block    chan struct{}
}

func (f *fakeSubmitter) SubmitApplication(ctx context.Context, app formflow.Application) (formflow.Receipt, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, app.Payload())
	if len(f.payloads) <= f.failures {
		return formflow.Receipt{}, errCrmDown
	}
	return formflow.Receipt{Accepted: true, Reference: "lead-1"}, nil
}

func (f *fakeSubmitter) calls() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]string, len(f.payloads))
	copy(out, f.payloads)
	return out
}

// fakeCrm stands in for the GoHighLevel client.
type fakeCrm struct {
	mu            sync.Mutex
	configured    bool
	contactErr    error
	oppErr        error
	contacts      []gohighlevel.Contact
	opportunities []gohighlevel.Opportunity
}

func (f *fakeCrm) Configured() bool { return f.configured }

func (f *fakeCrm) CreateContact(ctx context.Context, c gohighlevel.Contact) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.contactErr != nil {
		return "", f.contactErr
	}
	f.contacts = append(f.contacts, c)
	return "contact-1", nil
}

func (f *fakeCrm) CreateOpportunity(ctx context.Context, o gohighlevel.Opportunity) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.oppErr != nil {
		return "", f.oppErr
	}
	f.opportunities = append(f.opportunities, o)
	return "opp-1", nil
}

func (f *fakeCrm) contactCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.contacts)
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePublisher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

// failingLeadRepository fails every write.
type failingLeadRepository struct {
	contract.LeadRepository
}

func (failingLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	return errors.New("db down")
}

func newWizard(t *testing.T, sub formflow.Submitter) IWizardService {
	t.Helper()
	return NewWizardService(
		catalog.MustBuild(),
		memory.NewFormSessionRepository(time.Hour),
		sub,
		config.DefaultBrand(),
		200*time.Millisecond,
		logger.NewNopLogger(),
	)
}

// recordingSink collects chat frames for assertions.
type recordingSink struct {
	mu     sync.Mutex
	frames []dto.ChatFrame
}

func (s *recordingSink) Emit(f dto.ChatFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}

func (s *recordingSink) ofType(ft dto.FrameType) []dto.ChatFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []dto.ChatFrame
	for _, f := range s.frames {
		if f.Type == ft {
			out = append(out, f)
		}
	}
	return out
}

// waitFor blocks until at least n frames of type ft arrived and returns the nth.
func (s *recordingSink) waitFor(t *testing.T, ft dto.FrameType, n int) dto.ChatFrame {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(s.ofType(ft)) >= n
	}, 5*time.Second, time.Millisecond, "waiting for %s frame #%d", ft, n)
	return s.ofType(ft)[n-1]
}

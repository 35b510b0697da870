package catalog

import ff "mortgage-connect-be/pkg/formflow"

const (
	StepPropertyType           = "propertyType"
	StepPropertyUse            = "propertyUse"
	StepPurchaseTimeline       = "purchaseTimeline"
	StepOpenToSecondOpinion    = "openToSecondOpinion"
	StepReasonForSecondOpinion = "reasonForSecondOpinion"
	StepHasRealEstateAgent     = "hasRealEstateAgent"
	StepPurchasePrice          = "purchasePrice"
)

const (
	TimelineSignedPurchase = "signed-purchase"
	TimelineOfferPending   = "offer-pending"
	TimelineBuyingSoon     = "buying-2-6-months"
	TimelineSimplyCurious  = "simply-curious"
)

var (
	hasPropertyInHand  = ff.FieldIn(StepPurchaseTimeline, TimelineSignedPurchase, TimelineOfferPending)
	stillShopping      = ff.FieldIn(StepPurchaseTimeline, TimelineBuyingSoon, TimelineSimplyCurious)
	wantsSecondOpinion = ff.AllOf(hasPropertyInHand, ff.FieldEquals(StepOpenToSecondOpinion, "yes"))
)

func purchaseSteps() []ff.Step {
	steps := []ff.Step{
		applicantStep("Are you looking to buy a home by yourself or do you have a co-applicant?", StepPropertyType),
	}
	steps = append(steps, coApplicantSteps()...)
	steps = append(steps,
		ff.Step{
			ID:     StepPropertyType,
			Prompt: ff.Text("Great! What type of property are you looking to buy?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "existing-single-family", Label: "Existing Single Family Home"},
				{Value: "townhome-condo", Label: "Townhome/Condo"},
				{Value: "lot-land", Label: "Lot/Land"},
				{Value: "multifamily", Label: "Multifamily (2-4 Unit)"},
			},
		},
		ff.Step{
			ID:     StepPropertyUse,
			Prompt: ff.Text("How will this home be used?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "primary-home", Label: "Primary Home"},
				{Value: "second-home", Label: "Second Home"},
				{Value: "investment", Label: "Investment Property"},
				{Value: "vacation-home", Label: "Vacation Home"},
			},
		},
		creditScoreStep(),
		ff.Step{
			ID:     StepPurchaseTimeline,
			Prompt: ff.Text("Where are you in the home buying process?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: TimelineSignedPurchase, Label: "Signed Purchase Agreement"},
				{Value: TimelineOfferPending, Label: "Offer Pending/Found Property"},
				{Value: TimelineBuyingSoon, Label: "Buying in 2-6 Months"},
				{Value: TimelineSimplyCurious, Label: "Simply Curious"},
			},
			Next: ff.Route(map[string]string{
				TimelineSignedPurchase: StepOpenToSecondOpinion,
				TimelineOfferPending:   StepOpenToSecondOpinion,
				TimelineBuyingSoon:     StepHasRealEstateAgent,
				TimelineSimplyCurious:  StepHasRealEstateAgent,
			}, StepPurchasePrice),
		},
		ff.Step{
			ID:     StepOpenToSecondOpinion,
			Prompt: ff.Text("Are you open to getting a second opinion from a lender about your current loan offer or terms?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "yes", Label: "Yes, I am open to it"},
				{Value: "no", Label: "No, I am satisfied"},
			},
			Visible: hasPropertyInHand,
			Next: ff.Route(map[string]string{
				"yes": StepReasonForSecondOpinion,
			}, StepPurchasePrice),
		},
		ff.Step{
			ID:     StepReasonForSecondOpinion,
			Prompt: ff.Text("What are your main reasons for seeking a second opinion? (Select the best option)"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "better-rate", Label: "Find a better interest rate"},
				{Value: "lower-payment", Label: "Reduce monthly payment"},
				{Value: "better-terms", Label: "Get better loan terms"},
				{Value: "more-options", Label: "Explore more loan options"},
				{Value: "save-money", Label: "Save money on closing costs"},
			},
			Visible: wantsSecondOpinion,
			Next:    ff.Goto(StepPurchasePrice),
		},
		ff.Step{
			ID:      StepHasRealEstateAgent,
			Prompt:  ff.Text("Do you have a real estate agent helping you?"),
			Input:   ff.InputSelect,
			Options: yesNo,
			Visible: stillShopping,
		},
		ff.Step{
			ID:      StepPurchasePrice,
			Prompt:  ff.Text("What is the price range of homes you've been looking for?"),
			Input:   ff.InputSelect,
			Options: priceRanges,
		},
	)
	steps = append(steps, financialSteps()...)
	return append(steps, tailSteps("Let's get started on our process to help you in your journey to home ownership.")...)
}

package catalog

import ff "mortgage-connect-be/pkg/formflow"

const (
	StepCurrentLoanStatus    = "currentLoanStatus"
	StepRefinanceReason      = "refinanceReason"
	StepCurrentHomeValue     = "currentHomeValue"
	StepMonthlyPayment       = "monthlyPayment"
	StepYearsRemainingOnLoan = "yearsRemainingOnLoan"
)

func refinanceSteps() []ff.Step {
	steps := []ff.Step{
		applicantStep("Are you refinancing by yourself or do you have a co-applicant?", StepCurrentLoanStatus),
	}
	steps = append(steps, coApplicantSteps()...)
	steps = append(steps,
		ff.Step{
			ID:     StepCurrentLoanStatus,
			Prompt: ff.Text("Great! What is your current loan status?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "current", Label: "Current on Payments"},
				{Value: "behind", Label: "Behind on Payments"},
				{Value: "about-to-default", Label: "About to Default"},
			},
		},
		ff.Step{
			ID:     StepRefinanceReason,
			Prompt: ff.Text("What is your main reason for refinancing?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "lower-rate", Label: "Lower Interest Rate"},
				{Value: "lower-payment", Label: "Lower Monthly Payment"},
				{Value: "cash-out", Label: "Cash Out"},
				{Value: "shorten-term", Label: "Shorten Loan Term"},
				{Value: "change-type", Label: "Change Loan Type"},
			},
		},
		creditScoreStep(),
		ff.Step{
			ID:      StepCurrentHomeValue,
			Prompt:  ff.Text("What is your current home value?"),
			Input:   ff.InputSelect,
			Options: priceRanges,
		},
		ff.Step{
			ID:     StepMonthlyPayment,
			Prompt: ff.Text("What is your current monthly payment?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "less-1k", Label: "Less than $1,000"},
				{Value: "1k-2k", Label: "$1,000 - $2,000"},
				{Value: "2k-3k", Label: "$2,000 - $3,000"},
				{Value: "3k-4k", Label: "$3,000 - $4,000"},
				{Value: "4k+", Label: "$4,000 or more"},
			},
		},
		ff.Step{
			ID:     StepYearsRemainingOnLoan,
			Prompt: ff.Text("How many years are remaining on your loan?"),
			Input:  ff.InputSelect,
			Options: []ff.Option{
				{Value: "less-5", Label: "Less than 5 years"},
				{Value: "5-10", Label: "5 to 10 years"},
				{Value: "10-15", Label: "10 to 15 years"},
				{Value: "15-20", Label: "15 to 20 years"},
				{Value: "20-25", Label: "20 to 25 years"},
				{Value: "25+", Label: "25+ years"},
			},
		},
	)
	steps = append(steps, financialSteps()...)
	return append(steps, tailSteps("Let's get started on our process to help you refinance your home.")...)
}

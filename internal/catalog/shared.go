package catalog

import (
	"fmt"

	ff "mortgage-connect-be/pkg/formflow"
)

// Field keys shared by both catalogs.
const (
	StepApplicantType          = "applicantType"
	StepCoApplicantFirstName   = "coApplicantFirstName"
	StepCoApplicantLastName    = "coApplicantLastName"
	StepCoApplicantCreditScore = "coApplicantCreditScore"
	StepCreditScore            = "creditScore"
	StepEmploymentStatus       = "employmentStatus"
	StepSelfEmployedYears      = "selfEmployedYears"
	StepCompletedTaxes         = "completedTaxes"
	StepMonthlyIncome          = "monthlyIncome"
	StepLiquidAssets           = "liquidAssets"
	StepBankruptcy             = "bankruptcy"
	StepMilitaryService        = "militaryService"
	StepMilitaryStatus         = "militaryStatus"
	StepZipCode                = "zipCode"
	StepFirstName              = "firstName"
	StepLastName               = "lastName"
	StepEmail                  = "email"
	StepPhone                  = "phone"
	StepConfirmation           = ff.ConfirmationStepID
)

const (
	ApplicantIndividual    = "individual"
	ApplicantCoApplicant   = "co-applicant"
	EmploymentSelfEmployed = "self-employed"
	MilitaryNoService      = "no-service"
	MilitaryYesServed      = "yes-served"
)

var (
	isCoApplicant  = ff.FieldEquals(StepApplicantType, ApplicantCoApplicant)
	isSelfEmployed = ff.FieldEquals(StepEmploymentStatus, EmploymentSelfEmployed)
	hasServed      = ff.FieldEquals(StepMilitaryService, MilitaryYesServed)
)

// applicantStep routes co-applicants through their own questions and everyone
// else straight to afterCoApplicant.
func applicantStep(prompt string, afterCoApplicant string) ff.Step {
	return ff.Step{
		ID:      StepApplicantType,
		Prompt:  ff.Text(prompt),
		Input:   ff.InputSelect,
		Options: applicantTypes,
		Next: ff.Route(map[string]string{
			ApplicantCoApplicant: StepCoApplicantFirstName,
		}, afterCoApplicant),
	}
}

func coApplicantSteps() []ff.Step {
	return []ff.Step{
		{
			ID:        StepCoApplicantFirstName,
			Prompt:    ff.Text("What's your co-applicant's first name?"),
			Input:     ff.InputText,
			Validator: ff.MinLength(2),
			Visible:   isCoApplicant,
		},
		{
			ID:        StepCoApplicantLastName,
			Prompt:    ff.Text("What's your co-applicant's last name?"),
			Input:     ff.InputText,
			Validator: ff.MinLength(2),
			Visible:   isCoApplicant,
		},
		{
			ID:      StepCoApplicantCreditScore,
			Prompt:  ff.Text("What is your co-applicant's credit score?"),
			Input:   ff.InputSelect,
			Options: creditScores,
			Visible: isCoApplicant,
		},
	}
}

func creditScoreStep() ff.Step {
	return ff.Step{
		ID:      StepCreditScore,
		Prompt:  ff.Text("What is your current credit score?"),
		Input:   ff.InputSelect,
		Options: creditScores,
	}
}

// financialSteps covers employment through military service. Both catalogs
// ask these in the same order.
func financialSteps() []ff.Step {
	return []ff.Step{
		{
			ID:      StepEmploymentStatus,
			Prompt:  ff.Text("What is your employment status?"),
			Input:   ff.InputSelect,
			Options: employmentStatuses,
			Next: ff.Route(map[string]string{
				EmploymentSelfEmployed: StepSelfEmployedYears,
			}, StepMonthlyIncome),
		},
		{
			ID:      StepSelfEmployedYears,
			Prompt:  ff.Text("Have you been self-employed for 2 or more years?"),
			Input:   ff.InputSelect,
			Options: yesNo,
			Visible: isSelfEmployed,
		},
		{
			ID:      StepCompletedTaxes,
			Prompt:  ff.Text("Do you have your last two years of taxes completed?"),
			Input:   ff.InputSelect,
			Options: yesNo,
			Visible: isSelfEmployed,
		},
		{
			ID:      StepMonthlyIncome,
			Prompt:  ff.Text("How much does your household make per month?"),
			Input:   ff.InputSelect,
			Options: monthlyIncomes,
		},
		{
			ID:      StepLiquidAssets,
			Prompt:  ff.Text("How much liquid assets (savings/investments) do you have available?"),
			Input:   ff.InputSelect,
			Options: liquidAssets,
		},
		{
			ID:      StepBankruptcy,
			Prompt:  ff.Text("Bankruptcy, short sale, or foreclosure in last 3 years?"),
			Input:   ff.InputSelect,
			Options: yesNo,
		},
		{
			ID:      StepMilitaryService,
			Prompt:  ff.Text("Military service?"),
			Input:   ff.InputSelect,
			Options: militaryServices,
			Next: ff.Route(map[string]string{
				MilitaryYesServed: StepMilitaryStatus,
			}, StepZipCode),
		},
		{
			ID:      StepMilitaryStatus,
			Prompt:  ff.Text("Select your military status:"),
			Input:   ff.InputSelect,
			Options: militaryStatuses,
			Visible: hasServed,
		},
	}
}

// tailSteps is the contact block and the confirmation gate that close every form.
func tailSteps(confirmPrompt string) []ff.Step {
	return []ff.Step{
		{
			ID:        StepZipCode,
			Prompt:    ff.Text("What is your zip code?"),
			Input:     ff.InputText,
			Validator: ff.ZipCode,
		},
		{
			ID:        StepFirstName,
			Prompt:    ff.Text("Almost done! What's your first name?"),
			Input:     ff.InputText,
			Validator: ff.MinLength(2),
		},
		{
			ID: StepLastName,
			Prompt: func(a ff.Answers) string {
				return fmt.Sprintf("Nice to meet you, %s! What's your last name?", a.Get(StepFirstName))
			},
			Input:     ff.InputText,
			Validator: ff.MinLength(2),
		},
		{
			ID:     StepEmail,
			Prompt: ff.Text("What is your best email address?"),
			Input:  ff.InputEmail,
		},
		{
			ID:     StepPhone,
			Prompt: ff.Text("What is your best contact number?"),
			Input:  ff.InputPhone,
		},
		{
			ID: StepConfirmation,
			Prompt: func(a ff.Answers) string {
				return fmt.Sprintf("Perfect, %s! Is everything accurate? %s", a.Get(StepFirstName), confirmPrompt)
			},
			Input:   ff.InputSelect,
			Options: confirmations,
		},
	}
}

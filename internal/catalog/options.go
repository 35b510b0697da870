package catalog

import ff "mortgage-connect-be/pkg/formflow"

var (
	yesNo = []ff.Option{
		{Value: "yes", Label: "Yes"},
		{Value: "no", Label: "No"},
	}

	applicantTypes = []ff.Option{
		{Value: ApplicantIndividual, Label: "Just myself"},
		{Value: ApplicantCoApplicant, Label: "I have a co-applicant"},
	}

	creditScores = []ff.Option{
		{Value: "less-580", Label: "Less than 580"},
		{Value: "580-619", Label: "580 to 619"},
		{Value: "620-639", Label: "620 to 639"},
		{Value: "640-659", Label: "640 to 659"},
		{Value: "660-679", Label: "660 to 679"},
		{Value: "680-699", Label: "680 to 699"},
		{Value: "700-719", Label: "700 to 719"},
		{Value: "720-760", Label: "720 to 760"},
		{Value: "760+", Label: "760 and above"},
	}

	priceRanges = []ff.Option{
		{Value: "0-200k", Label: "$200,000 or less"},
		{Value: "201k-500k", Label: "$201,000 to $500,000"},
		{Value: "501k-800k", Label: "$501,000 to $800,000"},
		{Value: "801k-1.1m", Label: "$801,000 to $1,100,000"},
		{Value: "1.2m+", Label: "$1,200,000 or above"},
	}

	employmentStatuses = []ff.Option{
		{Value: "employed", Label: "Employed"},
		{Value: EmploymentSelfEmployed, Label: "Self-Employed"},
		{Value: "retired", Label: "Retired"},
		{Value: "not-employed", Label: "Not Employed"},
	}

	monthlyIncomes = []ff.Option{
		{Value: "less-500", Label: "Less than $500"},
		{Value: "500-2499", Label: "$500 - $2,499"},
		{Value: "2500-3499", Label: "$2,500 - $3,499"},
		{Value: "3500-3999", Label: "$3,500 - $3,999"},
		{Value: "4000-4999", Label: "$4,000 - $4,999"},
		{Value: "5000-5999", Label: "$5,000 - $5,999"},
		{Value: "6000-6999", Label: "$6,000 - $6,999"},
		{Value: "7000-9999", Label: "$7,000 - $9,999"},
		{Value: "10000-14999", Label: "$10,000 - $14,999"},
		{Value: "15000+", Label: "$15,000 or above"},
	}

	liquidAssets = []ff.Option{
		{Value: "0-4999", Label: "$0 to $4,999"},
		{Value: "5000-9999", Label: "$5,000 to $9,999"},
		{Value: "10000-19999", Label: "$10,000 to $19,999"},
		{Value: "20000+", Label: "$20,000 and above"},
	}

	militaryServices = []ff.Option{
		{Value: MilitaryNoService, Label: "No military service"},
		{Value: MilitaryYesServed, Label: "Yes, I (or my spouse) served"},
	}

	militaryStatuses = []ff.Option{
		{Value: "active-duty", Label: "Active Duty"},
		{Value: "reserve", Label: "Reserve Status"},
		{Value: "veteran", Label: "Veteran"},
	}

	confirmations = []ff.Option{
		{Value: ff.ConfirmYes, Label: "I confirm this is accurate"},
		{Value: ff.ConfirmNo, Label: "Let me edit my answers"},
	}
)

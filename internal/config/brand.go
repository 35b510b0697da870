package config

// Brand is built once at startup and shared read-only. Handlers expose a
// copy through Snapshot so callers cannot mutate the shared value.
type Brand struct {
	Name        string       `json:"name"`
	Tagline     string       `json:"tagline"`
	Description string       `json:"description"`
	Contact     Contact      `json:"contact"`
	Colors      BrandColors  `json:"colors"`
	FormOptions []FormOption `json:"form_options"`
	Legal       Legal        `json:"legal"`
	// ThankYouPath is where a client goes after a successful submission.
	ThankYouPath string `json:"thank_you_path"`
	// LeadSource is the "source" attached to every CRM contact.
	LeadSource string `json:"-"`
	// NotifyEmail receives one message per new lead.
	NotifyEmail string `json:"-"`
}

type Contact struct {
	Phone        string `json:"phone"`
	PhoneDisplay string `json:"phone_display"`
	Email        string `json:"email"`
	Address      string `json:"address"`
}

type BrandColors struct {
	Primary      string `json:"primary"`
	PrimaryDark  string `json:"primary_dark"`
	PrimaryLight string `json:"primary_light"`
	Gray         string `json:"gray"`
	Error        string `json:"error"`
}

// FormOption is one entry on the form-type selection screen.
type FormOption struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Legal struct {
	PrivacyNotice    string `json:"privacy_notice"`
	Disclaimer       string `json:"disclaimer"`
	CreditDisclaimer string `json:"credit_disclaimer"`
	NmlsLink         string `json:"nmls_link"`
}

func DefaultBrand() *Brand {
	return &Brand{
		Name:        getEnv("BRAND_NAME", "Mortgage Connect"),
		Tagline:     "Let's get your home buying questions answered!",
		Description: "Connecting you to the best mortgage solutions",
		Contact: Contact{
			Phone:        "+1 520-645-5533",
			PhoneDisplay: "(520) 645-5533",
			Email:        "info@mortgageconnect.com",
			Address:      "2959 N Swan Rd #141, Tucson, AZ 85712",
		},
		Colors: BrandColors{
			Primary:      "#00AAFF",
			PrimaryDark:  "#0088CC",
			PrimaryLight: "#33BBFF",
			Gray:         "#656B6D",
			Error:        "#f44336",
		},
		FormOptions: []FormOption{
			{
				ID:          "buy",
				Title:       "I want to buy a home",
				Description: "Find out how much home you can afford",
				Image:       "/images/buy-home.jpg",
			},
			{
				ID:          "refinance",
				Title:       "I want to finance my home",
				Description: "Explore financing options",
				Image:       "/images/refinance-home.jpg",
			},
		},
		Legal: Legal{
			PrivacyNotice:    "YOUR INFORMATION WILL NOT BE SOLD TO MULTIPLE PARTIES",
			Disclaimer:       "Unlike most online mortgage shopping experiences that sell your information to multiple lenders, banks, and institutions, we don't. Instead, you'll be connected with a top Mortgage Advisor licensed in your market, allowing you to decide the next steps.",
			CreditDisclaimer: "No login or SSN required. This will NOT impact your credit, and it takes less than 1 minute to complete!",
			NmlsLink:         "https://nmlsconsumeraccess.org/",
		},
		ThankYouPath: "/submitted",
		LeadSource:   "Mortgage Connect Website",
		NotifyEmail:  getEnv("LEAD_NOTIFY_EMAIL", "info@mortgageconnect.com"),
	}
}

func (b *Brand) Snapshot() Brand {
	out := *b
	out.FormOptions = append([]FormOption(nil), b.FormOptions...)
	return out
}

// FormOption looks up a form-type entry by id.
func (b *Brand) FormOption(id string) (FormOption, bool) {
	for _, o := range b.FormOptions {
		if o.ID == id {
			return o, true
		}
	}
	return FormOption{}, false
}

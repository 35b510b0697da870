// Command simulate walks the mortgage questionnaires with canned applicants
// and prints the resulting conversation. With -api it drives a running
// server's wizard endpoints instead of the in-process catalogs.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"mortgage-connect-be/internal/catalog"
	"mortgage-connect-be/pkg/formflow"

	"github.com/fatih/color"
)

type scenario struct {
	name      string
	variant   string
	overrides map[string]string
}

var scenarios = map[string]scenario{
	"a": {"Individual, simply curious buyer", catalog.VariantBuy, map[string]string{
		catalog.StepPurchaseTimeline: catalog.TimelineSimplyCurious,
	}},
	"b": {"Refinance, veteran", catalog.VariantRefinance, map[string]string{
		catalog.StepMilitaryService: catalog.MilitaryYesServed,
	}},
	"c": {"Co-applicant, self-employed buyer", catalog.VariantBuy, map[string]string{
		catalog.StepApplicantType:    catalog.ApplicantCoApplicant,
		catalog.StepEmploymentStatus: catalog.EmploymentSelfEmployed,
	}},
	"d": {"Signed purchase, wants a second opinion", catalog.VariantBuy, map[string]string{
		catalog.StepPurchaseTimeline:    catalog.TimelineSignedPurchase,
		catalog.StepOpenToSecondOpinion: "yes",
	}},
}

func script(overrides map[string]string) map[string]string {
	s := map[string]string{
		catalog.StepApplicantType:          catalog.ApplicantIndividual,
		catalog.StepCoApplicantFirstName:   "Grace",
		catalog.StepCoApplicantLastName:    "Hopper",
		catalog.StepCoApplicantCreditScore: "720-760",
		catalog.StepPropertyType:           "existing-single-family",
		catalog.StepPropertyUse:            "primary-home",
		catalog.StepCreditScore:            "700-719",
		catalog.StepPurchaseTimeline:       catalog.TimelineBuyingSoon,
		catalog.StepOpenToSecondOpinion:    "no",
		catalog.StepReasonForSecondOpinion: "better-rate",
		catalog.StepHasRealEstateAgent:     "yes",
		catalog.StepPurchasePrice:          "201k-500k",
		catalog.StepCurrentLoanStatus:      "current",
		catalog.StepRefinanceReason:        "lower-payment",
		catalog.StepCurrentHomeValue:       "201k-500k",
		catalog.StepMonthlyPayment:         "1k-2k",
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

func main() {
	only := flag.String("scenario", "", "run a single scenario (a, b, c or d)")
	api := flag.String("api", "", "base URL of a running server, e.g. http://localhost:3000/api")
	flag.Parse()

	keys := make([]string, 0, len(scenarios))
	for k := range scenarios {
		if *only == "" || *only == k {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		color.Red("Unknown scenario %q", *only)
		os.Exit(2)
	}
	sort.Strings(keys)

	registry := catalog.MustBuild()
	failed := false
	for _, k := range keys {
		sc := scenarios[k]
		color.Cyan("\n=== Scenario %s: %s (%s) ===", k, sc.name, sc.variant)

		var err error
		if *api != "" {
			err = runRemote(*api, sc)
		} else {
			err = runLocal(registry, sc)
		}
		if err != nil {
			color.Red("FAILED: %v", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func runLocal(registry *catalog.Registry, sc scenario) error {
	c, err := registry.ForVariant(sc.variant)
	if err != nil {
		return err
	}
	answers := script(sc.overrides)
	w, err := formflow.Walk(c, answers)
	if err != nil {
		return err
	}

	replay := formflow.NewAnswers()
	for _, id := range w.Visited {
		step, _ := c.Lookup(id)
		color.Blue("BOT:  %s", step.Render(replay))
		value := answers[id]
		label := value
		if step.Input == formflow.InputSelect {
			label = step.OptionLabel(value)
		}
		color.White("USER: %s", label)
		replay = replay.With(step.FieldKey, value)
	}

	app := formflow.Application{Variant: sc.variant, Answers: w.Answers}
	color.Green("Outcome: %s, %d steps", w.Outcome, len(w.Visited))
	prettyPrint(app.Payload())
	return nil
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type stepView struct {
	SessionId string `json:"session_id"`
	StepId    string `json:"step_id"`
	Prompt    string `json:"prompt"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
}

type answerResponse struct {
	Step       *stepView       `json:"step"`
	Submission json.RawMessage `json:"submission"`
}

func runRemote(baseURL string, sc scenario) error {
	client := &http.Client{Timeout: 30 * time.Second}
	answers := script(sc.overrides)

	var view stepView
	if err := call(client, http.MethodPost, baseURL+"/forms/sessions", map[string]string{"variant": sc.variant}, &view); err != nil {
		return err
	}

	for i := 0; i < 64; i++ {
		color.Blue("BOT (%d/%d): %s", view.Position, view.Total, view.Prompt)
		value, ok := answers[view.StepId]
		if !ok {
			return fmt.Errorf("no scripted answer for %s", view.StepId)
		}
		color.White("USER: %s", value)

		var resp answerResponse
		url := fmt.Sprintf("%s/forms/sessions/%s/answer", baseURL, view.SessionId)
		if err := call(client, http.MethodPost, url, map[string]string{"value": value}, &resp); err != nil {
			return err
		}
		if resp.Submission != nil {
			color.Green("Submission:")
			fmt.Println(string(resp.Submission))
			return nil
		}
		if resp.Step == nil {
			return fmt.Errorf("no next step after %s", view.StepId)
		}
		view = *resp.Step
	}
	return fmt.Errorf("did not finish")
}

func call(client *http.Client, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	if !env.Success {
		return fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, env.Message)
	}
	return json.Unmarshal(env.Data, out)
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

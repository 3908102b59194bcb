// Package physician implements the virtual physician triage agent.
//
// Two prompt strategies exist for historical reasons and both are kept: a
// clinic-listing flow that asks the model for nearby clinics, and a
// search-grounded triage flow that combines web-search context with a
// self-care prompt. The triage flow is the default; its fallback is
// safety-biased (see_doctor: true).
package physician

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/serenelab/wellspring/pkg/domain"
	"github.com/serenelab/wellspring/pkg/parse"
	"github.com/serenelab/wellspring/pkg/ports"
	"github.com/serenelab/wellspring/pkg/workflow"
)

// Intake is the typed symptom questionnaire.
type Intake struct {
	Symptoms   string `json:"symptoms" mapstructure:"symptoms"`
	Duration   string `json:"duration" mapstructure:"duration"`
	Chronic    string `json:"chronic" mapstructure:"chronic"`
	Medication string `json:"medication" mapstructure:"medication"`
	Severity   int    `json:"severity" mapstructure:"severity"`
	Location   string `json:"location" mapstructure:"location"`
}

// Validate rejects invalid input before any collaborator call is made.
func (i Intake) Validate() error {
	if strings.TrimSpace(i.Symptoms) == "" {
		return fmt.Errorf("symptoms are required")
	}
	if i.Severity < 1 || i.Severity > 10 {
		return fmt.Errorf("severity must be between 1 and 10, got %d", i.Severity)
	}
	return nil
}

// Summary restates the questionnaire as labeled lines for the prompt.
func (i Intake) Summary() string {
	return strings.Join([]string{
		"Symptoms: " + i.Symptoms,
		"Duration: " + i.Duration,
		"Chronic conditions: " + i.Chronic,
		"Medications: " + i.Medication,
		fmt.Sprintf("Severity(1-10): %d", i.Severity),
	}, "\n")
}

// Clinic is one entry in the clinic-listing result.
type Clinic struct {
	Name    string `json:"name" mapstructure:"name"`
	Address string `json:"address" mapstructure:"address"`
	Phone   string `json:"phone" mapstructure:"phone"`
	Website string `json:"website" mapstructure:"website"`
}

// ClinicList is the clinic-listing result schema.
type ClinicList struct {
	Clinics []Clinic `json:"clinics" mapstructure:"clinics"`
	Note    string   `json:"note,omitempty" mapstructure:"note"`
}

// FallbackClinics is the safe default when clinic output cannot be parsed.
func FallbackClinics() ClinicList {
	return ClinicList{
		Clinics: []Clinic{},
		Note:    "Could not parse clinics info.",
	}
}

// Triage is the search-grounded triage result schema.
type Triage struct {
	ProbableCondition string   `json:"probable_condition" mapstructure:"probable_condition"`
	SpecialistDoctor  string   `json:"specialist_doctor" mapstructure:"specialist_doctor"`
	SelfCareTips      []string `json:"self_care_tips" mapstructure:"self_care_tips"`
	SeeDoctor         bool     `json:"see_doctor" mapstructure:"see_doctor"`
}

// FallbackTriage is the safe default when triage output cannot be parsed.
// It is deliberately conservative: when in doubt, see a doctor.
func FallbackTriage() Triage {
	return Triage{
		ProbableCondition: "unknown",
		SpecialistDoctor:  "General Physician",
		SelfCareTips:      []string{},
		SeeDoctor:         true,
	}
}

// defaultSpecialist is used until the analysis step assigns a better one.
const defaultSpecialist = "General Physician"

// buildClinicPrompt renders the clinic-listing instruction string.
func buildClinicPrompt(summary, location, specialist string) string {
	return fmt.Sprintf(`You are a helpful virtual general physician. Based on the patient triage summary and location, please provide a list of clinics nearby specialized in %s.

Triage summary:
%s

Location:
%s

Respond ONLY in JSON with the following format:
{
  "clinics": [
    {
      "name": "Clinic Name",
      "address": "Address",
      "phone": "Phone number (if available)",
      "website": "Website URL (if available)"
    }
  ]
}

If no exact clinic info is available, list general well-known clinics or hospitals in the area.
Keep response brief and relevant.
`, specialist, summary, location)
}

// buildTriagePrompt renders the search-grounded self-care instruction string.
func buildTriagePrompt(summary, searchContext string) string {
	var b strings.Builder
	b.WriteString("You are a careful virtual physician providing educational triage guidance, not a diagnosis.\n")
	b.WriteString("ONLY return valid JSON. Do NOT include any extra text before or after the JSON.\n\n")
	b.WriteString("Patient triage summary:\n")
	b.WriteString(summary)
	b.WriteString("\n")
	if searchContext != "" {
		b.WriteString("\nRelevant web results:\n")
		b.WriteString(searchContext)
		b.WriteString("\n")
	}
	b.WriteString(`
Respond ONLY in JSON with the following format:
{
  "probable_condition": "...",
  "specialist_doctor": "...",
  "self_care_tips": ["tip 1", "tip 2"],
  "see_doctor": true
}

Set "see_doctor" to true whenever symptoms are severe, persistent, or ambiguous.
`)
	return b.String()
}

// Observer receives completion and fallback events for instrumentation.
type Observer interface {
	ObserveCompletion(agent string, err error)
	ObserveFallback(agent string)
}

// Agent wires the triage workflows to their collaborators.
type Agent struct {
	llm      ports.Completer
	search   ports.Searcher
	log      *slog.Logger
	observer Observer
	hooks    workflow.Hooks
}

// Option configures the Agent.
type Option func(*Agent)

// WithLogger configures the agent logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) { a.log = l }
}

// WithObserver registers metrics instrumentation.
func WithObserver(o Observer) Option {
	return func(a *Agent) { a.observer = o }
}

// WithHooks registers workflow node hooks.
func WithHooks(h workflow.Hooks) Option {
	return func(a *Agent) { a.hooks = h }
}

// New creates the physician agent. search may be nil: the triage flow then
// runs without web grounding.
func New(llm ports.Completer, search ports.Searcher, opts ...Option) *Agent {
	a := &Agent{
		llm:    llm,
		search: search,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State field names used by the physician graphs.
const (
	fieldIntake     = "intake"
	fieldSpecialist = "specialist"
	fieldSearch     = "search_context"
	fieldRaw        = "raw_response"
	fieldClinics    = "clinics"
	fieldTriage     = "triage"
)

// ClinicGraph returns the clinic-listing workflow:
// analysis -> clinic_search.
func (a *Agent) ClinicGraph() *workflow.Graph {
	return workflow.New("physician_clinics",
		workflow.WithLogger(a.log),
		workflow.WithHooks(a.hooks),
	).
		AddNode("analysis", a.analysisNode).
		AddNode("clinic_search", a.clinicSearchNode).
		Chain("analysis", "clinic_search")
}

// TriageGraph returns the search-grounded triage workflow:
// analysis -> web_search -> triage.
func (a *Agent) TriageGraph() *workflow.Graph {
	return workflow.New("physician_triage",
		workflow.WithLogger(a.log),
		workflow.WithHooks(a.hooks),
	).
		AddNode("analysis", a.analysisNode).
		AddNode("web_search", a.webSearchNode).
		AddNode("triage", a.triageNode).
		Chain("analysis", "web_search", "triage")
}

// analysisNode assigns the specialist. Currently a fixed default; a model
// call could refine this later.
func (a *Agent) analysisNode(ctx context.Context, s *workflow.State) error {
	if s.String(fieldSpecialist) == "" {
		s.Set(fieldSpecialist, defaultSpecialist)
	}
	return nil
}

// clinicSearchNode asks the model for nearby clinics and parses the listing.
func (a *Agent) clinicSearchNode(ctx context.Context, s *workflow.State) error {
	var intake Intake
	if err := s.Decode(fieldIntake, &intake); err != nil {
		return err
	}

	prompt := buildClinicPrompt(intake.Summary(), intake.Location, s.String(fieldSpecialist))

	raw, err := a.llm.Complete(ctx, []domain.Message{domain.User(prompt)})
	if a.observer != nil {
		a.observer.ObserveCompletion("physician", err)
	}
	if err != nil {
		s.Set(fieldClinics, FallbackClinics())
		s.AddNotice("Clinic lookup is temporarily unavailable.")
		return fmt.Errorf("clinic completion: %w", err)
	}
	s.Set(fieldRaw, raw)

	var list ClinicList
	if !parse.Into(raw, &list) {
		if a.observer != nil {
			a.observer.ObserveFallback("physician")
		}
		s.Set(fieldClinics, FallbackClinics())
		s.AddNotice("The model response could not be read as a clinic list.")
		return nil
	}
	if list.Clinics == nil {
		list.Clinics = []Clinic{}
	}
	s.Set(fieldClinics, list)
	return nil
}

// webSearchNode gathers search snippets for the triage prompt.
// Search never raises; a degraded search just yields less context.
func (a *Agent) webSearchNode(ctx context.Context, s *workflow.State) error {
	if a.search == nil {
		return nil
	}
	var intake Intake
	if err := s.Decode(fieldIntake, &intake); err != nil {
		return err
	}

	query := fmt.Sprintf("self care advice for %s", intake.Symptoms)
	results := a.search.Search(ctx, query, 3)

	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "- %s (%s)\n", r.Snippet, r.URL)
	}
	s.Set(fieldSearch, b.String())
	return nil
}

// triageNode calls the model with the grounded prompt and parses the triage.
func (a *Agent) triageNode(ctx context.Context, s *workflow.State) error {
	var intake Intake
	if err := s.Decode(fieldIntake, &intake); err != nil {
		return err
	}

	prompt := buildTriagePrompt(intake.Summary(), s.String(fieldSearch))

	raw, err := a.llm.Complete(ctx, []domain.Message{domain.User(prompt)})
	if a.observer != nil {
		a.observer.ObserveCompletion("physician", err)
	}
	if err != nil {
		s.Set(fieldTriage, FallbackTriage())
		s.AddNotice("Triage guidance is temporarily unavailable.")
		return fmt.Errorf("triage completion: %w", err)
	}
	s.Set(fieldRaw, raw)

	var triage Triage
	if !parse.Into(raw, &triage) {
		if a.observer != nil {
			a.observer.ObserveFallback("physician")
		}
		s.Set(fieldTriage, FallbackTriage())
		s.AddNotice("The model response could not be read as triage guidance.")
		return nil
	}
	if triage.SelfCareTips == nil {
		triage.SelfCareTips = []string{}
	}
	s.Set(fieldTriage, triage)
	return nil
}

// FindClinics validates the intake and runs the clinic-listing workflow.
func (a *Agent) FindClinics(ctx context.Context, intake Intake) (ClinicList, error) {
	if err := intake.Validate(); err != nil {
		return ClinicList{}, err
	}

	state := workflow.NewState()
	state.Set(fieldIntake, intake)

	final, runErr := a.ClinicGraph().Run(ctx, state)

	var list ClinicList
	if err := final.Decode(fieldClinics, &list); err != nil {
		list = FallbackClinics()
	}
	return list, runErr
}

// Triage validates the intake and runs the search-grounded triage workflow.
// The returned value always conforms to the schema; the fallback keeps its
// conservative safety bias.
func (a *Agent) Triage(ctx context.Context, intake Intake) (Triage, error) {
	if err := intake.Validate(); err != nil {
		return Triage{}, err
	}

	state := workflow.NewState()
	state.Set(fieldIntake, intake)

	final, runErr := a.TriageGraph().Run(ctx, state)

	var triage Triage
	if err := final.Decode(fieldTriage, &triage); err != nil {
		triage = FallbackTriage()
	}
	return triage, runErr
}

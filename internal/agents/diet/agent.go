// Package diet implements the personalized diet planner agent: calorie
// arithmetic, prompt construction, and a workflow graph that turns a user
// profile into a structured meal plan via the LLM collaborator.
package diet

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

// Request is the typed user profile for a diet plan.
type Request struct {
	Age        int     `json:"age" mapstructure:"age"`
	Gender     string  `json:"gender" mapstructure:"gender"`
	HeightCM   float64 `json:"height_cm" mapstructure:"height_cm"`
	WeightKG   float64 `json:"weight_kg" mapstructure:"weight_kg"`
	Activity   string  `json:"activity" mapstructure:"activity"`
	Goal       string  `json:"goal" mapstructure:"goal"`
	Preference string  `json:"preference" mapstructure:"preference"`
}

// Validate rejects invalid input before any collaborator call is made.
func (r Request) Validate() error {
	if r.Age < 5 || r.Age > 100 {
		return fmt.Errorf("age must be between 5 and 100, got %d", r.Age)
	}
	if r.Gender == "" {
		return fmt.Errorf("gender is required")
	}
	if r.HeightCM <= 0 {
		return fmt.Errorf("height must be positive, got %.1f", r.HeightCM)
	}
	if r.WeightKG <= 0 {
		return fmt.Errorf("weight must be positive, got %.1f", r.WeightKG)
	}
	return nil
}

// Macros is the macronutrient breakdown for one day.
type Macros struct {
	ProteinG int `json:"protein_g" mapstructure:"protein_g"`
	CarbsG   int `json:"carbs_g" mapstructure:"carbs_g"`
	FatsG    int `json:"fats_g" mapstructure:"fats_g"`
}

// Meal is a single entry in a day's plan.
type Meal struct {
	Meal        string `json:"meal" mapstructure:"meal"`
	Description string `json:"description" mapstructure:"description"`
	Calories    int    `json:"calories" mapstructure:"calories"`
}

// Day is one day of the meal plan.
type Day struct {
	Day           string `json:"day" mapstructure:"day"`
	Meals         []Meal `json:"meals" mapstructure:"meals"`
	TotalCalories int    `json:"total_calories" mapstructure:"total_calories"`
	Macros        Macros `json:"macros" mapstructure:"macros"`
}

// Plan is the structured result schema. The fallback value is a first-class
// Plan: downstream consumers cannot distinguish it at the type level, only by
// inspecting the Note field.
type Plan struct {
	DailyPlan   []Day    `json:"daily_plan" mapstructure:"daily_plan"`
	GroceryList []string `json:"grocery_list" mapstructure:"grocery_list"`
	Note        string   `json:"note,omitempty" mapstructure:"note"`
}

// FallbackPlan returns the safe default produced when model output cannot be
// parsed. Every required field of the schema is present.
func FallbackPlan() Plan {
	return Plan{
		DailyPlan:   []Day{},
		GroceryList: []string{},
		Note:        "Could not parse meal plan from the model response.",
	}
}

// BuildPrompt renders the deterministic instruction string for the planner.
// Pure function of its inputs.
func BuildPrompt(r Request, bmr, tdee, target float64) string {
	var b strings.Builder
	b.WriteString("You are a certified dietician. ONLY return valid JSON.\n")
	b.WriteString("Do NOT include any extra text before or after the JSON.\n\n")
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Age: %d\n", r.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", r.Gender)
	fmt.Fprintf(&b, "- Height: %.0f cm\n", r.HeightCM)
	fmt.Fprintf(&b, "- Weight: %.0f kg\n", r.WeightKG)
	fmt.Fprintf(&b, "- Activity Level: %s\n", r.Activity)
	fmt.Fprintf(&b, "- Fitness Goal: %s\n", r.Goal)
	fmt.Fprintf(&b, "- Calculated BMR: %.0f kcal\n", bmr)
	fmt.Fprintf(&b, "- Calculated TDEE: %.0f kcal\n", tdee)
	fmt.Fprintf(&b, "- Target Calories per day: %.0f kcal\n", target)
	fmt.Fprintf(&b, "- Dietary Preference: %s\n", r.Preference)
	if g := Guidelines(r.Goal); g != "" {
		b.WriteString("\nGoal-specific dietary guidelines:\n")
		b.WriteString(g)
	}
	b.WriteString(`
Return exactly this JSON structure (no commentary, no markdown):
{
    "daily_plan": [
        {
            "day": "Day 1",
            "meals": [
                {"meal": "Breakfast", "description": "...", "calories": 350},
                {"meal": "Snack 1", "description": "...", "calories": 150},
                {"meal": "Lunch", "description": "...", "calories": 500},
                {"meal": "Snack 2", "description": "...", "calories": 150},
                {"meal": "Dinner", "description": "...", "calories": 500}
            ],
            "total_calories": 1650,
            "macros": {"protein_g": 120, "carbs_g": 180, "fats_g": 50}
        }
    ],
    "grocery_list": ["item1", "item2", "item3"]
}
`)
	return b.String()
}

// Observer receives completion and fallback events for instrumentation.
type Observer interface {
	ObserveCompletion(agent string, err error)
	ObserveFallback(agent string)
}

// Agent wires the planner workflow to its collaborators.
type Agent struct {
	llm      ports.Completer
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

// New creates the diet planner agent.
func New(llm ports.Completer, opts ...Option) *Agent {
	a := &Agent{
		llm: llm,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State field names used by the planner graph.
const (
	fieldRequest = "request"
	fieldBMR     = "bmr"
	fieldTDEE    = "tdee"
	fieldTarget  = "target_calories"
	fieldRaw     = "raw_response"
	fieldPlan    = "plan"
)

// Graph returns the planner workflow: profile arithmetic, then the model
// call with parse-or-fallback.
func (a *Agent) Graph() *workflow.Graph {
	return workflow.New("diet_planner",
		workflow.WithLogger(a.log),
		workflow.WithHooks(a.hooks),
	).
		AddNode("profile", a.profileNode).
		AddNode("meal_plan", a.mealPlanNode).
		Chain("profile", "meal_plan")
}

// profileNode computes BMR, TDEE, and the calorie target from the request.
func (a *Agent) profileNode(ctx context.Context, s *workflow.State) error {
	var req Request
	if err := s.Decode(fieldRequest, &req); err != nil {
		return err
	}
	bmr := BMR(req.Age, req.Gender, req.HeightCM, req.WeightKG)
	tdee := TDEE(bmr, req.Activity)
	s.Set(fieldBMR, bmr)
	s.Set(fieldTDEE, tdee)
	s.Set(fieldTarget, TargetCalories(tdee, req.Goal))
	return nil
}

// mealPlanNode calls the model and parses the plan, degrading to the
// fallback value on any collaborator or parse failure.
func (a *Agent) mealPlanNode(ctx context.Context, s *workflow.State) error {
	var req Request
	if err := s.Decode(fieldRequest, &req); err != nil {
		return err
	}

	prompt := BuildPrompt(req, s.Float(fieldBMR), s.Float(fieldTDEE), s.Float(fieldTarget))

	raw, err := a.llm.Complete(ctx, []domain.Message{domain.User(prompt)})
	if a.observer != nil {
		a.observer.ObserveCompletion("diet", err)
	}
	if err != nil {
		s.Set(fieldPlan, FallbackPlan())
		s.AddNotice("The meal planner is temporarily unavailable.")
		return fmt.Errorf("meal plan completion: %w", err)
	}
	s.Set(fieldRaw, raw)

	var plan Plan
	if !parse.Into(raw, &plan) {
		if a.observer != nil {
			a.observer.ObserveFallback("diet")
		}
		a.log.Warn("meal plan response was not valid JSON", "agent", "diet")
		s.Set(fieldPlan, FallbackPlan())
		s.AddNotice("The model response could not be read as a meal plan.")
		return nil
	}
	s.Set(fieldPlan, plan)
	return nil
}

// Plan validates the request and runs the planner workflow. The returned Plan
// always conforms to the schema shape; err carries the single inline notice
// for collaborator failures and is nil on a clean run.
func (a *Agent) Plan(ctx context.Context, req Request) (Plan, error) {
	if err := req.Validate(); err != nil {
		return Plan{}, err
	}

	state := workflow.NewState()
	state.Set(fieldRequest, req)

	final, runErr := a.Graph().Run(ctx, state)

	var plan Plan
	if err := final.Decode(fieldPlan, &plan); err != nil {
		// The graph guarantees the field; guard anyway.
		plan = FallbackPlan()
	}
	return plan, runErr
}

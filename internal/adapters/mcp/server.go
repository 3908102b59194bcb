// Package mcp exposes the wellness agents as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/serenelab/wellspring/internal/agents/diet"
	"github.com/serenelab/wellspring/internal/agents/mentalhealth"
	"github.com/serenelab/wellspring/internal/agents/physician"
)

// Server wraps the agents and exposes them as an MCP server.
type Server struct {
	diet      *diet.Agent
	physician *physician.Agent
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers the agent tools.
func NewServer(dietAgent *diet.Agent, physicianAgent *physician.Agent, version string) *Server {
	s := &Server{
		diet:      dietAgent,
		physician: physicianAgent,
		mcpServer: server.NewMCPServer("wellspring-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(dietToolSpec(), mcp.NewStructuredToolHandler(s.handleDietPlan))

	// TOOL: physician_triage
	triageTool := mcp.NewTool("physician_triage",
		mcp.WithDescription("Educational triage guidance for reported symptoms. The fallback is safety-biased: see_doctor is true when output cannot be parsed."),
		mcp.WithString("symptoms", mcp.Required(), mcp.Description("Current symptoms")),
		mcp.WithString("duration", mcp.Description("How long the symptoms have lasted")),
		mcp.WithString("chronic", mcp.Description("Known chronic conditions")),
		mcp.WithString("medication", mcp.Description("Current medications")),
		mcp.WithNumber("severity", mcp.Required(), mcp.Description("Severity from 1 to 10")),
		mcp.WithOutputSchema[physician.Triage](),
	)
	s.mcpServer.AddTool(triageTool, mcp.NewStructuredToolHandler(s.handleTriage))

	// TOOL: physician_clinics
	clinicsTool := mcp.NewTool("physician_clinics",
		mcp.WithDescription("List clinics near a location suited to the reported symptoms."),
		mcp.WithString("symptoms", mcp.Required(), mcp.Description("Current symptoms")),
		mcp.WithNumber("severity", mcp.Required(), mcp.Description("Severity from 1 to 10")),
		mcp.WithString("location", mcp.Required(), mcp.Description("City or area to search in")),
		mcp.WithOutputSchema[physician.ClinicList](),
	)
	s.mcpServer.AddTool(clinicsTool, mcp.NewStructuredToolHandler(s.handleClinics))

	// TOOL: gad7_score
	gad7Tool := mcp.NewTool("gad7_score",
		mcp.WithDescription("Score the GAD-7 anxiety questionnaire. Expects a JSON array of seven answers, each 0-3."),
		mcp.WithString("answers", mcp.Required(), mcp.Description("JSON array of 7 integers, e.g. [0,1,2,3,0,1,2]")),
		mcp.WithOutputSchema[mentalhealth.GAD7Result](),
	)
	s.mcpServer.AddTool(gad7Tool, mcp.NewStructuredToolHandler(s.handleGAD7))
}

// dietToolSpec declares the diet_plan tool. The underlying prompt produces a
// single-day plan.
func dietToolSpec() mcp.Tool {
	return mcp.NewTool("diet_plan",
		mcp.WithDescription("Generate a one-day meal plan from a health profile. Falls back to an empty plan with a note when model output cannot be parsed."),
		mcp.WithNumber("age", mcp.Required(), mcp.Description("Age in years (5-100)")),
		mcp.WithString("gender", mcp.Required(), mcp.Description("Gender (Male/Female)")),
		mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimeters")),
		mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms")),
		mcp.WithString("activity", mcp.Description("Activity level: sedentary, light, moderate, active, very active")),
		mcp.WithString("goal", mcp.Description("Goal: Lose Weight, Maintain Weight, Gain Muscle, Improve Overall Health")),
		mcp.WithString("preference", mcp.Description("Dietary preference, e.g. vegetarian")),
		mcp.WithOutputSchema[diet.Plan](),
	)
}

func (s *Server) handleDietPlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (diet.Plan, error) {
	req := diet.Request{
		Age:        intArg(args, "age"),
		Gender:     stringArg(args, "gender"),
		HeightCM:   floatArg(args, "height_cm"),
		WeightKG:   floatArg(args, "weight_kg"),
		Activity:   stringArg(args, "activity"),
		Goal:       stringArg(args, "goal"),
		Preference: stringArg(args, "preference"),
	}
	if err := req.Validate(); err != nil {
		return diet.Plan{}, err
	}

	// Degraded runs still carry a schema-conforming fallback.
	plan, _ := s.diet.Plan(ctx, req)
	return plan, nil
}

func (s *Server) handleTriage(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (physician.Triage, error) {
	intake := physician.Intake{
		Symptoms:   stringArg(args, "symptoms"),
		Duration:   stringArg(args, "duration"),
		Chronic:    stringArg(args, "chronic"),
		Medication: stringArg(args, "medication"),
		Severity:   intArg(args, "severity"),
	}
	if err := intake.Validate(); err != nil {
		return physician.Triage{}, err
	}

	triage, _ := s.physician.Triage(ctx, intake)
	return triage, nil
}

func (s *Server) handleClinics(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (physician.ClinicList, error) {
	intake := physician.Intake{
		Symptoms: stringArg(args, "symptoms"),
		Severity: intArg(args, "severity"),
		Location: stringArg(args, "location"),
	}
	if err := intake.Validate(); err != nil {
		return physician.ClinicList{}, err
	}

	list, _ := s.physician.FindClinics(ctx, intake)
	return list, nil
}

func (s *Server) handleGAD7(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (mentalhealth.GAD7Result, error) {
	raw := stringArg(args, "answers")

	var answers []int
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return mentalhealth.GAD7Result{}, fmt.Errorf("answers must be a JSON array of integers: %w", err)
	}
	return mentalhealth.ScoreGAD7(answers)
}

// -- Argument helpers --

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func floatArg(args map[string]interface{}, key string) float64 {
	v, _ := args[key].(float64)
	return v
}

func intArg(args map[string]interface{}, key string) int {
	return int(floatArg(args, key))
}

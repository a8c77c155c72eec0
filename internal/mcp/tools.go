// ABOUTME: MCP tool implementations for femfit.
// ABOUTME: Plan generation, screening, cycle phase, swaps, and plan history.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/engine"
	"github.com/scar96-claude/femtech-fitness-app/internal/equipment"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
	"github.com/scar96-claude/femtech-fitness-app/internal/screening"
	"github.com/scar96-claude/femtech-fitness-app/internal/storage"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Generate a safety-filtered workout plan (or a full week) for a user and save it to history",
	}, s.handleGeneratePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_profile",
		Description: "Create or update a user's health profile (birth date, cycle data, equipment, injuries)",
	}, s.handleUpdateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_screening_questions",
		Description: "List the health screening questions that apply to a user",
	}, s.handleGetScreeningQuestions)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "process_screening",
		Description: "Score screening answers into pelvic and bone density risk flags and store them on the profile",
	}, s.handleProcessScreening)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "current_phase",
		Description: "Report the training protocol and, for cycle-synced users, the current menstrual phase",
	}, s.handleCurrentPhase)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_alternatives",
		Description: "Find safe replacements for an exercise given the user's flags, injuries, and equipment",
	}, s.handleFindAlternatives)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plans",
		Description: "List recently generated plans for a user",
	}, s.handleListPlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "Get a generated plan by ID or ID prefix",
	}, s.handleGetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a generated plan by ID or ID prefix",
	}, s.handleDeletePlan)
}

// Tool input/output types

type generatePlanInput struct {
	UserID           string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	EquipmentTier    string `json:"equipment_tier,omitempty" jsonschema:"bodyweight, home_gym, or full_gym"`
	FrequencyPerWeek int    `json:"frequency_per_week,omitempty" jsonschema:"Training days per week (2-6)"`
	IncludeCardio    *bool  `json:"include_cardio,omitempty" jsonschema:"Add a cardio finisher"`
	Week             bool   `json:"week,omitempty" jsonschema:"Generate one plan per training day for the week"`
	Date             string `json:"date,omitempty" jsonschema:"Plan date (YYYY-MM-DD), defaults to today"`
	Seed             uint64 `json:"seed,omitempty" jsonschema:"Seed for reproducible selection"`
}

type userInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
}

type updateProfileInput struct {
	UserID          string   `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	DateOfBirth     string   `json:"date_of_birth,omitempty" jsonschema:"Birth date (YYYY-MM-DD), required for new profiles"`
	LastPeriodDate  string   `json:"last_period_date,omitempty" jsonschema:"Start of the most recent period (YYYY-MM-DD)"`
	AvgCycleLength  int      `json:"avg_cycle_length,omitempty" jsonschema:"Average cycle length in days"`
	EquipmentTier   string   `json:"equipment_tier,omitempty" jsonschema:"bodyweight, home_gym, or full_gym"`
	Injuries        []string `json:"injuries,omitempty" jsonschema:"Injured body parts; replaces the stored list when set"`
	ClearInjuries   bool     `json:"clear_injuries,omitempty" jsonschema:"Remove all stored injuries"`
}

type screeningQuestionsInput struct {
	UserID      string `json:"user_id,omitempty" jsonschema:"User ID; their age selects the questions"`
	Demographic string `json:"demographic,omitempty" jsonschema:"reproductive or perimenopause, used when no profile exists"`
}

type processScreeningInput struct {
	UserID  string          `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Answers map[string]bool `json:"answers" jsonschema:"Map of question ID to yes (true) or no (false)"`
}

type currentPhaseInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Date   string `json:"date,omitempty" jsonschema:"Date to evaluate (YYYY-MM-DD), defaults to today"`
}

type findAlternativesInput struct {
	UserID        string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	ExerciseID    string `json:"exercise_id" jsonschema:"Catalog ID of the exercise to replace"`
	EquipmentTier string `json:"equipment_tier,omitempty" jsonschema:"bodyweight, home_gym, or full_gym"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Max results (default 3)"`
}

type listPlansInput struct {
	UserID string `json:"user_id,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max results (default 10)"`
}

type planIDInput struct {
	ID string `json:"id" jsonschema:"Plan ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type screeningOutput struct {
	PelvicRisk         bool     `json:"pelvic_risk"`
	BoneDensityRisk    bool     `json:"bone_density_risk"`
	FlaggedQuestionIDs []string `json:"flagged_question_ids"`
	Saved              bool     `json:"saved"`
	Message            string   `json:"message"`
}

type phaseOutput struct {
	UserID       string               `json:"user_id"`
	Date         string               `json:"date"`
	Protocol     string               `json:"protocol"`
	Phase        string               `json:"phase,omitempty"`
	PhaseDetails *models.PhaseDetails `json:"phase_details,omitempty"`
	Message      string               `json:"message"`
}

type alternativeOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Pattern    string `json:"movement_pattern"`
	Equipment  string `json:"equipment"`
	Difficulty string `json:"difficulty"`
}

// Helpers

func (s *Server) userID(id string) (string, error) {
	if id != "" {
		return id, nil
	}
	if s.opts.DefaultUser != "" {
		return s.opts.DefaultUser, nil
	}
	return "", errors.New("user_id is required (no default user configured)")
}

func (s *Server) tier(raw string) (models.EquipmentTier, error) {
	if raw == "" {
		return s.opts.EquipmentTier, nil
	}
	return equipment.ParseTier(raw)
}

func (s *Server) dateOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return s.opts.Clock(), nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", raw)
	}
	return t, nil
}

// Tool handlers

func (s *Server) handleGeneratePlan(ctx context.Context, req *mcp.CallToolRequest, input generatePlanInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.userID(input.UserID)
	if err != nil {
		return nil, nil, err
	}
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, nil, err
	}

	opts := engine.PlanOptions{
		EquipmentTier:    models.EquipmentTier(input.EquipmentTier),
		FrequencyPerWeek: input.FrequencyPerWeek,
		IncludeCardio:    s.opts.IncludeCardio,
		Date:             date,
		Seed:             s.opts.Seed,
	}
	if opts.EquipmentTier == "" {
		opts.EquipmentTier = s.opts.EquipmentTier
	}
	if opts.FrequencyPerWeek == 0 {
		opts.FrequencyPerWeek = s.opts.Frequency
	}
	if input.IncludeCardio != nil {
		opts.IncludeCardio = *input.IncludeCardio
	}
	if input.Seed != 0 {
		seed := input.Seed
		opts.Seed = &seed
	}

	var plans []*models.Plan
	if input.Week {
		plans, err = s.service.GenerateWeek(ctx, userID, opts)
	} else {
		var plan *models.Plan
		plan, err = s.service.Generate(ctx, userID, opts)
		plans = []*models.Plan{plan}
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate plan: %w", err)
	}

	if err := s.repo.SavePlans(ctx, plans); err != nil {
		return nil, nil, fmt.Errorf("failed to save plan: %w", err)
	}
	s.opts.Log.Infof("mcp: generated %d plan(s) for %s", len(plans), userID)

	if !input.Week {
		return nil, plans[0], nil
	}
	return nil, map[string]any{"plans": plans}, nil
}

func (s *Server) handleUpdateProfile(ctx context.Context, req *mcp.CallToolRequest, input updateProfileInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.userID(input.UserID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		if input.DateOfBirth == "" {
			return nil, nil, fmt.Errorf("date_of_birth is required to create profile %s", userID)
		}
		profile = models.NewProfile(time.Time{})
		profile.UserID = userID
	}

	if input.DateOfBirth != "" {
		dob, err := time.Parse(models.DateLayout, input.DateOfBirth)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_of_birth %q (want YYYY-MM-DD)", input.DateOfBirth)
		}
		profile.DateOfBirth = dob
	}
	if input.LastPeriodDate != "" {
		lp, err := time.Parse(models.DateLayout, input.LastPeriodDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid last_period_date %q (want YYYY-MM-DD)", input.LastPeriodDate)
		}
		profile.WithLastPeriod(lp)
	}
	if input.AvgCycleLength != 0 {
		profile.WithCycleLength(cycle.NormalizeLength(float64(input.AvgCycleLength)))
	}
	if input.EquipmentTier != "" {
		tier, err := equipment.ParseTier(input.EquipmentTier)
		if err != nil {
			return nil, nil, err
		}
		profile.EquipmentTier = tier
	}
	if input.ClearInjuries {
		profile.Injuries = nil
	}
	if len(input.Injuries) > 0 {
		profile.Injuries = nil
		for _, part := range input.Injuries {
			profile.WithInjury(part, "", time.Time{})
		}
	}

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return nil, profile, nil
}

func (s *Server) handleGetScreeningQuestions(ctx context.Context, req *mcp.CallToolRequest, input screeningQuestionsInput) (*mcp.CallToolResult, any, error) {
	demographic := models.Demographic(input.Demographic)

	userID, _ := s.userID(input.UserID)
	if userID != "" {
		profile, err := s.repo.Profile(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load profile: %w", err)
		}
		if profile != nil {
			demographic = router.DemographicFor(profile.DateOfBirth, s.opts.Clock())
		}
	}

	switch demographic {
	case models.DemographicReproductive, models.DemographicPerimenopause:
		return nil, map[string]any{
			"demographic": demographic,
			"questions":   screening.QuestionsFor(demographic),
		}, nil
	case "":
		return nil, map[string]any{"questions": screening.All()}, nil
	default:
		return nil, nil, fmt.Errorf("unknown demographic: %s", demographic)
	}
}

func (s *Server) handleProcessScreening(ctx context.Context, req *mcp.CallToolRequest, input processScreeningInput) (*mcp.CallToolResult, screeningOutput, error) {
	// Answers arrive as a map; walk the question table so results keep a
	// stable order, then append ids the table does not know, sorted.
	var responses []screening.Response
	seen := make(map[string]bool, len(input.Answers))
	for _, q := range screening.All() {
		if answer, ok := input.Answers[q.ID]; ok {
			responses = append(responses, screening.Response{QuestionID: q.ID, Answer: answer})
			seen[q.ID] = true
		}
	}
	var unknown []string
	for id := range input.Answers {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	for _, id := range unknown {
		responses = append(responses, screening.Response{QuestionID: id, Answer: input.Answers[id]})
	}
	result := screening.Process(responses)

	out := screeningOutput{
		PelvicRisk:         result.PelvicRisk,
		BoneDensityRisk:    result.BoneDensityRisk,
		FlaggedQuestionIDs: result.FlaggedQuestionIDs,
	}

	userID, _ := s.userID(input.UserID)
	if userID == "" {
		out.Message = "Screening scored; no user given so nothing was saved."
		return nil, out, nil
	}
	profile, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return nil, screeningOutput{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		out.Message = fmt.Sprintf("Screening scored; no profile for %s so nothing was saved.", userID)
		return nil, out, nil
	}

	result.Apply(profile)
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, screeningOutput{}, fmt.Errorf("failed to save profile: %w", err)
	}
	out.Saved = true
	out.Message = fmt.Sprintf("Updated %s: pelvic risk %t, bone density risk %t", userID, result.PelvicRisk, result.BoneDensityRisk)
	return nil, out, nil
}

func (s *Server) handleCurrentPhase(ctx context.Context, req *mcp.CallToolRequest, input currentPhaseInput) (*mcp.CallToolResult, phaseOutput, error) {
	userID, err := s.userID(input.UserID)
	if err != nil {
		return nil, phaseOutput{}, err
	}
	date, err := s.dateOrToday(input.Date)
	if err != nil {
		return nil, phaseOutput{}, err
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, phaseOutput{}, fmt.Errorf("failed to load profile: %w", err)
	}

	protocol := router.ProtocolFor(profile.DateOfBirth, date)
	out := phaseOutput{UserID: userID, Date: date.Format(models.DateLayout), Protocol: string(protocol)}
	if protocol == models.ProtocolOsteoStrong {
		out.Message = "Osteo Strong protocol: training is not phase-based."
		return nil, out, nil
	}
	if profile.Cycle.LastPeriodDate == nil {
		return nil, phaseOutput{}, fmt.Errorf("no last period date recorded for %s", userID)
	}

	info := cycle.Calculate(*profile.Cycle.LastPeriodDate, date, profile.Cycle.AvgCycleLength)
	details := info.Details()
	out.Phase = string(info.Phase)
	out.PhaseDetails = &details
	out.Message = fmt.Sprintf("Day %d of %d: %s phase (%s intensity), next phase in %d days",
		info.DayOfCycle, info.CycleLength, info.Phase, details.Intensity, info.DaysUntilNextPhase)
	return nil, out, nil
}

func (s *Server) handleFindAlternatives(ctx context.Context, req *mcp.CallToolRequest, input findAlternativesInput) (*mcp.CallToolResult, any, error) {
	userID, err := s.userID(input.UserID)
	if err != nil {
		return nil, nil, err
	}
	tier, err := s.tier(input.EquipmentTier)
	if err != nil {
		return nil, nil, err
	}

	alts, err := s.service.Alternatives(ctx, userID, tier, input.ExerciseID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find alternatives: %w", err)
	}
	if len(alts) == 0 {
		return nil, simpleOutput{Message: fmt.Sprintf("No safe alternatives for %s.", input.ExerciseID)}, nil
	}

	out := make([]alternativeOutput, 0, len(alts))
	for _, a := range alts {
		out = append(out, alternativeOutput{
			ID:         a.ID,
			Name:       a.Name,
			Pattern:    string(a.MovementPattern),
			Equipment:  string(a.Equipment),
			Difficulty: string(a.Difficulty),
		})
	}
	return nil, map[string]any{"exercise_id": input.ExerciseID, "alternatives": out}, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input listPlansInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 10
	}
	userID, err := s.userID(input.UserID)
	if err != nil {
		return nil, nil, err
	}

	plans, err := s.repo.ListPlans(ctx, userID, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if len(plans) == 0 {
		return nil, map[string]any{"message": "No plans found."}, nil
	}

	summaries := make([]map[string]any, 0, len(plans))
	for _, p := range plans {
		summary := map[string]any{
			"id":        p.ID.String()[:8],
			"date":      p.Date,
			"protocol":  p.Protocol,
			"exercises": p.ExerciseIDs(),
			"minutes":   p.EstimatedDurationMinutes,
		}
		if p.Phase != nil {
			summary["phase"] = *p.Phase
		}
		summaries = append(summaries, summary)
	}
	return nil, map[string]any{"plans": summaries}, nil
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input planIDInput) (*mcp.CallToolResult, any, error) {
	p, err := s.repo.GetPlan(ctx, input.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("plan not found: %s", input.ID)
		}
		return nil, nil, err
	}
	return nil, p, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, req *mcp.CallToolRequest, input planIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeletePlan(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete plan: %w", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted plan: %s", input.ID)}, nil
}

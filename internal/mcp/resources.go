// ABOUTME: MCP resource implementations for femfit.
// ABOUTME: Provides femfit://profile, femfit://plans/recent, and femfit://catalog resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scar96-claude/femtech-fitness-app/internal/cycle"
	"github.com/scar96-claude/femtech-fitness-app/internal/models"
	"github.com/scar96-claude/femtech-fitness-app/internal/router"
)

const (
	profileURI     = "femfit://profile"
	recentPlansURI = "femfit://plans/recent"
	catalogURI     = "femfit://catalog"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         profileURI,
		Name:        "Current Profile",
		Description: "The default user's profile with protocol and current cycle phase",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentPlansURI,
		Name:        "Recent Plans",
		Description: "Last 10 generated plans for the default user",
		MIMEType:    "application/json",
	}, s.handleRecentPlansResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Exercise Catalog",
		Description: "Every exercise in the active catalog with its safety flags",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)
}

// Resource handlers

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.userID("")
	if err != nil {
		return nil, err
	}
	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	now := s.opts.Clock()
	protocol := router.ProtocolFor(profile.DateOfBirth, now)
	result := map[string]interface{}{
		"profile":  profile,
		"age":      router.Age(profile.DateOfBirth, now),
		"protocol": protocol,
	}
	if protocol == models.ProtocolCycleSync && profile.Cycle.LastPeriodDate != nil {
		info := cycle.Calculate(*profile.Cycle.LastPeriodDate, now, profile.Cycle.AvgCycleLength)
		result["phase"] = info.Phase
		result["phase_details"] = info.Details()
	}

	return jsonResource(profileURI, result)
}

func (s *Server) handleRecentPlansResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	userID, err := s.userID("")
	if err != nil {
		return nil, err
	}
	plans, err := s.repo.ListPlans(ctx, userID, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if plans == nil {
		plans = []*models.Plan{}
	}

	return jsonResource(recentPlansURI, map[string]interface{}{
		"user_id": userID,
		"plans":   plans,
		"count":   len(plans),
	})
}

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.catalog.Exercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return jsonResource(catalogURI, map[string]interface{}{
		"exercises": exercises,
		"count":     len(exercises),
	})
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

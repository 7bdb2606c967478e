package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

var resTodayPlan = mcp.NewResource(
	"liftlog://today_plan",
	"Today's Plan",
	mcp.WithResourceDescription("The workout prescribed for today under the default cycle state (week 1, alternating week types)"),
	mcp.WithMIMEType("application/json"),
)

var resProgram = mcp.NewResource(
	"liftlog://program",
	"Training Program",
	mcp.WithResourceDescription("The active training program: name, cycle length, and week types"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The ten most recently logged workouts"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) todayPlan(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	plan := h.scheduler.TodayPlan(time.Time{}, "", time.Time{})
	return jsonResource(req, plan)
}

func (h *handlers) programInfo(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req, map[string]any{
		"program":    h.scheduler.Info(),
		"week_types": h.scheduler.WeekTypeLabels(),
	})
}

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.QueryWorkoutLogs(ctx, UserIDFromContext(ctx), 10)
	if err != nil {
		return nil, err
	}
	return jsonResource(req, workouts)
}

func jsonResource(req mcp.ReadResourceRequest, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

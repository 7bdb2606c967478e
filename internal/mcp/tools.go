package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/program"
	"github.com/claude/liftlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools registered.
func New(ds DataSource, scheduler *program.Scheduler, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracking server. Resolve the periodized training program (what is prescribed today, any day, or a full week) and query logged workouts, training volume, and estimated one-rep maxes. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, scheduler: scheduler, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetProgramInfo, Handler: h.getProgramInfo},
		server.ServerTool{Tool: toolGetTodayWorkout, Handler: h.getTodayWorkout},
		server.ServerTool{Tool: toolGetDayWorkout, Handler: h.getDayWorkout},
		server.ServerTool{Tool: toolGetWeekPlan, Handler: h.getWeekPlan},
		server.ServerTool{Tool: toolGetWeeklyVolume, Handler: h.getWeeklyVolume},
		server.ServerTool{Tool: toolGetBest1RMs, Handler: h.getBest1RMs},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetTrainingStats, Handler: h.getTrainingStats},
	)

	s.AddResources(
		server.ServerResource{Resource: resTodayPlan, Handler: h.todayPlan},
		server.ServerResource{Resource: resProgram, Handler: h.programInfo},
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
	)

	return s
}

// parseFlexDate accepts RFC 3339 or plain dates.
func parseFlexDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// rangeOrDefault resolves a start/end pair, defaulting to the last
// daysBack days ending now.
func rangeOrDefault(startStr, endStr string, daysBack int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now().UTC()
	}

	if startStr != "" {
		start, err = parseFlexDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -daysBack)
	}

	return start, end, nil
}

// --- Tool definitions ---

var toolGetProgramInfo = mcp.NewTool("get_program_info",
	mcp.WithDescription("Get the training program's name, description, cycle length, and available week types."),
)

var toolGetTodayWorkout = mcp.NewTool("get_today_workout",
	mcp.WithDescription("Resolve the workout prescribed for today: session, exercises, sets and reps adjusted for the current week of the periodization cycle."),
	mcp.WithString("start", mcp.Description("Program start date (YYYY-MM-DD). Defaults to today, i.e. week 1.")),
	mcp.WithString("week_type", mcp.Description("Explicit week type override (e.g. 'A' or 'B'). Defaults to alternating by week.")),
	mcp.WithString("date", mcp.Description("Reference date to resolve for (YYYY-MM-DD). Defaults to today.")),
)

var toolGetDayWorkout = mcp.NewTool("get_day_workout",
	mcp.WithDescription("Resolve the prescribed workout for an explicit week type, weekday, and cycle week."),
	mcp.WithString("week_type", mcp.Required(), mcp.Description("Week type key (e.g. 'A' or 'B')")),
	mcp.WithString("day", mcp.Description("Weekday name (e.g. 'Monday'). Ignored for legacy split programs.")),
	mcp.WithNumber("week", mcp.Description("Week of the cycle, 1-indexed. Defaults to 1.")),
)

var toolGetWeekPlan = mcp.NewTool("get_week_plan",
	mcp.WithDescription("Get a full week's schedule for a week type: one resolved workout per scheduled day."),
	mcp.WithString("week_type", mcp.Required(), mcp.Description("Week type key (e.g. 'A' or 'B')")),
	mcp.WithNumber("week", mcp.Description("Week of the cycle, 1-indexed. Defaults to 1.")),
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Per-exercise training volume (sets x reps x weight), set count, and rep count over a date range."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetBest1RMs = mcp.NewTool("get_best_1rms",
	mcp.WithDescription("Best estimated one-rep max per exercise over a date range (Epley formula with RPE adjustment)."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 28 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("List the most recent logged workouts with date, name, week type, and cycle week."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts. Defaults to 10.")),
)

var toolGetTrainingStats = mcp.NewTool("get_training_stats",
	mcp.WithDescription("Aggregate totals: workout count, set count, date range of logged data, and workout counts by name."),
)

// --- Tool handlers ---

func (h *handlers) getProgramInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(map[string]any{
		"program":    h.scheduler.Info(),
		"week_types": h.scheduler.WeekTypeLabels(),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTodayWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var start, reference time.Time
	if v := req.GetString("start", ""); v != "" {
		parsed, err := parseFlexDate(v)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
		start = parsed
	}
	if v := req.GetString("date", ""); v != "" {
		parsed, err := parseFlexDate(v)
		if err != nil {
			return mcp.NewToolResultError("invalid reference date: " + err.Error()), nil
		}
		reference = parsed
	}

	plan := h.scheduler.TodayPlan(start, req.GetString("week_type", ""), reference)
	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDayWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekType, err := req.RequireString("week_type")
	if err != nil {
		return mcp.NewToolResultError("week_type parameter is required"), nil
	}

	plan := h.scheduler.DayPlan(weekType, req.GetString("day", ""), weekParam(req))
	result, err := mcp.NewToolResultJSON(plan)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekPlan(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekType, err := req.RequireString("week_type")
	if err != nil {
		return mcp.NewToolResultError("week_type parameter is required"), nil
	}

	sched := h.scheduler.WeekPlan(weekType, weekParam(req))
	result, err := mcp.NewToolResultJSON(sched)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := rangeOrDefault(req.GetString("start", ""), req.GetString("end", ""), 7)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sets, err := h.ds.QuerySetsInRange(ctx, UserIDFromContext(ctx), start, end)
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.WeeklyVolume(sets))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBest1RMs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := rangeOrDefault(req.GetString("start", ""), req.GetString("end", ""), 28)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	sets, err := h.ds.QuerySetsInRange(ctx, UserIDFromContext(ctx), start, end)
	if err != nil {
		h.log.Error("mcp get_best_1rms", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats.BestEstimated1RMs(sets))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	workouts, err := h.ds.QueryWorkoutLogs(ctx, UserIDFromContext(ctx), limit)
	if err != nil {
		h.log.Error("mcp get_recent_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dataStats, err := h.ds.GetDataStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_training_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(dataStats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func weekParam(req mcp.CallToolRequest) int {
	week := req.GetInt("week", 1)
	if week < 1 {
		return 1
	}
	return week
}

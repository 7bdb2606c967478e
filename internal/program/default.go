package program

// Default returns the built-in session-structured program used when no
// program file is available: alternating A/B weeks with a 3+1
// progressive-load/deload cycle.
func Default() Program {
	return Program{
		Name:        "Default 3+1 Program",
		Description: "Alternating A/B weeks with progressive load and deload.",
		CycleWeeks:  4,
		Weeks: map[string]WeekTemplate{
			"A": {
				"Monday":   "strength_day",
				"Thursday": "upper_pull",
				"Saturday": "conditioning",
			},
			"B": {
				"Monday":   "strength_day",
				"Thursday": "upper_push",
				"Saturday": "conditioning",
			},
		},
		Sessions: map[string]Session{
			"strength_day": {
				Name:        "Lower Body Strength",
				Description: "Main lower body strength session.",
				Exercises: []Exercise{
					{Name: "Back Squat", Sets: FlexInts{4, 4, 4, 3}, Reps: FlexInts{6, 5, 4, 6}},
					{Name: "Romanian Deadlift", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{8, 8, 6, 8}},
					{Name: "Split Squat", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{10, 10, 8, 10}},
				},
			},
			"upper_pull": {
				Name:        "Upper Pull Focus",
				Description: "Back and posterior chain accessories.",
				Exercises: []Exercise{
					{Name: "Pull Ups", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{8, 8, 6, 8}},
					{Name: "Barbell Row", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{10, 8, 8, 10}},
					{Name: "Face Pull", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{15, 15, 12, 15}},
				},
			},
			"upper_push": {
				Name:        "Upper Push Focus",
				Description: "Horizontal and vertical pressing.",
				Exercises: []Exercise{
					{Name: "Bench Press", Sets: FlexInts{4, 4, 4, 3}, Reps: FlexInts{8, 6, 5, 8}},
					{Name: "Overhead Press", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{10, 8, 6, 10}},
					{Name: "Dip", Sets: FlexInts{3, 3, 3, 2}, Reps: FlexInts{12, 10, 8, 12}},
				},
			},
			"conditioning": {
				Name:        "Conditioning & Core",
				Description: "Light conditioning with core work.",
				Exercises: []Exercise{
					{Name: "Bike Sprint", Sets: FlexInts{6, 6, 6, 4}, Reps: FlexInts{20, 20, 20, 15}},
					{Name: "Plank", Sets: FlexInts{3, 3, 3, 3}, Reps: FlexInts{45, 45, 45, 30}},
					{Name: "Side Plank", Sets: FlexInts{2, 2, 2, 2}, Reps: FlexInts{30, 30, 30, 20}},
				},
			},
		},
	}
}

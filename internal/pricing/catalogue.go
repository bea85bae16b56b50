package pricing

// DefaultProducts is the starter catalogue installed for a company that has
// not configured any product yet.
func DefaultProducts() []InsuranceProduct {
	return []InsuranceProduct{
		{
			Type:        "auto",
			DisplayName: "Auto Insurance",
			BasePrice:   500,
			Fields: []RatingField{
				NewRangeField("age", "What is your age?", 1.07,
					FieldBracket{Min: 18, Max: 25, Multiplier: 1.3},
					FieldBracket{Min: 26, Max: 40, Multiplier: 1.0},
					FieldBracket{Min: 41, Max: 65, Multiplier: 1.05},
					FieldBracket{Min: 66, Max: 99, Multiplier: 1.2},
				),
				NewSelectField("gender", "What is your gender?", 1.0,
					FieldOption{Value: "Male", Multiplier: 1.05},
					FieldOption{Value: "Female", Multiplier: 1.0},
					FieldOption{Value: "Other", Multiplier: 1.0},
				),
				NewSelectField("country", "In which country do you live?", 1.0,
					FieldOption{Value: "USA", Multiplier: 1.0},
					FieldOption{Value: "Canada", Multiplier: 0.9},
					FieldOption{Value: "UK", Multiplier: 1.1},
					FieldOption{Value: "Australia", Multiplier: 1.05},
					FieldOption{Value: "Other", Multiplier: 1.15},
				),
			},
		},
		{
			Type:        "home",
			DisplayName: "Home Insurance",
			BasePrice:   800,
			Fields: []RatingField{
				NewRangeField("propertyValue", "What is the approximate value of your property?", 1.1,
					FieldBracket{Min: 0, Max: 100000, Multiplier: 0.8},
					FieldBracket{Min: 100001, Max: 250000, Multiplier: 0.9},
					FieldBracket{Min: 250001, Max: 500000, Multiplier: 1.0},
					FieldBracket{Min: 500001, Max: 1000000, Multiplier: 1.2},
					FieldBracket{Min: 1000001, Max: 10000000, Multiplier: 1.5},
				),
				NewRangeField("propertyAge", "How old is your property (in years)?", 1.05,
					FieldBracket{Min: 0, Max: 5, Multiplier: 0.9},
					FieldBracket{Min: 6, Max: 15, Multiplier: 1.0},
					FieldBracket{Min: 16, Max: 30, Multiplier: 1.1},
					FieldBracket{Min: 31, Max: 50, Multiplier: 1.25},
					FieldBracket{Min: 51, Max: 100, Multiplier: 1.4},
				),
				NewSelectField("country", "In which country is your property located?", 1.0,
					FieldOption{Value: "USA", Multiplier: 1.0},
					FieldOption{Value: "Canada", Multiplier: 0.9},
					FieldOption{Value: "UK", Multiplier: 1.1},
					FieldOption{Value: "Australia", Multiplier: 1.05},
					FieldOption{Value: "Other", Multiplier: 1.15},
				),
			},
		},
		{
			Type:        "life",
			DisplayName: "Life Insurance",
			BasePrice:   300,
			Fields: []RatingField{
				NewRangeField("age", "What is your age?", 1.1,
					FieldBracket{Min: 18, Max: 30, Multiplier: 0.7},
					FieldBracket{Min: 31, Max: 40, Multiplier: 0.8},
					FieldBracket{Min: 41, Max: 50, Multiplier: 1.0},
					FieldBracket{Min: 51, Max: 60, Multiplier: 1.3},
					FieldBracket{Min: 61, Max: 70, Multiplier: 1.8},
					FieldBracket{Min: 71, Max: 99, Multiplier: 2.5},
				),
				NewSelectField("smoker", "Are you a smoker?", 1.0,
					FieldOption{Value: "Yes", Multiplier: 1.5},
					FieldOption{Value: "No", Multiplier: 1.0},
				),
				NewSelectField("gender", "What is your gender?", 1.0,
					FieldOption{Value: "Male", Multiplier: 1.1},
					FieldOption{Value: "Female", Multiplier: 1.0},
					FieldOption{Value: "Other", Multiplier: 1.05},
				),
			},
		},
		{
			Type:        "health",
			DisplayName: "Health Insurance",
			BasePrice:   400,
			Fields: []RatingField{
				NewRangeField("age", "What is your age?", 1.05,
					FieldBracket{Min: 0, Max: 18, Multiplier: 0.7},
					FieldBracket{Min: 19, Max: 35, Multiplier: 0.9},
					FieldBracket{Min: 36, Max: 50, Multiplier: 1.0},
					FieldBracket{Min: 51, Max: 65, Multiplier: 1.3},
					FieldBracket{Min: 66, Max: 99, Multiplier: 1.6},
				),
				NewSelectField("preexistingConditions", "Do you have any pre-existing medical conditions?", 1.0,
					FieldOption{Value: "Yes", Multiplier: 1.3},
					FieldOption{Value: "No", Multiplier: 1.0},
				),
				NewSelectField("coverageLevel", "What level of coverage do you need?", 1.0,
					FieldOption{Value: "Basic", Multiplier: 0.8},
					FieldOption{Value: "Standard", Multiplier: 1.0},
					FieldOption{Value: "Premium", Multiplier: 1.4},
				),
			},
		},
	}
}

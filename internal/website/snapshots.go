package website

// Fixed illustrative snapshots for sections without a wired backend.
// These are documented stand-ins for external systems: the orchestrator
// depends only on the Result envelope, not on this content being live.

func tasksSnapshot() TasksData {
	return TasksData{
		ActiveTasks: []FarmTask{
			{ID: 1, Title: "Water vegetable garden", Priority: "high", Due: "Today 8:00 AM"},
			{ID: 2, Title: "Check livestock feed", Priority: "medium", Due: "Today 10:00 AM"},
			{ID: 3, Title: "Fertilize crop field A", Priority: "high", Due: "Yesterday", Status: "overdue"},
		},
		CompletedTasks: 12,
		PendingTasks:   8,
		Categories:     []string{"irrigation", "livestock", "fertilization", "harvesting", "maintenance"},
	}
}

func cropSnapshot() CropData {
	return CropData{
		RecommendedCrops: []CropRecommendation{
			{Name: "Wheat", Season: "Rabi", Suitability: 95, ExpectedYield: "4.5 tonnes/hectare"},
			{Name: "Rice", Season: "Kharif", Suitability: 88, ExpectedYield: "3.8 tonnes/hectare"},
			{Name: "Sugarcane", Season: "Annual", Suitability: 82, ExpectedYield: "75 tonnes/hectare"},
		},
		SoilConditions: map[string]any{
			"pH": 6.8, "nitrogen": "Medium", "phosphorus": "High", "potassium": "Medium",
		},
		WeatherFactors: map[string]string{
			"rainfall": "Normal", "temperature": "Optimal", "humidity": "Moderate",
		},
	}
}

func communitySnapshot() CommunityData {
	return CommunityData{
		RecentPosts: []CommunityPost{
			{User: "Farmer John", Content: "Great harvest this season! Rice yield exceeded expectations.", Likes: 45, Comments: 12},
			{User: "AgriExpert", Content: "Tips for pest control in cotton farming", Likes: 32, Comments: 8},
			{User: "CropScientist", Content: "New organic fertilizer showing promising results", Likes: 28, Comments: 15},
		},
		ActiveGroups:   []string{"Rice Farmers", "Organic Farming", "Pest Control", "Government Schemes"},
		TrendingTopics: []string{"Market Prices", "Weather Updates", "Crop Disease", "Government Subsidies"},
	}
}

func farmSnapshot() FarmData {
	return FarmData{
		FarmInfo: FarmInfo{
			Name:        "Green Valley Farm",
			Size:        "25 hectares",
			Location:    "Punjab, India",
			SoilType:    "Alluvial",
			WaterSource: "Tube well + Canal irrigation",
		},
		CurrentCrops: []FarmCrop{
			{Name: "Wheat", Area: "10 hectares", Stage: "Harvesting", Health: "Excellent"},
			{Name: "Rice", Area: "8 hectares", Stage: "Flowering", Health: "Good"},
			{Name: "Sugarcane", Area: "7 hectares", Stage: "Growing", Health: "Fair"},
		},
		Equipment:        []string{"Tractor", "Harvester", "Irrigation System", "Sprayer"},
		RecentActivities: []string{"Applied fertilizer to wheat field", "Irrigation schedule updated", "Pest control in rice field"},
	}
}

func schemesSnapshot() SchemesData {
	return SchemesData{
		AvailableSchemes: []GovernmentScheme{
			{
				Name:           "PM-KISAN",
				Description:    "Direct income support to farmer families",
				Benefit:        "₹6,000 per year",
				Eligibility:    "All landholding farmer families",
				ApplicationURL: "https://pmkisan.gov.in",
			},
			{
				Name:           "Kisan Credit Card",
				Description:    "Credit facility for agricultural needs",
				Benefit:        "Flexible credit limit",
				Eligibility:    "Farmers with land records",
				ApplicationURL: "https://www.nabard.org/kcc",
			},
			{
				Name:           "PMFBY",
				Description:    "Crop insurance scheme",
				Benefit:        "Crop loss compensation",
				Eligibility:    "All farmers growing notified crops",
				ApplicationURL: "https://pmfby.gov.in",
			},
		},
		RecentUpdates: []string{
			"New subsidy for organic farming",
			"Extended deadline for KCC applications",
		},
		ApplicationStatus: map[string]string{
			"PM-KISAN": "Approved",
			"KCC":      "Pending",
			"PMFBY":    "Not Applied",
		},
	}
}

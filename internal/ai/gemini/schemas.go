package gemini

import "github.com/google/generative-ai-go/genai"

// Response schemas handed to the model so the output parses as typed data.
// Descriptions double as hints to the model, mirroring the dashboard's
// expectations field by field.

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func numberField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: description}
}

func stringArray(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items:       &genai.Schema{Type: genai.TypeString},
	}
}

func enumField(description string, values ...string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Format:      "enum",
		Description: description,
		Enum:        values,
	}
}

func analysisObject() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"status":         stringField("Status classification"),
			"recommendation": stringField("Specific recommendation"),
		},
		Required: []string{"status", "recommendation"},
	}
}

func nutrientObject() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"level":          enumField("Nutrient level", "Low", "Medium", "High", "Optimal"),
			"recommendation": stringField("Fertilizer recommendation"),
		},
		Required: []string{"level", "recommendation"},
	}
}

var SoilAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"overallHealth":    enumField("Overall soil health", "Excellent", "Good", "Fair", "Poor"),
		"healthScore":      numberField("Health score from 0 to 100"),
		"phAnalysis":       analysisObject(),
		"moistureAnalysis": analysisObject(),
		"nutrientAnalysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"nitrogen":   nutrientObject(),
				"phosphorus": nutrientObject(),
				"potassium":  nutrientObject(),
			},
			Required: []string{"nitrogen", "phosphorus", "potassium"},
		},
		"organicMatter":   nutrientObject(),
		"recommendations": stringArray("Actionable recommendations to improve soil health"),
		"bestCrops":       stringArray("Crops best suited for this soil condition"),
		"warnings":        stringArray("Warnings or concerns about the soil condition"),
	},
	Required: []string{
		"overallHealth", "healthScore", "phAnalysis", "moistureAnalysis",
		"nutrientAnalysis", "organicMatter", "recommendations", "bestCrops", "warnings",
	},
}

var RecommendationsListSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"recommendations": {
			Type:        genai.TypeArray,
			Description: "List of crop recommendations",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"crop":           stringField("Crop name"),
					"yield":          stringField("Expected yield in tons/ha"),
					"profit":         stringField("Estimated profit in rupees"),
					"season":         stringField("Best season to plant"),
					"waterNeeded":    stringField("Water requirement in mm"),
					"fertilizer":     stringField("Recommended fertilizer NPK ratio"),
					"daysToMaturity": {Type: genai.TypeInteger, Description: "Days to harvest"},
					"marketPrice":    stringField("Current market price"),
					"risk":           enumField("Risk level", "Low", "Medium", "High"),
					"reason":         stringField("Why this crop is recommended"),
				},
				Required: []string{
					"crop", "yield", "profit", "season", "waterNeeded",
					"fertilizer", "daysToMaturity", "marketPrice", "risk", "reason",
				},
			},
		},
	},
	Required: []string{"recommendations"},
}

var YieldPredictionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"yieldPerHectare": numberField("Predicted yield per hectare in tons"),
		"totalYield":      numberField("Total yield for the given area in tons"),
		"revenue":         numberField("Estimated revenue in rupees"),
		"profit":          numberField("Estimated profit in rupees"),
		"profitMargin":    stringField("Profit margin percentage"),
		"marketPrice":     numberField("Market price per quintal"),
		"riskFactors":     stringArray("Identified risk factors"),
	},
	Required: []string{
		"yieldPerHectare", "totalYield", "revenue", "profit",
		"profitMargin", "marketPrice", "riskFactors",
	},
}

var DiseaseAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"disease":         stringField("Name of the detected disease"),
		"confidence":      numberField("Confidence percentage (0-100)"),
		"cropHealth":      numberField("Crop health percentage (0-100)"),
		"severity":        enumField("Severity level", "Low", "Medium", "High"),
		"cause":           stringField("Root cause of the disease"),
		"whyHappened":     stringArray("Reasons why the disease occurred"),
		"harmfulness":     stringField("Potential impact on yield"),
		"treatment":       stringArray("Treatment steps"),
		"prevention":      stringArray("Prevention measures"),
		"affectedArea":    stringField("Percentage of crop affected"),
		"recommendations": stringArray("Specific recommendations"),
	},
	Required: []string{
		"disease", "confidence", "cropHealth", "severity", "cause", "whyHappened",
		"harmfulness", "treatment", "prevention", "affectedArea", "recommendations",
	},
}

var CropValidationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isValid":        {Type: genai.TypeBoolean, Description: "Whether the crop name is valid"},
		"standardName":   stringField("Standardized crop name"),
		"scientificName": stringField("Scientific name of the crop"),
		"category":       stringField("Crop category (e.g., cereal, vegetable, fruit)"),
		"suitableForPH": {
			Type:        genai.TypeObject,
			Description: "Suitable soil pH range",
			Properties: map[string]*genai.Schema{
				"min": numberField("Lower bound of suitable pH"),
				"max": numberField("Upper bound of suitable pH"),
			},
			Required: []string{"min", "max"},
		},
		"suitableForLocation": {Type: genai.TypeBoolean, Description: "Whether suitable for the given location"},
		"growingSeasons":      stringArray("Best growing seasons"),
		"averageYield":        stringField("Average yield per hectare"),
		"waterRequirement":    stringField("Water requirement level (low/medium/high)"),
		"suggestions":         stringField("Suggestions or warnings about this crop"),
	},
	Required: []string{
		"isValid", "standardName", "scientificName", "category", "suitableForPH",
		"suitableForLocation", "growingSeasons", "averageYield", "waterRequirement", "suggestions",
	},
}

var MonitoringAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"alerts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": enumField("Alert category",
						"soil_moisture", "soil_ph", "temperature", "weather", "disease", "pest", "market"),
					"severity":        enumField("Alert severity", "info", "warning", "critical"),
					"message":         stringField("Clear message for the farmer"),
					"recommendations": stringField("Specific recommendations"),
				},
				Required: []string{"type", "severity", "message", "recommendations"},
			},
		},
		"overallHealth": enumField("Overall crop health", "healthy", "warning", "critical"),
		"summary":       stringField("Summary of findings"),
	},
	Required: []string{"alerts", "overallHealth", "summary"},
}

var MarketDataSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"cropName": stringField("Crop name"),
		"markets": {
			Type:        genai.TypeArray,
			Description: "Array of 4-6 different market prices",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"market":     stringField("Market/Mandi name"),
					"district":   stringField("District name"),
					"state":      stringField("State name"),
					"variety":    stringField("Crop variety"),
					"grade":      stringField("Grade (A, B, C, etc.)"),
					"modalPrice": numberField("Modal/average price per quintal in rupees"),
					"minPrice":   numberField("Minimum price per quintal in rupees"),
					"maxPrice":   numberField("Maximum price per quintal in rupees"),
				},
				Required: []string{
					"market", "district", "state", "variety", "grade",
					"modalPrice", "minPrice", "maxPrice",
				},
			},
		},
		"averagePrice": numberField("Average price across all markets"),
		"bestMarket":   stringField("Name of market with highest price"),
		"worstMarket":  stringField("Name of market with lowest price"),
		"priceRange":   stringField("Price range description"),
	},
	Required: []string{"cropName", "markets", "averagePrice", "bestMarket", "worstMarket", "priceRange"},
}

var MarketAnalysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"marketSummary":   stringField("Overall market analysis and current trends"),
		"recommendations": stringField("Strategic recommendations for farmers"),
		"forecast":        stringField("Price forecast for next 2-4 weeks"),
		"bestTimeToSell":  stringField("Optimal selling strategy and timing"),
	},
	Required: []string{"marketSummary", "recommendations", "forecast", "bestTimeToSell"},
}

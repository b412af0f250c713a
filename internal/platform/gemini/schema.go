package gemini

import "google.golang.org/genai"

// SafetySettings returns the moderation thresholds attached to every request.
// The source text may be legitimate but sensitive educational material, so
// dangerous content is not blocked while harassment and explicit content keep
// a floor. A new slice is returned on each call so callers cannot mutate the
// shared policy.
func SafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockOnlyHigh},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockLowAndAbove},
	}
}

// ResponseSchema describes the only accepted response shape:
// {"cards": [{"question": string, "answer": string}, ...]}.
func ResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cards": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString},
						"answer":   {Type: genai.TypeString},
					},
					Required:         []string{"question", "answer"},
					PropertyOrdering: []string{"question", "answer"},
				},
			},
		},
		Required: []string{"cards"},
	}
}

func generateContentConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
		SafetySettings:   SafetySettings(),
	}
}

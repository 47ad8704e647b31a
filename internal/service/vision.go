package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nutrilens/backend/config"
)

// NutritionInfo is the per-meal nutrition estimate returned by the vision
// model. Calories are kcal, the rest are grams.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
}

// FoodDetail is an optional per-food breakdown. Every field may be absent.
type FoodDetail struct {
	Name     string   `json:"name,omitempty"`
	Calories *float64 `json:"calories,omitempty"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fats     *float64 `json:"fats,omitempty"`
	Fiber    *float64 `json:"fiber,omitempty"`
}

// FoodAnalysisResult is the validated shape of a vision-model reply.
type FoodAnalysisResult struct {
	Foods       []string      `json:"foods"`
	Nutrition   NutritionInfo `json:"nutrition"`
	Analysis    string        `json:"analysis"`
	Suggestions []string      `json:"suggestions"`
	FoodDetails []FoodDetail  `json:"foodDetails,omitempty"`
}

// InvalidResponseError reports a provider reply that does not match the
// expected schema. It is a distinct failure kind from the provider call
// itself failing and maps to a client-visible validation error.
type InvalidResponseError struct {
	Details []string
}

func (e *InvalidResponseError) Error() string {
	return "invalid response format: " + strings.Join(e.Details, "; ")
}

// responseLanguages maps supported language codes to the language the model
// is asked to answer in.
var responseLanguages = map[string]string{
	"pt": "Brazilian Portuguese",
	"en": "English",
	"es": "Spanish",
}

// VisionService handles interactions with the OpenAI-compatible vision API.
type VisionService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewVisionService creates a new VisionService instance. The API key comes
// from the configuration or, as a fallback, from a file named by
// OPENAI_API_KEY_FILE.
func NewVisionService(cfg *config.Config) (*VisionService, error) {
	apiKey := cfg.OpenAIAPIKey
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	return &VisionService{
		apiKey: apiKey,
		apiURL: cfg.OpenAIAPIURL,
		model:  cfg.OpenAIModel,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// chatMessage is one message in a chat-completions request. Content holds
// mixed text and image parts.
type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

// chatRequest is the request body for the chat-completions endpoint.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
	MaxTokens      int               `json:"max_tokens"`
}

// AnalyzeFood sends the image to the vision model and returns the validated
// nutrition estimate. A failed call yields a plain error; a reply that does
// not match the expected schema yields an *InvalidResponseError.
func (s *VisionService) AnalyzeFood(ctx context.Context, image []byte, lang string) (*FoodAnalysisResult, error) {
	prompt := buildPrompt(lang)
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		MaxTokens:      800,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no response from API")
	}

	content := result.Choices[0].Message.Content
	if content == "" {
		return nil, fmt.Errorf("empty response from API")
	}

	return parseFoodAnalysis([]byte(content))
}

// buildPrompt produces the analysis prompt, instructing the model to answer
// in the resolved language.
func buildPrompt(lang string) string {
	responseLang, ok := responseLanguages[lang]
	if !ok {
		responseLang = responseLanguages["pt"]
	}

	return fmt.Sprintf(`Analyze this food image in detail. Identify all food items visible and provide comprehensive nutritional information about the meal.

For your response, provide:
1. A list of all food items you can identify
2. The estimated nutritional values (calories, protein, carbs, fats, fiber)
3. A brief analysis of the meal's nutritional profile
4. Some suggestions to improve the meal if needed

Write the "analysis" text, food names and suggestions in %s.

Format your response as a JSON object with the following structure:
{
  "foods": ["food item 1", "food item 2"],
  "nutrition": {
    "calories": number (kcal),
    "protein": number (g),
    "carbs": number (g),
    "fats": number (g),
    "fiber": number (g)
  },
  "analysis": "text describing the nutritional value of the meal",
  "suggestions": ["suggestion 1", "suggestion 2"],
  "foodDetails": [
    {"name": "food item 1", "calories": number, "protein": number, "carbs": number, "fats": number, "fiber": number}
  ]
}`, responseLang)
}

// visionPayload mirrors the provider reply with optional fields so missing
// values can be reported individually.
type visionPayload struct {
	Foods       *[]string        `json:"foods"`
	Nutrition   *visionNutrition `json:"nutrition"`
	Analysis    *string          `json:"analysis"`
	Suggestions *[]string        `json:"suggestions"`
	FoodDetails []FoodDetail     `json:"foodDetails"`
}

type visionNutrition struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
	Fiber    *float64 `json:"fiber"`
}

// parseFoodAnalysis validates the raw model output against the expected
// schema, collecting field-level details for every mismatch.
func parseFoodAnalysis(content []byte) (*FoodAnalysisResult, error) {
	var payload visionPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, &InvalidResponseError{Details: []string{err.Error()}}
	}

	var details []string
	if payload.Foods == nil {
		details = append(details, "foods: required")
	}
	if payload.Analysis == nil {
		details = append(details, "analysis: required")
	}
	if payload.Suggestions == nil {
		details = append(details, "suggestions: required")
	}
	if payload.Nutrition == nil {
		details = append(details, "nutrition: required")
	} else {
		numbers := []struct {
			field string
			value *float64
		}{
			{"nutrition.calories", payload.Nutrition.Calories},
			{"nutrition.protein", payload.Nutrition.Protein},
			{"nutrition.carbs", payload.Nutrition.Carbs},
			{"nutrition.fats", payload.Nutrition.Fats},
			{"nutrition.fiber", payload.Nutrition.Fiber},
		}
		for _, n := range numbers {
			if n.value == nil {
				details = append(details, n.field+": required")
			}
		}
	}
	if len(details) > 0 {
		return nil, &InvalidResponseError{Details: details}
	}

	return &FoodAnalysisResult{
		Foods: *payload.Foods,
		Nutrition: NutritionInfo{
			Calories: *payload.Nutrition.Calories,
			Protein:  *payload.Nutrition.Protein,
			Carbs:    *payload.Nutrition.Carbs,
			Fats:     *payload.Nutrition.Fats,
			Fiber:    *payload.Nutrition.Fiber,
		},
		Analysis:    *payload.Analysis,
		Suggestions: *payload.Suggestions,
		FoodDetails: payload.FoodDetails,
	}, nil
}

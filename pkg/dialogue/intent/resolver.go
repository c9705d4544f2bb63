package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"storefront-assistant-be/pkg/llm"
)

// llmConfidenceScale maps the model's self-reported 0-1 confidence onto
// the rule scoring scale so downstream thresholds work on one axis.
const llmConfidenceScale = 15

// minUsableLLMConfidence rejects fallback results the model itself is
// unsure about; the rule result wins in that case.
const minUsableLLMConfidence = 5

// llmIntentPayload is the JSON shape the fallback prompt asks for.
type llmIntentPayload struct {
	Intent     string  `json:"intent"`
	Secondary  string  `json:"secondary,omitempty"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// Resolver classifies a message with the LLM when the rule pass is
// ambiguous. It never surfaces an error: callers get (result, ok).
type Resolver struct {
	provider llm.LLMProvider
}

func NewResolver(provider llm.LLMProvider) *Resolver {
	return &Resolver{provider: provider}
}

// Resolve asks the model for a classification constrained to the fixed
// vocabulary. ok is false when the call failed, the JSON was unusable or
// the rescaled confidence is below the usable floor.
func (r *Resolver) Resolve(ctx context.Context, message string, convCtx Context) (Result, bool) {
	prompt := r.buildPrompt(message, convCtx)

	response, err := r.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return Result{}, false
	}

	payload, err := parseIntentPayload(response)
	if err != nil {
		return Result{}, false
	}

	primary := KnownTag(strings.ToUpper(strings.TrimSpace(payload.Intent)))
	confidence := payload.Confidence * llmConfidenceScale
	if confidence < minUsableLLMConfidence {
		return Result{}, false
	}

	result := Result{
		Primary:         primary,
		Confidence:      confidence,
		AllMatches:      []Match{{Tag: primary, Score: int(confidence)}},
		RequiresContext: RequiresContext(primary),
		IsTerminal:      IsTerminal(primary),
		Source:          SourceLLM,
	}
	if payload.Secondary != "" {
		if sec := KnownTag(strings.ToUpper(strings.TrimSpace(payload.Secondary))); sec != TagUnclear {
			result.Secondary = sec
		}
	}

	return result, true
}

func (r *Resolver) buildPrompt(message string, convCtx Context) string {
	var prompt strings.Builder

	prompt.WriteString("<system>\n")
	prompt.WriteString("You classify a single customer message from a storefront chat.\n")
	prompt.WriteString("You do NOT answer the customer. You only classify intent.\n")
	prompt.WriteString("</system>\n\n")

	prompt.WriteString("<conversation_state>\n")
	if convCtx.LastAssistantMessage != "" {
		prompt.WriteString(fmt.Sprintf("LAST_ASSISTANT_MESSAGE: %q\n", convCtx.LastAssistantMessage))
	}
	if len(convCtx.LastProducts) > 0 {
		prompt.WriteString(fmt.Sprintf("PRODUCTS_ON_THE_TABLE: %s\n", strings.Join(convCtx.LastProducts, ", ")))
	}
	prompt.WriteString(fmt.Sprintf("TURN_COUNT: %d\n", convCtx.TurnCount))
	prompt.WriteString("</conversation_state>\n\n")

	prompt.WriteString("<customer_message>\n")
	prompt.WriteString(message)
	prompt.WriteString("\n</customer_message>\n\n")

	prompt.WriteString("<vocabulary>\n")
	prompt.WriteString("Choose ONE intent from this fixed list:\n")
	for _, rule := range ruleTable {
		prompt.WriteString(string(rule.tag))
		prompt.WriteString("\n")
	}
	prompt.WriteString(string(TagUnclear))
	prompt.WriteString("\n</vocabulary>\n\n")

	prompt.WriteString("<output_format>\n")
	prompt.WriteString("Respond with ONLY valid JSON:\n")
	prompt.WriteString("{\n")
	prompt.WriteString("  \"intent\": \"ONE_OF_THE_VOCABULARY\",\n")
	prompt.WriteString("  \"secondary\": \"optional runner-up or empty\",\n")
	prompt.WriteString("  \"confidence\": 0.9,\n")
	prompt.WriteString("  \"reason\": \"brief\"\n")
	prompt.WriteString("}\n")
	prompt.WriteString("</output_format>")

	return prompt.String()
}

func parseIntentPayload(response string) (*llmIntentPayload, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var payload llmIntentPayload
	if err := json.Unmarshal([]byte(jsonContent), &payload); err != nil {
		return nil, fmt.Errorf("intent JSON unmarshal failed: %w", err)
	}
	return &payload, nil
}

// extractJSON pulls the first {...} block out of a response that may be
// wrapped in prose or code fences.
func extractJSON(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}
	return response[startIdx : endIdx+1]
}

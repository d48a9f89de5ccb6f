package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"ai-studyplanner-be/pkg/llm"
)

// ErrExternalService means the extraction model was unreachable or returned
// output that could not be parsed.
var ErrExternalService = errors.New("extraction service failed")

// AmPmPrefix is the marker the extraction model writes into the context
// description when the user gave a clock time without am/pm.
const AmPmPrefix = "AM_PM_REQUIRED_FOR_"

// Extractor turns free-form chat prompts into structured planning context
// through the configured LLM provider.
type Extractor struct {
	provider llm.LLMProvider
	logger   *log.Logger
}

func NewExtractor(provider llm.LLMProvider, logger *log.Logger) *Extractor {
	return &Extractor{provider: provider, logger: logger}
}

// Extract merges the new prompt into the prior context. Merge semantics are
// owned by the model: it receives the prior context and returns the combined
// one.
func (e *Extractor) Extract(ctx context.Context, prompt string, prior Context) (Context, error) {
	response, err := e.provider.Generate(ctx, e.buildExtractPrompt(prompt, prior), llm.WithTemperature(0.0))
	if err != nil {
		return prior, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	merged, err := parseContext(response)
	if err != nil {
		e.logger.Printf("[WARN] Extraction parse failed: %v (raw: %.200s)", err, response)
		return prior, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	e.logger.Printf("[EXTRACT] merged context: missing=%v", merged.MissingFields())
	return merged, nil
}

// ExtractField re-extracts a single field from the prompt and overwrites just
// that field in the prior context, leaving everything else untouched.
func (e *Extractor) ExtractField(ctx context.Context, prompt, field string, prior Context) (Context, error) {
	response, err := e.provider.Generate(ctx, e.buildFieldPrompt(prompt, field), llm.WithTemperature(0.0))
	if err != nil {
		return prior, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	partial, err := parseContext(response)
	if err != nil {
		e.logger.Printf("[WARN] Field extraction parse failed for %s: %v", field, err)
		return prior, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	value := partial.Get(field)
	if value == "" {
		return prior, fmt.Errorf("%w: model returned no value for %s", ErrExternalService, field)
	}

	out := prior
	out.Set(field, value)
	e.logger.Printf("[EXTRACT] field %s updated", field)
	return out, nil
}

// FollowUpQuestion asks the model to phrase a question about the first
// missing field. Falls back to a canned question so a model outage never
// blocks the conversation.
func (e *Extractor) FollowUpQuestion(ctx context.Context, c Context, missingField string) string {
	response, err := e.provider.Generate(ctx, e.buildQuestionPrompt(c, missingField), llm.WithTemperature(0.4))
	if err != nil {
		e.logger.Printf("[WARN] Follow-up generation failed, using canned question: %v", err)
		return cannedQuestion(missingField)
	}
	question := strings.TrimSpace(response)
	if question == "" {
		return cannedQuestion(missingField)
	}
	return question
}

func (e *Extractor) buildExtractPrompt(prompt string, prior Context) string {
	priorJSON, _ := json.Marshal(prior)

	var b strings.Builder
	b.WriteString("<system>\n")
	b.WriteString("You extract study-schedule details from chat messages.\n")
	b.WriteString("You do NOT answer the user. You only fill fields.\n")
	b.WriteString("Merge the new message into the known context: keep every known value unless the message changes it.\n")
	b.WriteString("</system>\n\n")

	b.WriteString("<known_context>\n")
	b.Write(priorJSON)
	b.WriteString("\n</known_context>\n\n")

	b.WriteString("<user_message>\n")
	b.WriteString(prompt)
	b.WriteString("\n</user_message>\n\n")

	b.WriteString("<rules>\n")
	b.WriteString("- schedule_title: short name of what the user wants to study\n")
	b.WriteString("- starting_date: resolve to YYYY-MM-DD\n")
	b.WriteString("- repeat_pattern: one of daily, weekly, weekdays\n")
	b.WriteString("- duration: number of units the schedule runs, as digits\n")
	b.WriteString("- duration_unit: days or weeks\n")
	b.WriteString("- task_time: 24-hour HH:MM. If the user gives a clock time without am/pm ")
	b.WriteString("(e.g. \"at 7\"), leave task_time empty and set description to ")
	b.WriteString(AmPmPrefix + "<the number they said>\n")
	b.WriteString("- task_duration: minutes per session, as digits\n")
	b.WriteString("- Omit any field the user has not provided yet.\n")
	b.WriteString("</rules>\n\n")

	b.WriteString("Respond with ONLY a JSON object using those field names.\n")
	return b.String()
}

func (e *Extractor) buildFieldPrompt(prompt, field string) string {
	var b strings.Builder
	b.WriteString("<system>\n")
	b.WriteString("You extract exactly one study-schedule field from a chat message.\n")
	b.WriteString("</system>\n\n")

	b.WriteString("<user_message>\n")
	b.WriteString(prompt)
	b.WriteString("\n</user_message>\n\n")

	b.WriteString(fmt.Sprintf("Extract ONLY %q.", field))
	if field == FieldTaskTime {
		b.WriteString(" Resolve it to 24-hour HH:MM; the user is choosing a new start time, possibly from offered alternatives.")
	}
	b.WriteString(fmt.Sprintf("\nRespond with ONLY a JSON object: {%q: \"<value>\"}\n", field))
	return b.String()
}

func (e *Extractor) buildQuestionPrompt(c Context, missingField string) string {
	var b strings.Builder
	b.WriteString("<system>\n")
	b.WriteString("You help a student finish describing a study schedule.\n")
	b.WriteString("</system>\n\n")
	b.WriteString(fmt.Sprintf("The field %q is still unknown.", missingField))
	if c.ScheduleTitle != "" {
		b.WriteString(fmt.Sprintf(" The schedule is about %q.", c.ScheduleTitle))
	}
	b.WriteString("\nAsk the user one short, friendly question for that field. Respond with the question only.\n")
	return b.String()
}

func cannedQuestion(field string) string {
	switch field {
	case FieldScheduleTitle:
		return "What would you like to call this study schedule?"
	case FieldStartingDate:
		return "When should the schedule start? (e.g. 2025-08-13)"
	case FieldRepeatPattern:
		return "How often should the sessions repeat: daily, weekly, or weekdays only?"
	case FieldDuration:
		return "For how long should the schedule run?"
	case FieldDurationUnit:
		return "Is that duration in days or weeks?"
	case FieldTaskTime:
		return "What time of day should each session start? (e.g. 17:00)"
	case FieldTaskDuration:
		return "How many minutes should each session last?"
	}
	return fmt.Sprintf("Could you tell me the %s?", strings.ReplaceAll(field, "_", " "))
}

func parseContext(response string) (Context, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return Context{}, fmt.Errorf("no JSON found in response")
	}
	var c Context
	if err := json.Unmarshal([]byte(jsonContent), &c); err != nil {
		return Context{}, fmt.Errorf("JSON unmarshal failed: %w", err)
	}
	return c, nil
}

// extractJSON pulls the first balanced JSON object out of a model response,
// tolerating prose or code fences around it.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/planner/v1"

// Simplified DTOs for the script
type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Data struct {
		Status            string   `json:"status"`
		Message           string   `json:"message"`
		ConversationState string   `json:"conversation_state"`
		MissingFields     []string `json:"missing_fields"`
		SuggestedSlots    []string `json:"suggested_slots"`
	} `json:"data"`
}

func main() {
	accessToken := os.Getenv("SIMULATION_TOKEN")
	if accessToken == "" {
		log.Fatal("SIMULATION_TOKEN is not set")
	}

	color.Cyan("=== Study Planner Conversation Simulation ===")

	// A realistic multi-turn run: vague opener, detail turns, then either
	// a created schedule or a conflict round.
	prompts := []string{
		"I want to study biology",
		"starting tomorrow, every day for two weeks",
		"around 7 in the evening, one hour each",
	}

	userTag := color.New(color.FgGreen, color.Bold)
	botTag := color.New(color.FgYellow)

	for _, prompt := range prompts {
		userTag.Printf("\nUSER: ")
		fmt.Println(prompt)

		start := time.Now()
		res, err := sendChat(accessToken, prompt)
		elapsed := time.Since(start)
		if err != nil {
			color.Red("Error: %v", err)
			continue
		}

		botTag.Printf("PLANNER (%v, %s/%s): ", elapsed.Round(time.Millisecond), res.Data.Status, res.Data.ConversationState)
		fmt.Println(res.Data.Message)
		if len(res.Data.MissingFields) > 0 {
			fmt.Printf("  still missing: %v\n", res.Data.MissingFields)
		}
		if len(res.Data.SuggestedSlots) > 0 {
			fmt.Printf("  free slots: %v\n", res.Data.SuggestedSlots)
		}
	}
}

func sendChat(token, prompt string) (*chatResponse, error) {
	payload, _ := json.Marshal(chatRequest{Prompt: prompt})
	req, err := http.NewRequest("POST", baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

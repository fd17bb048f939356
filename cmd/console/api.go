package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
)

func listNPCs(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/npcs")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var listing struct {
		NPCs []string `json:"npcs"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("failed to parse NPC list: %w", err)
	}
	return listing.NPCs, nil
}

func sendInteraction(client *http.Client, baseURL, npcID, text string) (*interaction.Response, error) {
	reqBody, err := json.Marshal(interaction.Request{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/interact/%s", baseURL, npcID),
		"application/json",
		bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// 404 and 500 still carry a dialogue-shaped body; show it like any
	// other reply rather than erroring out of the UI.
	var ir interaction.Response
	if err := json.Unmarshal(body, &ir); err != nil {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	return &ir, nil
}

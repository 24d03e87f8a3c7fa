package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func runGenerate(apiURL, token string, emergencyID int64, out io.Writer) error {
	if emergencyID <= 0 {
		return fmt.Errorf("emergency id must be positive")
	}
	body, _ := json.Marshal(map[string]int64{"emergencyId": emergencyID})

	req, err := http.NewRequest(http.MethodPost, apiURL+"/api/reports/generate", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var res struct {
		ReportText string `json:"reportText"`
		Cached     bool   `json:"cached"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return err
	}
	fmt.Fprintf(out, "cached: %t\n\n%s\n", res.Cached, res.ReportText)
	return nil
}

func runHealth(apiURL string, out io.Writer) error {
	resp, err := http.Get(apiURL + "/api/health/store")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

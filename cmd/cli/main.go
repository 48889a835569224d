package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	key := os.Getenv("API_KEY")

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Enter a DNS server address to test (e.g., 1.1.1.1): ")
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fmt.Println("No address given.")
		return
	}

	body, _ := json.Marshal(map[string]string{"address": raw})
	req, _ := http.NewRequest(http.MethodPost, api+"/api/probe", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Println("Error contacting API:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fmt.Println("API returned status:", resp.Status)
		return
	}

	var st struct {
		PingMillis int    `json:"ping_millis"`
		Reachable  bool   `json:"reachable"`
		Reason     string `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Println("Bad response:", err)
		return
	}

	switch {
	case st.Reachable && st.PingMillis >= 0:
		fmt.Printf("%s is reachable (%d ms)\n", raw, st.PingMillis)
	case st.Reachable:
		fmt.Printf("%s is reachable (latency not measured)\n", raw)
	default:
		if st.Reason != "" {
			fmt.Printf("%s is unreachable: %s\n", raw, st.Reason)
		} else {
			fmt.Printf("%s is unreachable\n", raw)
		}
	}
}

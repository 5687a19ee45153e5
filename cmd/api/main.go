package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"munger_agent/pkg/api/analysis"
	"munger_agent/pkg/core/agent"
	"munger_agent/pkg/core/findata"
	"munger_agent/pkg/core/munger"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize provider manager from config
	var agentCfg agent.Config
	configData, err := os.ReadFile("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Failed to read config/models.yaml: %v\n", err)
		fmt.Println("  Falling back to default provider (gemini)")
	} else if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		fmt.Printf("[WARNING] Failed to parse config/models.yaml: %v\n", err)
	}
	agentMgr := agent.NewManager(agentCfg)

	// Data access layer
	apiKey := os.Getenv("FINANCIAL_DATASETS_API_KEY")
	if apiKey == "" {
		fmt.Println("[WARNING] FINANCIAL_DATASETS_API_KEY not set, requests will be unauthenticated")
	}
	client := findata.NewClient(os.Getenv("FINANCIAL_DATASETS_BASE_URL"), apiKey)

	runner := munger.NewRunner(client, agentMgr.Role("narrative"), agentMgr.Role("memo"))
	handler := analysis.NewHandler(runner)

	http.HandleFunc("/api/analysis/signal", handler.HandleSignal)
	http.HandleFunc("/api/analysis/memo", handler.HandleMemo)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analysis/signal  {ticker, end_date}")
	fmt.Println("  - POST /api/analysis/memo    {ticker, end_date, include_sources, extra_documents}")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

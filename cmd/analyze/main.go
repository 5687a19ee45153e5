package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"munger_agent/pkg/core/agent"
	"munger_agent/pkg/core/findata"
	"munger_agent/pkg/core/munger"
)

func main() {
	ticker := flag.String("ticker", "", "stock ticker to analyze (e.g. AAPL)")
	endDate := flag.String("end-date", time.Now().Format("2006-01-02"), "analysis end date (YYYY-MM-DD)")
	wantMemo := flag.Bool("memo", false, "generate the full investment memo instead of the signal")
	noSources := flag.Bool("no-sources", false, "skip grounded source lookup in the memo")
	flag.Parse()

	if *ticker == "" {
		fmt.Println("usage: analyze -ticker AAPL [-end-date 2024-12-31] [-memo]")
		os.Exit(1)
	}

	godotenv.Load()

	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(configData, &agentCfg)
	}
	agentMgr := agent.NewManager(agentCfg)

	client := findata.NewClient(os.Getenv("FINANCIAL_DATASETS_BASE_URL"), os.Getenv("FINANCIAL_DATASETS_API_KEY"))
	runner := munger.NewRunner(client, agentMgr.Role("narrative"), agentMgr.Role("memo"))

	ctx := context.Background()

	var result interface{}
	if *wantMemo {
		result = runner.RunInvestmentMemo(ctx, *ticker, *endDate, !*noSources, nil)
	} else {
		result = runner.RunMungerAnalysis(ctx, *ticker, *endDate)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Printf("[FATAL] Failed to encode result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"
)

// Minimal terminal consumer of the dashboard read model. Formatting of the
// counter into a display string stays client-side: the API serves numbers.

type dashboard struct {
	DisplayedTotal float64 `json:"displayed_total"`
	SettledTotal   float64 `json:"settled_total"`
	Derived        struct {
		Today     float64 `json:"today"`
		Month     float64 `json:"month"`
		AvgPerDay float64 `json:"avg_per_day"`
	} `json:"derived"`
	Live bool `json:"live"`
}

type feed struct {
	Items []struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	} `json:"items"`
}

func main() {
	var (
		baseURL  = flag.String("base-url", "http://localhost:8080", "API base URL")
		interval = flag.Duration("interval", 100*time.Millisecond, "Poll interval")
		duration = flag.Duration("duration", 0, "Stop after this long (0 = run until interrupted)")
		token    = flag.String("token", "", "Bearer token for control actions")
		pause    = flag.Bool("pause", false, "Pause the simulation and exit")
		resume   = flag.Bool("resume", false, "Resume the simulation and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := &http.Client{Timeout: 5 * time.Second}

	if *pause || *resume {
		action := "pause"
		if *resume {
			action = "resume"
		}
		if err := toggle(ctx, client, *baseURL, action, *token); err != nil {
			log.Fatalf("%s: %v", action, err)
		}
		fmt.Printf("simulation %sd\n", action)
		return
	}

	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case <-ticker.C:
		}

		var d dashboard
		if err := getJSON(ctx, client, *baseURL+"/v1/dashboard", &d); err != nil {
			log.Printf("dashboard: %v", err)
			continue
		}
		var f feed
		if err := getJSON(ctx, client, *baseURL+"/v1/transactions", &f); err != nil {
			log.Printf("transactions: %v", err)
			continue
		}

		state := "LIVE"
		if !d.Live {
			state = "PAUSED"
		}
		latest := ""
		if len(f.Items) > 0 {
			it := f.Items[0]
			latest = fmt.Sprintf("  last: %s / %s %.2f", it.Category, it.Description, float64(it.Amount)/100)
		}
		fmt.Printf("\r%-7s total %.2f  today %.2f  month %.2f%s%s",
			state, d.DisplayedTotal, d.Derived.Today, d.Derived.Month, latest, strings.Repeat(" ", 8))
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}

func toggle(ctx context.Context, client *http.Client, baseURL, action, token string) error {
	if token == "" {
		return fmt.Errorf("a -token with the operator role is required")
	}
	url := fmt.Sprintf("%s/v1/simulation/%s", baseURL, action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s", resp.Status)
	}
	return nil
}

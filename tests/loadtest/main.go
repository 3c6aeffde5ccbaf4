package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numPlayers   = 500
)

var servers = []string{"lobby", "survival", "creative", "skyblock", "minigames"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== PAD Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Players: %d | Servers: %d\n\n", numPlayers, len(servers))

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed players with login events
	fmt.Println("\n--- Phase 1: Seeding players (POST /event/login) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doLogin(rng)
	})

	// Phase 2: Mixed event stream
	fmt.Println("\n--- Phase 2: Mixed events (90% POST, 10% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.30:
			return doLogin(rng)
		case r < 0.55:
			return doSwitch(rng)
		case r < 0.75:
			return doQuit(rng)
		case r < 0.90:
			return doOnline(rng)
		case r < 0.95:
			return doGetPlayer(rng)
		default:
			return doGetSummary(rng)
		}
	})

	// Phase 3: Read-heavy load against the cached summary
	fmt.Println("\n--- Phase 3: Read-heavy load (10% POST, 90% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doSwitch(rng)
		case r < 0.55:
			return doGetSummary(rng)
		default:
			return doGetPlayer(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 90))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 90))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func playerUUID(rng *rand.Rand) string {
	n := rng.Intn(numPlayers) + 1
	return fmt.Sprintf("%08d-0000-4000-8000-%012d", n, n)
}

func doLogin(rng *rand.Rand) result {
	n := rng.Intn(numPlayers) + 1
	body := map[string]interface{}{
		"uuid": fmt.Sprintf("%08d-0000-4000-8000-%012d", n, n),
		"name": fmt.Sprintf("player_%d", n),
	}
	return doPost("/event/login", body, 201)
}

func doQuit(rng *rand.Rand) result {
	body := map[string]interface{}{
		"uuid":            playerUUID(rng),
		"session_seconds": rng.Intn(7200),
	}
	return doPost("/event/quit", body, 204)
}

func doSwitch(rng *rand.Rand) result {
	body := map[string]interface{}{
		"uuid":   playerUUID(rng),
		"server": servers[rng.Intn(len(servers))],
	}
	return doPost("/event/switch", body, 204)
}

func doOnline(rng *rand.Rand) result {
	perServer := make(map[string]int, len(servers))
	total := 0
	for _, srv := range servers {
		n := rng.Intn(50)
		perServer[srv] = n
		total += n
	}
	body := map[string]interface{}{
		"total":      total,
		"per_server": perServer,
	}
	return doPost("/event/online", body, 204)
}

func doPost(path string, body map[string]interface{}, wantStatus int) result {
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+path, "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	ep := "POST " + path
	if err != nil {
		return result{ep, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{ep, resp.StatusCode, lat, resp.StatusCode != wantStatus}
}

func doGetPlayer(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/player?uuid=%s", baseURL, playerUUID(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /player", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	// 404s are expected for uuids that never logged in.
	ok := resp.StatusCode == 200 || resp.StatusCode == 404
	return result{"GET /player", resp.StatusCode, lat, !ok}
}

func doGetSummary(rng *rand.Rand) result {
	days := []int{7, 14, 30}[rng.Intn(3)]
	url := fmt.Sprintf("%s/summary?days=%d", baseURL, days)
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /summary", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /summary", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

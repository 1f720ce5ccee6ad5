package main

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	baseURL      = "http://127.0.0.1:8085"
	numWorkers   = 8
	testDuration = 10 * time.Second
	numArchives  = 20
	maxEvents    = 400
)

var locales = []string{"de", "en", "nl"}

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        64,
		MaxIdleConnsPerHost: 64,
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
	fmt.Println("=== DDP Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Archives: %d\n\n", numWorkers, testDuration, numArchives)

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

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	archives := make([][]byte, numArchives)
	for i := range archives {
		archives[i] = instagramArchive(rng)
	}

	// Repeats of the same archive hit the result cache when it is enabled.
	fmt.Println("\n--- Phase 1: Extraction (POST /extract) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doExtract(rng, archives)
	})

	fmt.Println("\n--- Phase 2: Mixed load (50% extract, 30% classify, 20% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doExtract(rng, archives)
		case r < 0.80:
			return doClassify(rng, archives)
		case r < 0.90:
			return doGet("/platforms")
		default:
			return doGet("/health")
		}
	})
}

// instagramArchive builds a synthetic data download with a few activity logs.
func instagramArchive(rng *rand.Rand) []byte {
	start := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC).Unix()
	stamps := func() []map[string]any {
		n := rng.Intn(maxEvents) + 1
		out := make([]map[string]any, n)
		for i := range out {
			ts := start + rng.Int63n(30*24*3600)
			out[i] = map[string]any{"string_list_data": []map[string]any{{"timestamp": ts}}}
		}
		return out
	}

	files := map[string]any{
		"your_instagram_activity/likes/liked_posts.json":    map[string]any{"likes_media_likes": stamps()},
		"your_instagram_activity/likes/liked_comments.json": map[string]any{"likes_comment_likes": stamps()},
		"ads_information/ads_and_topics/ads_viewed.json":    map[string]any{"impressions_history_ads_seen": []any{}},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if err := json.NewEncoder(w).Encode(body); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 1000)
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
					totalOps.Inc()
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

	printResults(allResults, duration, totalOps.Load())
}

func printResults(allResults map[string]*stats, duration time.Duration, totalOps int64) {
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-18s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 84))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-18s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		fmt.Println("  no requests completed")
		return
	}
	fmt.Println("  " + strings.Repeat("-", 84))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.1f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, float64(totalOps)/duration.Seconds())
}

func doExtract(rng *rand.Rand, archives [][]byte) result {
	i := rng.Intn(len(archives))
	url := fmt.Sprintf("%s/extract?locale=%s&name=instagram-%d.zip", baseURL, locales[rng.Intn(len(locales))], i)
	return post("POST /extract", url, archives[i])
}

func doClassify(rng *rand.Rand, archives [][]byte) result {
	i := rng.Intn(len(archives))
	url := fmt.Sprintf("%s/classify?name=instagram-%d.zip", baseURL, i)
	return post("POST /classify", url, archives[i])
}

func post(endpoint, url string, body []byte) result {
	start := time.Now()
	resp, err := httpClient.Post(url, "application/zip", bytes.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doGet(path string) result {
	endpoint := "GET " + path
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
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
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

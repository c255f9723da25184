package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/modqueue/internal/model"
	"github.com/d60-Lab/modqueue/internal/service"
)

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	N := envInt("N", 10000)        // 队列规模
	ROUNDS := envInt("ROUNDS", 1000)
	CONC := envInt("CONC", 4)
	PAGE := envInt("PAGE", 10)

	statuses := []string{"pending", "pending", "pending", "flagged", "approved", "rejected"}
	names := []string{"Cosmic Waves", "Deep Dive", "Morning Brief", "Night Owl", "Tech Pulse"}
	items := make([]service.ViewItem, N)
	now := time.Now()
	for i := 0; i < N; i++ {
		submitted := now.Add(-time.Duration(rand.Intn(720)) * time.Hour)
		items[i] = service.ViewItem{
			ID:          uuid.New().String(),
			Kind:        model.ContentTypePodcast,
			Status:      statuses[rand.Intn(len(statuses))],
			Priority:    1 + rand.Intn(5),
			Name:        names[rand.Intn(len(names))],
			Author:      fmt.Sprintf("author-%d", rand.Intn(100)),
			SubmittedAt: &submitted,
		}
	}

	opts := []service.ViewOptions{
		{Status: service.FilterPending, SortBy: service.SortByPriority, Order: "desc", Page: 1, PageSize: PAGE},
		{Status: service.FilterHighPriority, SortBy: service.SortByDate, Order: "asc", Page: 2, PageSize: PAGE},
		{Status: service.FilterAll, Search: "cosmic", SortBy: service.SortByStatus, Order: "asc", Page: 1, PageSize: PAGE},
	}

	recs := make([]time.Duration, 0, ROUNDS)
	recCh := make(chan time.Duration, ROUNDS)
	feed := make(chan int, ROUNDS)
	for i := 0; i < ROUNDS; i++ {
		feed <- i
	}
	close(feed)

	t0 := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < CONC; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range feed {
				st := time.Now()
				service.ApplyView(items, opts[i%len(opts)])
				recCh <- time.Since(st)
			}
		}()
	}
	wg.Wait()
	close(recCh)
	for d := range recCh {
		recs = append(recs, d)
	}
	total := time.Since(t0)

	fmt.Printf("N=%d ROUNDS=%d CONC=%d PAGE=%d\n", N, ROUNDS, CONC, PAGE)
	fmt.Printf("ApplyView total=%v per-op=%v p50=%v p95=%v p99=%v\n",
		total, total/time.Duration(ROUNDS), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))

	// 统计聚合单独压一把
	rows := make([]*model.QueueItem, N)
	for i := 0; i < N; i++ {
		created := now.Add(-time.Duration(rand.Intn(720)) * time.Hour)
		rows[i] = &model.QueueItem{
			ID:        uuid.New().String(),
			Status:    statuses[rand.Intn(len(statuses))],
			Priority:  1 + rand.Intn(5),
			CreatedAt: created,
			UpdatedAt: created.Add(time.Duration(rand.Intn(48)) * time.Hour),
		}
	}
	st := time.Now()
	stats := service.DeriveStats(rows)
	fmt.Printf("DeriveStats(%d rows): %v, resolution_rate=%d%%, avg=%s\n",
		N, time.Since(st), stats.ResolutionRate, stats.AvgResponseTime)
}

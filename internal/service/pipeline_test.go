package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeRef(t time.Time) *time.Time { return &t }

func randomItems(n int) []ViewItem {
	statuses := []string{"pending", "flagged", "approved", "rejected"}
	items := make([]ViewItem, n)
	now := time.Now()
	for i := 0; i < n; i++ {
		items[i] = ViewItem{
			ID:          fmt.Sprintf("item-%04d", i),
			Status:      statuses[rand.Intn(len(statuses))],
			Priority:    1 + rand.Intn(5),
			AutoFlagged: rand.Intn(10) == 0,
			SubmittedAt: timeRef(now.Add(-time.Duration(rand.Intn(720)) * time.Hour)),
		}
	}
	return items
}

func TestFilterHighPriorityPartition(t *testing.T) {
	items := randomItems(500)
	kept := Filter(items, FilterHighPriority, "")

	keptIDs := map[string]bool{}
	for _, it := range kept {
		assert.GreaterOrEqual(t, it.Priority, 4)
		keptIDs[it.ID] = true
	}
	// 补集全部低优
	for _, it := range items {
		if !keptIDs[it.ID] {
			assert.Less(t, it.Priority, 4)
		}
	}
}

func TestFilterAllIsIdentity(t *testing.T) {
	items := randomItems(200)
	out := Filter(items, FilterAll, "")
	require.Len(t, out, len(items))
	for i := range items {
		assert.Equal(t, items[i].ID, out[i].ID)
	}
}

func TestFilterPending(t *testing.T) {
	items := []ViewItem{
		{ID: "a", Status: "pending"},
		{ID: "b", Status: "approved"},
		{ID: "c", Status: "flagged"},
	}
	out := Filter(items, FilterPending, "")
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].ID)
}

func TestFilterFlagged(t *testing.T) {
	items := []ViewItem{
		{ID: "a", Status: "pending", AutoFlagged: true},
		{ID: "b", Status: "pending", FlaggedReasons: []string{"spam"}},
		{ID: "c", Status: "flagged"}, // 状态是 flagged 但无标记来源，不命中
		{ID: "d", Status: "pending"},
	}
	out := Filter(items, FilterFlagged, "")
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestSearchCaseInsensitive(t *testing.T) {
	items := []ViewItem{
		{ID: "p1", Name: "Cosmic Waves", Author: "J. Star"},
		{ID: "p2", Name: "Morning Brief"},
	}
	for _, term := range []string{"cosmic", "COSMIC", "star"} {
		out := Filter(items, FilterAll, term)
		require.Len(t, out, 1, "term %q", term)
		assert.Equal(t, "p1", out[0].ID)
	}
	// 缺失字段永不命中
	out := Filter([]ViewItem{{ID: "x"}}, FilterAll, "cosmic")
	assert.Empty(t, out)
}

func TestPaginateFirstPageLength(t *testing.T) {
	for _, n := range []int{1, 5, 10, 37} {
		items := randomItems(n)
		page := Paginate(items, 1, 10)
		want := n
		if want > 10 {
			want = 10
		}
		assert.Len(t, page, want, "n=%d", n)
	}
}

func TestPaginateWindowAndTotalPages(t *testing.T) {
	items := randomItems(25)
	assert.Equal(t, 3, TotalPages(len(items), 10))
	assert.Len(t, Paginate(items, 3, 10), 5)
	assert.Empty(t, Paginate(items, 4, 10))

	// 空集合是 0 页，与"第 1 页为空"不同
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Empty(t, Paginate(nil, 1, 10))
}

func TestSortIdempotentAndDeterministic(t *testing.T) {
	items := randomItems(300)
	for _, key := range []string{SortByDate, SortByPriority, SortByStatus} {
		for _, order := range []string{"asc", "desc"} {
			once := Sort(items, key, order)
			twice := Sort(once, key, order)
			// 三路比较器带 ID 决胜，重排已排序序列必须逐元素一致
			require.Len(t, twice, len(once))
			for i := range once {
				assert.Equal(t, once[i].ID, twice[i].ID, "key=%s order=%s i=%d", key, order, i)
			}
		}
	}
}

func TestSortPriorityDefaultsToOne(t *testing.T) {
	items := []ViewItem{
		{ID: "b", Priority: 0}, // 缺省按 1 比较
		{ID: "a", Priority: 2},
		{ID: "c", Priority: 1},
	}
	out := Sort(items, SortByPriority, "asc")
	// priority 1 的两条按 ID 决胜
	assert.Equal(t, []string{"b", "c", "a"}, []string{out[0].ID, out[1].ID, out[2].ID})
}

func TestSortDateFallsBackToCreatedAt(t *testing.T) {
	now := time.Now()
	items := []ViewItem{
		{ID: "a", CreatedAt: now.Add(-time.Hour)}, // 无 SubmittedAt，退回 CreatedAt
		{ID: "b", SubmittedAt: timeRef(now.Add(-2 * time.Hour))},
	}
	out := Sort(items, SortByDate, "asc")
	assert.Equal(t, "b", out[0].ID)
}

func TestViewItemOmitsMissingSubmittedAt(t *testing.T) {
	now := time.Now()

	// 队列行没有投稿时间，序列化时整个字段消失而不是零值时间戳
	raw, err := json.Marshal(ViewItem{ID: "q1", CreatedAt: now})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "submitted_at")

	raw, err = json.Marshal(ViewItem{ID: "p1", SubmittedAt: timeRef(now), CreatedAt: now})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "submitted_at")
}

func TestApplyViewClampsPage(t *testing.T) {
	items := randomItems(15)
	page, total, totalPages := ApplyView(items, ViewOptions{
		Status: FilterAll, Page: 99, PageSize: 10,
	})
	assert.Equal(t, 15, total)
	assert.Equal(t, 2, totalPages)
	assert.Len(t, page, 5) // 夹取到最后一页
}

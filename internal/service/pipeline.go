package service

import (
	"sort"
	"strings"
	"time"
)

// 列表过滤档位
const (
	FilterPending      = "pending"
	FilterFlagged      = "flagged"
	FilterHighPriority = "high_priority"
	FilterAll          = "all"
)

// 排序键
const (
	SortByDate     = "date"
	SortByPriority = "priority"
	SortByStatus   = "status"
)

// ViewItem 列表展示项：把不同内容类型的可选展示字段拉平，
// 缺失字段置空串，搜索时空字段永不命中。
type ViewItem struct {
	ID             string     `json:"id"`
	Kind           string     `json:"kind"`
	Status         string     `json:"status"`
	Priority       int        `json:"priority"`
	AutoFlagged    bool       `json:"auto_flagged"`
	FlaggedReasons []string   `json:"flagged_reasons,omitempty"`
	Name           string     `json:"name,omitempty"`
	Title          string     `json:"title,omitempty"`
	Content        string     `json:"content,omitempty"`
	Author         string     `json:"author,omitempty"`
	SubmitterName  string     `json:"submitter_name,omitempty"`
	CategoryName   string     `json:"category_name,omitempty"`
	AssignedTo     string     `json:"assigned_to,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ViewOptions 列表查询参数，显式随请求传递，不落全局状态
type ViewOptions struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	Order    string `form:"order"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// Filter 先按档位过滤，再做大小写不敏感的子串搜索
func Filter(items []ViewItem, status, search string) []ViewItem {
	out := make([]ViewItem, 0, len(items))
	for _, it := range items {
		switch status {
		case FilterPending:
			if it.Status != "pending" {
				continue
			}
		case FilterFlagged:
			if !it.AutoFlagged && len(it.FlaggedReasons) == 0 {
				continue
			}
		case FilterHighPriority:
			if it.Priority < 4 {
				continue
			}
		}
		out = append(out, it)
	}

	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return out
	}
	matched := out[:0]
	for _, it := range out {
		if matchesSearch(it, term) {
			matched = append(matched, it)
		}
	}
	return matched
}

func matchesSearch(it ViewItem, term string) bool {
	for _, f := range []string{it.Name, it.Title, it.Content, it.Author, it.SubmitterName} {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Sort 按键排序并返回新切片。比较器是三路的，等值时按 ID 决出次序，
// 同一输入在任何排序实现下都得到同一结果。
func Sort(items []ViewItem, key, order string) []ViewItem {
	out := append([]ViewItem(nil), items...)
	desc := order != "asc"
	sort.Slice(out, func(i, j int) bool {
		c := compareView(out[i], out[j], key)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareView(a, b ViewItem, key string) int {
	var c int
	switch key {
	case SortByPriority:
		c = comparePriority(a.Priority, b.Priority)
	case SortByStatus:
		c = strings.Compare(a.Status, b.Status)
	default: // date
		c = sortTime(a).Compare(sortTime(b))
	}
	if c == 0 {
		c = strings.Compare(a.ID, b.ID)
	}
	return c
}

// 缺省优先级按 1 参与比较
func comparePriority(a, b int) int {
	if a == 0 {
		a = 1
	}
	if b == 0 {
		b = 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sortTime(it ViewItem) time.Time {
	if it.SubmittedAt != nil {
		return *it.SubmittedAt
	}
	return it.CreatedAt
}

// Paginate 切片分页窗口；page 的夹取是调用方的事
func Paginate(items []ViewItem, page, pageSize int) []ViewItem {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []ViewItem{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages 空集合为 0 页，与"第 1 页为空"区分开
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// ApplyView 走完整条过滤→排序→分页流水线，并在此处夹取页码
func ApplyView(items []ViewItem, opts ViewOptions) (pageItems []ViewItem, total, totalPages int) {
	if opts.Status == "" {
		opts.Status = FilterAll
	}
	if opts.SortBy == "" {
		opts.SortBy = SortByPriority
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}

	filtered := Filter(items, opts.Status, opts.Search)
	sorted := Sort(filtered, opts.SortBy, opts.Order)

	total = len(sorted)
	totalPages = TotalPages(total, opts.PageSize)
	page := opts.Page
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	return Paginate(sorted, page, opts.PageSize), total, totalPages
}

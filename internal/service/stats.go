package service

import (
	"fmt"
	"math"
	"time"

	"github.com/d60-Lab/modqueue/internal/model"
)

// Stats 统计窗口内的聚合指标
type Stats struct {
	Total           int    `json:"total"`
	Pending         int    `json:"pending"`
	Approved        int    `json:"approved"`
	Rejected        int    `json:"rejected"`
	Flagged         int    `json:"flagged"`
	HighPriority    int    `json:"high_priority"`
	ResolutionRate  int    `json:"resolution_rate"`
	AvgResponseTime string `json:"avg_response_time"`
}

// DeriveStats 对窗口内的队列行做纯聚合：
// 各状态计数、高优计数、处理率、平均响应时长。
// 平均响应时长取所有非 pending 行的 (updated_at - created_at) 均值，
// 格式化为保留一位小数的小时数；窗口内没有已处理行时为字面量 "N/A"。
func DeriveStats(rows []*model.QueueItem) *Stats {
	s := &Stats{Total: len(rows), AvgResponseTime: "N/A"}

	var respSum time.Duration
	var respN int
	for _, row := range rows {
		switch row.Status {
		case model.StatusPending:
			s.Pending++
		case model.StatusApproved, model.StatusPublished:
			s.Approved++
		case model.StatusRejected:
			s.Rejected++
		case model.StatusFlagged:
			s.Flagged++
		}
		if row.Priority >= model.PriorityHighThreshold {
			s.HighPriority++
		}
		if row.Status != model.StatusPending {
			respSum += row.UpdatedAt.Sub(row.CreatedAt)
			respN++
		}
	}

	if s.Total > 0 {
		s.ResolutionRate = int(math.Round(float64(s.Approved+s.Rejected) / float64(s.Total) * 100))
	}
	if respN > 0 {
		hours := (respSum / time.Duration(respN)).Hours()
		s.AvgResponseTime = fmt.Sprintf("%.1fh", hours)
	}
	return s
}

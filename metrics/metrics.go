// Package metrics 账号接口的 Prometheus 指标
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 流程结果标签
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Recorder 处理器通过它记录每个流程的结果
type Recorder interface {
	RecordOutcome(flow, outcome string)
	RecordLatency(flow string, d time.Duration)
}

// Collector Prometheus 实现
type Collector struct {
	outcomes *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollector 创建并注册到 reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bbs_account_requests_total",
			Help: "账号接口按流程和结果统计的请求数",
		}, []string{"flow", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bbs_account_request_duration_seconds",
			Help:    "账号接口处理耗时（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"flow"}),
	}
	reg.MustRegister(c.outcomes, c.latency)
	return c
}

func (c *Collector) RecordOutcome(flow, outcome string) {
	c.outcomes.WithLabelValues(flow, outcome).Inc()
}

func (c *Collector) RecordLatency(flow string, d time.Duration) {
	c.latency.WithLabelValues(flow).Observe(d.Seconds())
}

// Handler 暴露 reg 中的指标
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Nop 不记录任何指标
type Nop struct{}

func (Nop) RecordOutcome(string, string)         {}
func (Nop) RecordLatency(string, time.Duration) {}

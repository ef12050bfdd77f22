// Package metrics provides Prometheus metrics for the file store
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pdfstore"

// 操作结果标签
const (
	StatusSuccess         = "success"
	StatusValidationError = "validation_error"
	StatusOperationError  = "operation_error"
)

// StorageMetrics 上传、删除与临时文件清理指标
type StorageMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	bytesWritten      prometheus.Counter
	tempFilesSwept    prometheus.Counter
}

// NewStorageMetrics 创建并注册指标
func NewStorageMetrics(registry prometheus.Registerer) (*StorageMetrics, error) {
	m := &StorageMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of storage operations by result",
			},
			[]string{"operation", "status"},
		),
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Time taken by storage operations",
				// 1ms 到约 16s
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"operation"},
		),
		bytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Total bytes persisted by uploads",
		}),
		tempFilesSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "temp_files_swept_total",
			Help:      "Total stale upload temp files removed",
		}),
	}

	for _, c := range []prometheus.Collector{m.operationsTotal, m.operationDuration, m.bytesWritten, m.tempFilesSwept} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveOperation 记录一次操作的结果与耗时
func (m *StorageMetrics) ObserveOperation(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// AddBytesWritten 累加写入字节数
func (m *StorageMetrics) AddBytesWritten(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.bytesWritten.Add(float64(n))
}

// AddTempFilesSwept 累加清理的临时文件数
func (m *StorageMetrics) AddTempFilesSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.tempFilesSwept.Add(float64(n))
}

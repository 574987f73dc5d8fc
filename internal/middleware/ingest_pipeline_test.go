package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"KisanSense/internal/domain/models"
)

type nopMetrics struct{}

func (nopMetrics) RecordIngested(string, string)          {}
func (nopMetrics) RecordError(string)                     {}
func (nopMetrics) RecordLastPrice(string, string, float64) {}
func (nopMetrics) RecordLatency(string, float64)          {}
func (nopMetrics) RecordAdvisoryCall(string)              {}

type fakeProc struct {
	err   error
	calls int
}

func (f *fakeProc) Process(context.Context, *models.PriceRecord) error {
	f.calls++
	return f.err
}

func validRecord() *models.PriceRecord {
	return &models.PriceRecord{
		Commodity:   "Wheat",
		Market:      "Khanna Mandi",
		ArrivalDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		ModalPrice:  2220,
	}
}

func TestPipelineForwardsValidRecord(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	assert.NoError(t, p.Process(context.Background(), validRecord()))
	assert.Equal(t, 1, proc.calls)
}

func TestPipelineRejectsInvalidRecords(t *testing.T) {
	proc := &fakeProc{}
	p := NewIngestPipeline(proc, nopMetrics{})

	cases := []*models.PriceRecord{
		nil,
		{Market: "M", ArrivalDate: time.Now(), ModalPrice: 100},
		{Commodity: "C", Market: "M", ModalPrice: 100},
		{Commodity: "C", Market: "M", ArrivalDate: time.Now(), ModalPrice: 0},
	}
	for _, r := range cases {
		assert.Error(t, p.Process(context.Background(), r))
	}
	assert.Zero(t, proc.calls)
}

func TestPipelineBuffersOnDownstreamFailure(t *testing.T) {
	proc := &fakeProc{err: errors.New("kafka unavailable")}
	p := NewIngestPipeline(proc, nopMetrics{}, WithBufferSize(4))

	err := p.Process(context.Background(), validRecord())
	assert.Error(t, err)
	assert.Len(t, p.bufCh, 1)
}

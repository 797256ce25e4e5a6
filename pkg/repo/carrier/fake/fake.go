package fake

import (
	// 外部依赖
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	// 内部引用
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
)

// FakeCarrier 测试与本地联调用的承运商替身。
// 行为可注入，默认按 tracking number 哈希出确定性的轨迹状态。
type FakeCarrier struct {
	mu sync.Mutex

	ValidateErr error
	Corrected   *repo.CarrierAddress
	QuoteErr    error
	LabelErr    error
	TrackingErr error
	Status      string // 为空时按哈希决定

	labelSeq   int
	QuoteCalls int
	LabelCalls int
	TrackCalls int
}

func New() *FakeCarrier { return &FakeCarrier{} }

func (f *FakeCarrier) ValidateAddress(_ context.Context, addr *repo.CarrierAddress) (*repo.AddressValidation, error) {
	if f.ValidateErr != nil {
		return nil, f.ValidateErr
	}
	return &repo.AddressValidation{Valid: true, Corrected: f.Corrected}, nil
}

func (f *FakeCarrier) QuoteRate(_ context.Context, req *repo.RateRequest) (*repo.RateQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.QuoteCalls++
	if f.QuoteErr != nil {
		return nil, f.QuoteErr
	}
	return &repo.RateQuote{Rate: 18.75 + req.Weight}, nil
}

func (f *FakeCarrier) GenerateLabel(_ context.Context, req *repo.LabelRequest) (*repo.Label, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LabelCalls++
	if f.LabelErr != nil {
		return nil, f.LabelErr
	}
	f.labelSeq++
	eta := time.Now().UTC().Add(72 * time.Hour)
	return &repo.Label{
		TrackingNumber:    fmt.Sprintf("1ZFAKE%08d", f.labelSeq),
		LabelURL:          fmt.Sprintf("labels/fake-%d.pdf", f.labelSeq),
		Cost:              18.75,
		EstimatedDelivery: &eta,
	}, nil
}

func (f *FakeCarrier) GetTracking(_ context.Context, trackingNumber string) (*repo.TrackingInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TrackCalls++
	if f.TrackingErr != nil {
		return nil, f.TrackingErr
	}

	status := f.Status
	if status == "" {
		h := fnv.New32a()
		_, _ = h.Write([]byte(trackingNumber))
		status = repo.TrackingStatusInTransit
		if h.Sum32()%5 == 0 {
			status = repo.TrackingStatusDelivered
		}
	}
	return &repo.TrackingInfo{Status: status, Location: "SORT FACILITY"}, nil
}

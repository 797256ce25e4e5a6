package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// CustodyRepo 链式监管台账。只有 Append 与按时间升序的读取，
// 接口上不存在任何更新或删除。
type CustodyRepo interface {
	Append(ctx context.Context, event *model.CustodyEvent) error
	ListByShipment(ctx context.Context, shipmentID int64) ([]*model.CustodyEvent, error)
	ListBySample(ctx context.Context, sampleID int64) ([]*model.CustodyEvent, error)
}

package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	model "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

// SortOrder 定义排序方向
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// SampleQuery 过滤条件
type SampleQuery struct {
	Status     *model.SampleStatus
	NameLike   *string
	LotNumber  *string
	CAS        *string
	HazmatOnly bool
	OrderBy    string // 默认 id desc
	Offset     int
	Limit      int
}

type SampleRepo interface {
	TxExecutor

	CreateSample(ctx context.Context, data *model.Sample) error
	GetSampleByUUID(ctx context.Context, id uuid.UUID) (*model.Sample, error)
	GetSampleByLot(ctx context.Context, lotNumber string) (*model.Sample, error)
	// GetSampleForUpdate 行级锁读取，必须在事务内调用。
	GetSampleForUpdate(ctx context.Context, id uuid.UUID) (*model.Sample, error)
	// UpdateQuantity 回写扣减后的数量与状态。
	UpdateQuantity(ctx context.Context, id int64, quantity string, status model.SampleStatus) error
	ListSamples(ctx context.Context, q SampleQuery) ([]*model.Sample, int64, error)
}

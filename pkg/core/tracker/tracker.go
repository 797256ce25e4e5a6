package tracker

import (
	// 外部依赖
	"context"
	"sync"
	"time"

	ants "github.com/panjf2000/ants/v2"
	r "github.com/redis/go-redis/v9"

	// 内部引用
	config "github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	common "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common"
	uuid "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/uuid"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	shipment "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment"
	impl "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/shipment/shipment"
	auth "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/auth"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	redis "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/redis"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
	shipStore "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/shipment"
	utils "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/utils"
)

const lockKey = "tlink:tracker:lock"

// systemActor 后台轮询没有请求上下文，以内部物流身份推进状态。
var systemActor = &auth.Actor{ID: "system-tracker", Name: "tracker", Role: common.Logistics}

// Tracker 周期扫描 shipped 状态的发运单并向承运商询问轨迹，
// 多实例部署时靠 redis 锁保证同一周期只有一个实例在跑。
type Tracker struct {
	shipmentStore repo.ShipmentRepo
	sService      shipment.Service
	pool          *ants.Pool
	rClient       *r.Client
	interval      time.Duration
	batch         int
}

func New(carrier repo.Carrier, msgCenter notify.MsgCenter) (*Tracker, error) {
	conf := config.Global().Tracker
	pool, err := ants.NewPool(conf.PoolSize, ants.WithNonblocking(false))
	if err != nil {
		return nil, err
	}
	return &Tracker{
		shipmentStore: shipStore.New(),
		sService:      impl.NewShipment(carrier, msgCenter),
		pool:          pool,
		rClient:       redis.GetClient(),
		interval:      time.Duration(conf.IntervalSeconds) * time.Second,
		batch:         conf.BatchSize,
	}, nil
}

// Run 阻塞运行直到 ctx 取消。
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	defer t.pool.Release()

	logger.Infof(ctx, "tracker started interval: %s, batch: %d", t.interval, t.batch)
	t.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Infof(ctx, "tracker exit")
			return
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

func (t *Tracker) runOnce(ctx context.Context) {
	// 锁的 TTL 取轮询周期，实例崩溃后下一周期自动接管
	ok, err := t.rClient.SetNX(ctx, lockKey, systemActor.ID, t.interval).Result()
	if err != nil {
		logger.Errorf(ctx, "acquire tracker lock err: %+v", err)
		return
	}
	if !ok {
		logger.Debugf(ctx, "tracker lock held elsewhere, skip round")
		return
	}

	actorCtx := auth.WithActor(ctx, systemActor)
	rows, err := t.shipmentStore.ListShippedWithTracking(actorCtx, t.batch)
	if err != nil {
		logger.Errorf(ctx, "list shipped shipments err: %+v", err)
		return
	}
	if len(rows) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, row := range rows {
		row := row
		wg.Add(1)
		err := t.pool.Submit(func() {
			defer wg.Done()
			if err := utils.SafelyRun(func() {
				t.poll(actorCtx, row.UUID, row.ShipmentNumber)
			}); err != nil {
				logger.Errorf(ctx, "poll panic shipment: %s, err: %+v", row.ShipmentNumber, err)
			}
		})
		if err != nil {
			wg.Done()
			logger.Errorf(ctx, "submit poll task err: %+v", err)
		}
	}
	wg.Wait()
}

func (t *Tracker) poll(ctx context.Context, id uuid.UUID, number string) {
	resp, err := t.sService.PollTracking(ctx, &shipment.TrackReq{UUID: id})
	if err != nil {
		// 承运商侧抖动是常态，warn 级别即可
		logger.Warnf(ctx, "poll tracking fail shipment: %s, err: %+v", number, err)
		return
	}
	logger.Infof(ctx, "polled shipment: %s, status: %s, tracking: %s", number, resp.Status, resp.TrackingStatus)
}

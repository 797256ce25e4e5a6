package confirm

import (
	// 外部依赖
	"context"
	"encoding/json"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	notify "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/core/notify"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
)

/*
	发运生命周期广播的消费者。apiserver 启动时注册，
	把收到的消息落成面向申请人的结构化确认记录。
*/

var shipmentActions = []notify.Action{
	notify.ShipmentCreated,
	notify.ShipmentFulfilled,
	notify.ShipmentDelivered,
}

func Register(ctx context.Context, center notify.MsgCenter) error {
	for _, action := range shipmentActions {
		if err := center.Registry(ctx, action, OnShipmentNotify); err != nil {
			return err
		}
	}
	return center.Registry(ctx, notify.SupplyLowStock, OnSupplyLowStock)
}

func OnShipmentNotify(ctx context.Context, payload string) error {
	msg := &notify.SendMsg{}
	if err := json.Unmarshal([]byte(payload), msg); err != nil {
		return code.NotifyPayloadErr.WithErr(err)
	}

	logger.Infof(ctx, "shipment confirmation channel: %s, number: %s, status: %s, actor: %s, msg: %s",
		msg.Channel, msg.ShipmentNumber, msg.Status, msg.Actor, msg.UUID)
	return nil
}

func OnSupplyLowStock(ctx context.Context, payload string) error {
	msg := &notify.SendMsg{}
	if err := json.Unmarshal([]byte(payload), msg); err != nil {
		return code.NotifyPayloadErr.WithErr(err)
	}

	logger.Warnf(ctx, "supply low stock alert actor: %s, detail: %+v, msg: %s",
		msg.Actor, msg.Data, msg.UUID)
	return nil
}

package migrate

import (
	"context"

	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/db"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	"github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo/model"
)

func Table(ctx context.Context) error {
	d := db.DB().DBWithContext(ctx)
	models := []any{
		&model.Sample{},
		&model.Shipment{},
		&model.ShipmentSample{},
		&model.ShippingSupply{},
		&model.SupplyTransaction{},
		&model.CustodyEvent{},
		&model.DangerousGoodsDeclaration{},
	}
	for _, m := range models {
		if err := d.AutoMigrate(m); err != nil {
			logger.Errorf(ctx, "migrate table err: %+v", err)
			return err
		}
	}
	return nil
}

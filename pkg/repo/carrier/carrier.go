package carrier

import (
	// 外部依赖
	"context"
	"encoding/json"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"

	// 内部引用
	config "github.com/TeleosTLink-commits/T-Link-Production-sub001/internal/config"
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
	logger "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/middleware/logger"
	repo "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/repo"
)

type carrierClient struct {
	client *resty.Client
}

// New 构造承运商 HTTP 客户端。超时必须有界：
// 所有调用都发生在数据库事务之外。
func New() repo.Carrier {
	conf := config.Global().Carrier
	return &carrierClient{
		client: resty.New().
			SetBaseURL(conf.Addr).
			SetHeader("X-Api-Key", conf.APIKey).
			SetTimeout(time.Duration(conf.TimeoutSeconds) * time.Second),
	}
}

func (c *carrierClient) ValidateAddress(ctx context.Context, addr *repo.CarrierAddress) (*repo.AddressValidation, error) {
	resp, err := c.client.R().SetContext(ctx).
		SetBody(addr).
		Post("/v1/address/validate")
	if err != nil {
		logger.Errorf(ctx, "ValidateAddress http err: %+v", err)
		return nil, code.CarrierServiceErr.WithErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, code.CarrierServiceErr.WithMsgf("validate address http code: %d", resp.StatusCode())
	}

	result := &repo.AddressValidation{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, code.CarrierServiceErr.WithErr(err)
	}
	return result, nil
}

func (c *carrierClient) QuoteRate(ctx context.Context, req *repo.RateRequest) (*repo.RateQuote, error) {
	resp, err := c.client.R().SetContext(ctx).
		SetBody(req).
		Post("/v1/rate/quote")
	if err != nil {
		logger.Errorf(ctx, "QuoteRate http err: %+v", err)
		return nil, code.CarrierRateQuoteErr.WithErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, code.CarrierRateQuoteErr.WithMsgf("quote rate http code: %d", resp.StatusCode())
	}

	result := &repo.RateQuote{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, code.CarrierRateQuoteErr.WithErr(err)
	}
	return result, nil
}

func (c *carrierClient) GenerateLabel(ctx context.Context, req *repo.LabelRequest) (*repo.Label, error) {
	resp, err := c.client.R().SetContext(ctx).
		SetBody(req).
		Post("/v1/label")
	if err != nil {
		logger.Errorf(ctx, "GenerateLabel http err: %+v", err)
		return nil, code.CarrierServiceErr.WithErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, code.CarrierServiceErr.WithMsgf("generate label http code: %d", resp.StatusCode())
	}

	result := &repo.Label{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, code.CarrierServiceErr.WithErr(err)
	}
	if result.TrackingNumber == "" {
		return nil, code.CarrierServiceErr.WithMsg("carrier returned empty tracking number")
	}
	return result, nil
}

func (c *carrierClient) GetTracking(ctx context.Context, trackingNumber string) (*repo.TrackingInfo, error) {
	resp, err := c.client.R().SetContext(ctx).
		SetQueryParam("tracking_number", trackingNumber).
		Get("/v1/tracking")
	if err != nil {
		logger.Errorf(ctx, "GetTracking http err: %+v", err)
		return nil, code.CarrierTrackingErr.WithErr(err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, code.CarrierTrackingErr.WithMsgf("get tracking http code: %d", resp.StatusCode())
	}

	result := &repo.TrackingInfo{}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, code.CarrierTrackingErr.WithErr(err)
	}
	return result, nil
}

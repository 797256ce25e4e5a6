package code

import (
	"fmt"
	"net/http"
)

// Code 业务错误码。Value 的万位段对应 HTTP 状态码段，
// 例如 4xxxx -> 400, 40100 -> 401, 5xxxx -> 500。
type Code struct {
	Value int    `json:"code"`
	Msg   string `json:"msg"`
	cause error
}

func New(value int, msg string) *Code {
	return &Code{Value: value, Msg: msg}
}

func (c *Code) Error() string {
	if c.cause != nil {
		return fmt.Sprintf("code: %d, msg: %s, cause: %v", c.Value, c.Msg, c.cause)
	}
	return fmt.Sprintf("code: %d, msg: %s", c.Value, c.Msg)
}

func (c *Code) String() string {
	return c.Msg
}

// WithMsg 返回携带覆盖消息的副本，不修改全局错误码本身。
func (c *Code) WithMsg(msg string) *Code {
	return &Code{Value: c.Value, Msg: msg, cause: c.cause}
}

func (c *Code) WithMsgf(format string, args ...any) *Code {
	return c.WithMsg(fmt.Sprintf(format, args...))
}

// WithErr 附带底层错误，仅写入日志，不会出现在响应体里。
func (c *Code) WithErr(err error) *Code {
	return &Code{Value: c.Value, Msg: c.Msg, cause: err}
}

func (c *Code) Unwrap() error {
	return c.cause
}

func (c *Code) Is(target error) bool {
	t, ok := target.(*Code)
	return ok && t.Value == c.Value
}

// HTTPStatus 根据错误码段推导 HTTP 状态码。
func (c *Code) HTTPStatus() int {
	switch {
	case c.Value == 0:
		return http.StatusOK
	case c.Value >= 50000:
		return http.StatusInternalServerError
	case c.Value >= 40900 && c.Value < 41000:
		return http.StatusConflict
	case c.Value >= 40400 && c.Value < 40500:
		return http.StatusNotFound
	case c.Value >= 40300 && c.Value < 40400:
		return http.StatusForbidden
	case c.Value >= 40100 && c.Value < 40200:
		return http.StatusUnauthorized
	case c.Value >= 40000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var (
	OK = New(0, "ok")

	// 参数与鉴权
	ParamErr       = New(40001, "invalid param")
	UnLogin        = New(40101, "not logged in")
	InvalidToken   = New(40102, "invalid token")
	LoginFormatErr = New(40103, "authorization header format error")
	Forbidden      = New(40301, "operation not permitted for role")

	// 通用存储
	QueryRecordErr = New(50001, "query record error")
	CreateDataErr  = New(50002, "create record error")
	UpdateDataErr  = New(50003, "update record error")
	InternalErr    = New(50000, "internal error")

	// 样品与数量
	SampleNotFound          = New(40402, "sample not found")
	SampleNotActiveErr      = New(40002, "sample is not active")
	InvalidQuantityFormat   = New(40003, "sample quantity format is not parseable")
	InsufficientQuantityErr = New(40004, "insufficient sample quantity")

	// 发运
	ShipmentNotFound       = New(40403, "shipment not found")
	ShipmentItemLimitErr   = New(40005, "shipment must contain between 1 and 10 items")
	ShipmentAddressErr     = New(40006, "recipient address is incomplete")
	ShipmentPhoneErr       = New(40007, "recipient phone is required")
	ShipmentStateErr       = New(40008, "shipment status does not allow this operation")
	ShipmentTrackingErr    = New(40009, "shipment has no tracking number")
	DuplicateSampleLineErr = New(40010, "sample listed more than once")
	ShipmentConflictErr    = New(40901, "shipment number conflict")

	// 耗材
	SupplyNotFound          = New(40404, "shipping supply not found")
	InsufficientSupplyErr   = New(40011, "insufficient shipping supply stock")
	SupplyTransactionErr    = New(50005, "record supply transaction error")
	DeclarationNotFound     = New(40405, "dangerous goods declaration not found")
	DeclarationCreateErr    = New(50006, "create dangerous goods declaration error")
	CustodyAppendErr        = New(50007, "append custody event error")
	NotifyPublishErr        = New(50009, "publish notify message error")
	NotifyActionRegistryErr = New(50010, "notify action already registered")
	NotifyPayloadErr        = New(50011, "decode notify message error")

	// 外部承运商
	CarrierServiceErr   = New(50201, "carrier service unavailable, retry later")
	CarrierTrackingErr  = New(50202, "carrier tracking query failed, retry later")
	CarrierRateQuoteErr = New(50203, "carrier rate quote failed, retry later")
)

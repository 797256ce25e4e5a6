package quantity

import (
	// 外部依赖
	"regexp"
	"strconv"
	"strings"

	// 内部引用
	code "github.com/TeleosTLink-commits/T-Link-Production-sub001/pkg/common/code"
)

// 数量字符串里所有数值 token 求和即为总量。
// 同时覆盖单值（"12.86g"）与分容器明细（"1: 0.91g, 2: 3.91g"）两种格式：
// 明细格式的容器序号也会被加进去，这是历史数据的既有口径，不能改。
var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

const epsilon = 1e-9

// DepletedSentinel 耗尽后的数量落库值，下游据此与 "0g" 之类的数值串区分。
const DepletedSentinel = "0"

// Tokens 提取字符串中的全部数值 token。
func Tokens(quantity string) []float64 {
	matches := numberPattern.FindAllString(quantity, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Total 解析数量字符串并返回数值 token 之和。
// 不含任何数值 token 的字符串视为格式非法，绝不按 0 或无穷处理。
func Total(quantity string) (float64, error) {
	tokens := Tokens(quantity)
	if len(tokens) == 0 {
		return 0, code.InvalidQuantityFormat.WithMsgf("quantity %q has no numeric tokens", quantity)
	}
	var sum float64
	for _, t := range tokens {
		sum += t
	}
	return sum, nil
}

// DebitResult 扣减结果。
type DebitResult struct {
	Remaining  float64
	Serialized string // 回写样品的数量字符串
	Depleted   bool
}

// Debit 对当前数量字符串执行一次扣减。
// amount 超过可用总量时返回 code.InsufficientQuantityErr，不产生任何变化；
// 扣减到 0 时序列化为耗尽哨兵值而不是带单位的数值串。
func Debit(current string, amount float64, unit string) (*DebitResult, error) {
	if amount <= 0 {
		return nil, code.ParamErr.WithMsg("debit amount must be positive")
	}

	total, err := Total(current)
	if err != nil {
		return nil, err
	}

	if amount > total+epsilon {
		return nil, code.InsufficientQuantityErr.WithMsgf(
			"requested %s, available %s", Format(amount, unit), Format(total, unit))
	}

	remaining := total - amount
	if remaining <= epsilon {
		return &DebitResult{Remaining: 0, Serialized: DepletedSentinel, Depleted: true}, nil
	}
	return &DebitResult{Remaining: remaining, Serialized: Format(remaining, unit)}, nil
}

// Format 数值加单位，保留至多三位小数并去掉尾零。
func Format(v float64, unit string) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + unit
}

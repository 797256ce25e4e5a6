package hazmat

// VolumeThreshold 聚合发货量达到该值（默认小体积单位）即整单判定为危险品。
const VolumeThreshold = 30.0

// DefaultUnit 小体积默认单位。
const DefaultUnit = "g"

// Attributes 一组危险品运输属性，可能来自样品主数据，也可能来自发货行覆盖。
type Attributes struct {
	UNNumber           string
	HazardClass        string
	PackingGroup       string
	ProperShippingName string
}

// Regulated 任一字段非空即认为该物料受运输管制。
func (a Attributes) Regulated() bool {
	return a.UNNumber != "" || a.HazardClass != "" || a.PackingGroup != "" || a.ProperShippingName != ""
}

// Effective 逐字段合并主数据与行级覆盖，覆盖值优先。
func Effective(master, override Attributes) Attributes {
	out := master
	if override.UNNumber != "" {
		out.UNNumber = override.UNNumber
	}
	if override.HazardClass != "" {
		out.HazardClass = override.HazardClass
	}
	if override.PackingGroup != "" {
		out.PackingGroup = override.PackingGroup
	}
	if override.ProperShippingName != "" {
		out.ProperShippingName = override.ProperShippingName
	}
	return out
}

// Result 整单危险品判定结果。
type Result struct {
	IsHazmat            bool
	RequiresDeclaration bool
	// Regulated 命中的管制行属性，建申报单时取第一条。
	Regulated []Attributes
}

// Classify 对一票发货做危险品判定：
// 任一行受管制，或聚合发货量达到阈值，即整单危险品；
// 危险品发货一律需要申报单，二者当前并无独立开关。
func Classify(lines []Attributes, aggregate float64) Result {
	var res Result
	for _, ln := range lines {
		if ln.Regulated() {
			res.Regulated = append(res.Regulated, ln)
		}
	}
	if len(res.Regulated) > 0 || aggregate >= VolumeThreshold {
		res.IsHazmat = true
		res.RequiresDeclaration = true
	}
	return res
}

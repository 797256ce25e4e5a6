package common

type Role string

const (
	Admin     Role = "admin"
	LabStaff  Role = "lab_staff"
	Logistics Role = "logistics"
	Requester Role = "requester"
)

// FulfillmentRoles 允许推进发运履约状态机的角色集合。
// 创建发运请求对任意已登录用户开放。
var FulfillmentRoles = map[Role]struct{}{
	Admin:     {},
	LabStaff:  {},
	Logistics: {},
}

func CanFulfill(r Role) bool {
	_, ok := FulfillmentRoles[r]
	return ok
}

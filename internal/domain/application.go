package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// 状态之间可以任意切换，不存在终态
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusAccepted,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Application struct {
	ID        int64             `json:"id"`
	JobID     int64             `json:"jobId"`
	UserID    int64             `json:"userId"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ApplicationDetail 是管理员查看申请列表时使用的只读视图
type ApplicationDetail struct {
	Application
	JobTitle string `json:"jobTitle"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

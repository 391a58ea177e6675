package domain

import "time"

type Job struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Salary       string    `json:"salary"`
	CreatedAt    time.Time `json:"createdAt"`
}

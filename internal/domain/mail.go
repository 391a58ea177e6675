package domain

const (
	MailTypeWelcome       = "welcome"
	MailTypeStatusChanged = "status_changed"
)

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type WelcomeMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type StatusChangedMailData struct {
	FullName string            `json:"fullName"`
	JobTitle string            `json:"jobTitle"`
	Company  string            `json:"company"`
	Status   ApplicationStatus `json:"status"`
}

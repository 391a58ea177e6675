package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sysu-ecnc-dev/job-hub/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

// incomingMessage 与 domain.MailMessage 对应，Data 根据 Type 再次解码
type incomingMessage struct {
	Type string          `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

type mailTemplate struct {
	subject string
	tmpl    *template.Template
}

var statusLabels = map[domain.ApplicationStatus]string{
	domain.ApplicationStatusPending:  "待处理",
	domain.ApplicationStatusAccepted: "已通过",
	domain.ApplicationStatusRejected: "未通过",
}

func statusLabel(status domain.ApplicationStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// loadTemplates 在启动时解析所有邮件模板，模板缺失时 worker 不会启动
func loadTemplates(dir string) (map[string]mailTemplate, error) {
	files := map[string]struct {
		file    string
		subject string
	}{
		domain.MailTypeWelcome:       {"welcome_email.html", "JobHub - 欢迎注册"},
		domain.MailTypeStatusChanged: {"status_changed_email.html", "JobHub - 申请状态更新"},
	}

	templates := make(map[string]mailTemplate, len(files))
	for mailType, f := range files {
		tmpl, err := template.New(f.file).
			Funcs(template.FuncMap{"statusLabel": statusLabel}).
			ParseFiles(filepath.Join(dir, f.file))
		if err != nil {
			return nil, err
		}
		templates[mailType] = mailTemplate{subject: f.subject, tmpl: tmpl}
	}

	return templates, nil
}

func decodeMailData(msg incomingMessage) (any, error) {
	switch msg.Type {
	case domain.MailTypeWelcome:
		data := domain.WelcomeMailData{}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		return data, nil
	case domain.MailTypeStatusChanged:
		data := domain.StatusChangedMailData{}
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return nil, err
		}
		return data, nil
	default:
		return nil, fmt.Errorf("不支持的邮件类型: %s", msg.Type)
	}
}

// buildMail 根据消息类型选择模板并构建邮件
func buildMail(templates map[string]mailTemplate, from string, msg incomingMessage) (*mail.Msg, error) {
	t, ok := templates[msg.Type]
	if !ok {
		return nil, fmt.Errorf("不支持的邮件类型: %s", msg.Type)
	}

	data, err := decodeMailData(msg)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(msg.To); err != nil {
		return nil, err
	}
	m.Subject(t.subject)
	if err := m.SetBodyHTMLTemplate(t.tmpl, data); err != nil {
		return nil, err
	}

	return m, nil
}

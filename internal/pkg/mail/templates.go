package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*
var templateFS embed.FS

const (
	notificationFromName = "DMC Contact Form"
	autoReplyFromName    = "DMC"
)

var serviceLabels = map[string]map[string]string{
	"camu":  {"ja": "花夢 (CAMU) - 着物撮影", "en": "CAMU - Kimono Photography"},
	"chloe": {"ja": "Chloe - レンタルスタジオ", "en": "Chloe - Rental Studio"},
	"cafe":  {"ja": "アンティークカフェ", "en": "Antique Cafe"},
	"other": {"ja": "その他", "en": "Other"},
}

// Inquiry is the data rendered into both contact mails
type Inquiry struct {
	ID       string
	Name     string
	Email    string
	Phone    string
	Service  string
	Message  string
	Japanese bool
}

// Lang is "ja" or "en"
func (i Inquiry) Lang() string {
	if i.Japanese {
		return "ja"
	}
	return "en"
}

// ServiceLabel translates a service key. Unknown keys are shown as sent.
func (i Inquiry) ServiceLabel() string {
	if i.Service == "" {
		if i.Japanese {
			return "未選択"
		}
		return "Not selected"
	}
	if labels, ok := serviceLabels[i.Service]; ok {
		return labels[i.Lang()]
	}
	return i.Service
}

func (i Inquiry) PhoneLabel() string {
	if i.Phone != "" {
		return i.Phone
	}
	if i.Japanese {
		return "未入力"
	}
	return "Not provided"
}

// Notification is the operator mail. Replies go straight to the submitter.
func Notification(to string, inq Inquiry) (Message, error) {
	subject := fmt.Sprintf("[Contact Form] Message from %s", inq.Name)
	if inq.Japanese {
		subject = fmt.Sprintf("【お問い合わせ】%s様より", inq.Name)
	}

	text, html, err := render("notification", inq)
	if err != nil {
		return Message{}, err
	}
	return Message{
		FromName: notificationFromName,
		To:       to,
		ReplyTo:  inq.Email,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}, nil
}

// AutoReply is the acknowledgement sent to the submitter
func AutoReply(inq Inquiry) (Message, error) {
	subject := "Thank you for contacting us - DMC"
	if inq.Japanese {
		subject = "お問い合わせありがとうございます - DMC"
	}

	text, html, err := render("autoreply", inq)
	if err != nil {
		return Message{}, err
	}
	return Message{
		FromName: autoReplyFromName,
		To:       inq.Email,
		Subject:  subject,
		Text:     text,
		HTML:     html,
	}, nil
}

func render(kind string, inq Inquiry) (string, string, error) {
	base := kind + "_" + inq.Lang()

	textTmpl, err := texttemplate.ParseFS(templateFS, "templates/"+base+".txt")
	if err != nil {
		return "", "", fmt.Errorf("parse %s.txt: %w", base, err)
	}
	var text bytes.Buffer
	if err := textTmpl.Execute(&text, inq); err != nil {
		return "", "", fmt.Errorf("render %s.txt: %w", base, err)
	}

	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "templates/layout.html", "templates/"+base+".html")
	if err != nil {
		return "", "", fmt.Errorf("parse %s.html: %w", base, err)
	}
	var html bytes.Buffer
	if err := htmlTmpl.ExecuteTemplate(&html, "layout", inq); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", base, err)
	}

	return text.String(), html.String(), nil
}

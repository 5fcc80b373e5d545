// Package whatsapp builds wa.me deep links used by the site's contact
// buttons and the admin referral list.
package whatsapp

import (
	"net/url"
	"strings"
)

const (
	baseURL = "https://wa.me/"

	// countryCode is prefixed to local Brazilian numbers
	countryCode = "55"
)

// Message templates by topic
const (
	TopicGeneral  = "general"
	TopicBusiness = "business"
	TopicCoverage = "coverage"
	TopicSupport  = "support"
)

var templates = map[string]string{
	TopicGeneral:  "Olá! Gostaria de saber mais sobre os planos de internet da Octorlink.",
	TopicBusiness: "Olá! Tenho interesse na Internet Empresarial da Octorlink.",
	TopicCoverage: "Olá! Gostaria de verificar a cobertura na minha região.",
	TopicSupport:  "Olá! Preciso de suporte técnico.",
}

// Template returns the prefilled message for topic
func Template(topic string) (string, bool) {
	msg, ok := templates[topic]
	return msg, ok
}

// Link builds a chat link for number, with an optional prefilled message
func Link(number, message string) string {
	link := baseURL + digits(number)
	if message != "" {
		link += "?text=" + url.PathEscape(message)
	}
	return link
}

// ContactLink opens a chat with a phone typed in local format
func ContactLink(phone string) string {
	d := digits(phone)
	if d == "" {
		return ""
	}
	if !strings.HasPrefix(d, countryCode) || len(d) <= 11 {
		d = countryCode + d
	}
	return baseURL + d
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Linker builds links to the company's own number
type Linker struct {
	Number string
}

// TopicLink returns the link for a named topic, falling back to general
func (l Linker) TopicLink(topic string) string {
	msg, ok := Template(topic)
	if !ok {
		msg = templates[TopicGeneral]
	}
	return Link(l.Number, msg)
}

package core

import (
	"bytes"
	htmltmpl "html/template"
	"io/fs"
	"net/mail"
	"strings"
	"sync"
	texttmpl "text/template"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/fs"
)

var (
	mailTemplates tmplCache
	mailTmplErr   error
	mailTmplInit  sync.Once

	mailTmplDir = "templates/email"
)

type (
	tmplCacheEntry struct {
		text *texttmpl.Template
		html *htmltmpl.Template
	}
	tmplCache map[string]*tmplCacheEntry // {name: entry}

	EmailMessage struct {
		To      []mail.Address
		Cc      []mail.Address
		Bcc     []mail.Address
		Subject string

		// templated contents
		TemplateName string // without ext
		TemplateData interface{}
		TextContent  string
		HTMLContent  string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently and waits for all sends to complete.
		SendMessages(messages ...*EmailMessage) error
	}
)

func (m *EmailMessage) Render() error {
	if m.TemplateName == "" {
		return nil
	}
	mailTmplInit.Do(parseMailTemplates) // only execute once during first render
	if mailTmplErr != nil {
		return errors.Wrap(mailTmplErr, "parsing email templates")
	}

	entry, ok := mailTemplates[m.TemplateName]
	if !ok {
		return errors.Errorf("email template %q not found", m.TemplateName)
	}

	var buff bytes.Buffer
	if entry.text != nil && m.TextContent == "" {
		if err := entry.text.ExecuteTemplate(&buff, "base", m.TemplateData); err != nil {
			return errors.Wrap(err, "rendering text content")
		}
		m.TextContent = buff.String()
		buff.Reset()
	}
	if entry.html != nil && m.HTMLContent == "" {
		if err := entry.html.ExecuteTemplate(&buff, "base", m.TemplateData); err != nil {
			return errors.Wrap(err, "rendering html content")
		}
		m.HTMLContent = buff.String()
	}
	return nil
}

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }

func parseMailTemplates() {
	mailTemplates = make(tmplCache)
	fps, err := fs.Glob(appfs.FS, mailTmplDir+"/*")
	if err != nil {
		mailTmplErr = err
		return
	}

	for _, fp := range fps {
		fname := fp[strings.LastIndex(fp, "/")+1:]
		dot := strings.LastIndex(fname, ".")
		if strings.HasPrefix(fname, "_") || dot < 0 {
			continue
		}
		name, ext := fname[:dot], fname[dot:]
		entry, ok := mailTemplates[name]
		if !ok {
			entry = new(tmplCacheEntry)
			mailTemplates[name] = entry
		}
		switch ext {
		case ".txt":
			if entry.text, err = texttmpl.ParseFS(appfs.FS, mailTmplDir+"/_base.txt", fp); err != nil {
				mailTmplErr = err
				return
			}
			entry.text = entry.text.Option("missingkey=error")
		case ".gohtml":
			if entry.html, err = htmltmpl.ParseFS(appfs.FS, mailTmplDir+"/_base.gohtml", fp); err != nil {
				mailTmplErr = err
				return
			}
			entry.html = entry.html.Option("missingkey=error")
		}
	}
}

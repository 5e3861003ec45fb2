package emailsvc

import (
	"net/mail"

	"github.com/trezcool/gradebook/core"
)

func fromAddress(conf *core.Config) mail.Address {
	if addr, err := mail.ParseAddress(conf.DefaultFromEmail); err == nil {
		if addr.Name == "" {
			addr.Name = conf.AppName
		}
		return *addr
	}
	return mail.Address{Name: conf.AppName, Address: conf.DefaultFromEmail}
}

func subjectPrefix(conf *core.Config) string {
	return "[" + conf.AppName + "] "
}

func sendable(msg *core.EmailMessage) bool {
	return msg.HasRecipients() && msg.HasContent()
}

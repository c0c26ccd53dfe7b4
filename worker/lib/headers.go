package lib

import (
	"strings"

	"github.com/emersion/go-message/mail"
)

// keptHeaders are the fields retained in memory once a message header has
// been parsed. Everything else is dropped to keep large mailboxes small.
var keptHeaders = []string{
	"Message-ID", "Date", "From", "To", "Cc", "Subject",
	"In-Reply-To", "References",
	"X-Keywords", "Keywords", "X-Label", "Status", "X-Status",
}

// limitHeaders returns a copy of hdr restricted to the given fields.
func limitHeaders(hdr *mail.Header, fields []string) mail.Header {
	fieldMap := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		fieldMap[strings.ToLower(f)] = struct{}{}
	}
	var nh mail.Header
	curFields := hdr.Fields()
	for curFields.Next() {
		if _, ok := fieldMap[strings.ToLower(curFields.Key())]; !ok {
			continue
		}
		nh.Add(curFields.Key(), curFields.Value())
	}
	return nh
}

package templates

import (
	"time"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Data is what a placeholder can refer to.
type Data struct {
	Date    time.Time
	Index   int
	Total   int
	From    string
	Subject string
	Tags    []string
	// Response is the tree connector of a nested reply, nil elsewhere.
	Response *string
}

// MessageData collects the fields of msg at position index of total.
func MessageData(msg models.Message, index, total int, response *string) (*Data, error) {
	from, err := models.HeaderValue(msg, "From")
	if err != nil {
		return nil, err
	}
	subject, err := models.HeaderValue(msg, "Subject")
	if err != nil {
		return nil, err
	}
	return &Data{
		Date:     msg.Date(),
		Index:    index,
		Total:    total,
		From:     from,
		Subject:  subject,
		Tags:     msg.Tags(),
		Response: response,
	}, nil
}

// ThreadData summarizes a thread: index is the number of matched messages,
// from lists the authors and the date is the one of the newest message.
func ThreadData(t models.Thread) *Data {
	return &Data{
		Date:    t.NewestDate(),
		Index:   t.MatchedMessages(),
		Total:   t.TotalMessages(),
		From:    models.JoinAuthors(t.Authors()),
		Subject: t.Subject(),
		Tags:    t.Tags(),
	}
}

// DummyData is used to validate formats. With reply set, the response
// field is available.
func DummyData(reply bool) *Data {
	data := &Data{
		Date:    time.Date(2021, 11, 9, 12, 0, 0, 0, time.UTC),
		Index:   1,
		Total:   2,
		From:    "John Doe <john@example.org>",
		Subject: "Hello",
		Tags:    []string{"inbox", "unread"},
	}
	if reply {
		response := "└─"
		data.Response = &response
	}
	return data
}

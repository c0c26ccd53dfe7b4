package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func read(t *testing.T, raw string) *Message {
	t.Helper()
	msg, err := ReadMessage(strings.NewReader(raw+"\n"), "")
	require.NoError(t, err)
	return msg
}

// fixture returns two threads: a/b/c (c replies to b) and d.
func fixture(t *testing.T) []*Message {
	t.Helper()
	return []*Message{
		read(t, "Message-ID: <a@x>\n"+
			"Date: Mon, 01 Nov 2021 10:00:00 +0000\n"+
			"From: Alice <alice@x.org>\n"+
			"To: Bob <bob@x.org>\n"+
			"Subject: hello\n").SetTags("inbox"),
		read(t, "Message-ID: <c@x>\n"+
			"In-Reply-To: <b@x>\n"+
			"References: <a@x> <b@x>\n"+
			"Date: Wed, 03 Nov 2021 10:00:00 +0000\n"+
			"From: Carol <carol@x.org>\n"+
			"Subject: Re: hello\n").SetTags("inbox", "spam"),
		read(t, "Message-ID: <b@x>\n"+
			"In-Reply-To: <a@x>\n"+
			"References: <a@x>\n"+
			"Date: Tue, 02 Nov 2021 10:00:00 +0000\n"+
			"From: Bob <bob@x.org>\n"+
			"Subject: Re: hello\n").SetTags("inbox", "unread"),
		read(t, "Message-ID: <d@x>\n"+
			"Date: Fri, 05 Nov 2021 10:00:00 +0000\n"+
			"From: Dave <dave@x.org>\n"+
			"Subject: Quarterly report\n").SetTags("work"),
	}
}

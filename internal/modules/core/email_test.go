package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func headerLines(t *testing.T, content []byte) []string {
	t.Helper()

	headers, _, found := strings.Cut(string(content), "\r\n\r\n")
	require.True(t, found)

	return strings.Split(headers, "\r\n")
}

func Test_MailMessage_Content_Keeps_Injected_Line_Breaks_Out_Of_Headers(t *testing.T) {
	// Arrange
	message := MailMessage{
		Subject:    "Your request to join X\r\nBcc: victim@example.com\n\n<a href=\"https://phish\">login</a>",
		From:       "tables@example.com",
		To:         []string{"player@example.com"},
		BodyString: "Hi player,\n",
	}

	// Act
	lines := headerLines(t, message.Content())

	// Assert
	require.Len(t, lines, 3)
	require.Equal(t, "From: tables@example.com", lines[0])
	require.Equal(t, "To: player@example.com", lines[1])
	require.True(t, strings.HasPrefix(lines[2], "Subject: Your request to join X"))

	for _, line := range lines {
		require.False(t, strings.HasPrefix(line, "Bcc:"))
	}
}

func Test_MailMessage_Content_Uses_CRLF_Line_Endings(t *testing.T) {
	// Arrange
	message := MailMessage{
		Subject:    "Approved",
		From:       "tables@example.com",
		To:         []string{"a@example.com", "b@example.com"},
		Cc:         []string{"gm@example.com"},
		BodyString: "body",
		IsHTML:     true,
	}

	// Act
	content := string(message.Content())

	// Assert
	require.Equal(t, strings.Count(content, "\n"), strings.Count(content, "\r\n"))
	require.True(t, strings.HasSuffix(content, "\r\n\r\nbody"))
	require.Contains(t, content, "Cc: gm@example.com\r\n")
	require.Contains(t, content, "To: a@example.com,b@example.com\r\n")
}

package notify

import (
	"testing"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestStatusChangedMessage(t *testing.T) {
	client := domain.Client{
		ID:       1,
		FullName: "Grace Hopper",
		Email:    "grace@example.com",
	}

	t.Run("known transition uses its line", func(t *testing.T) {
		msg := StatusChangedMessage(client, domain.StatusSuggested, domain.StatusInterviewPending)
		require.Equal(t, "grace@example.com", msg.To)
		require.Equal(t, "Your application status: interview pending", msg.Subject)
		require.Contains(t, msg.Text, "would like to interview you")
		require.Contains(t, msg.HTML, "<strong>interview pending</strong>")
	})

	t.Run("unmapped transition falls back to the status line", func(t *testing.T) {
		msg := StatusChangedMessage(client, domain.StatusRejected, domain.StatusAssigned)
		require.Contains(t, msg.Text, "You have been assigned to a position.")
	})

	t.Run("unknown status falls back to the generic line", func(t *testing.T) {
		msg := StatusChangedMessage(client, domain.StatusPending, domain.Status("archived"))
		require.Contains(t, msg.Text, genericStatusLine)
		require.Equal(t, "Your application status: archived", msg.Subject)
	})

	t.Run("html escapes the client name", func(t *testing.T) {
		c := client
		c.FullName = "Grace <script>"
		msg := StatusChangedMessage(c, domain.StatusPending, domain.StatusInProgress)
		require.NotContains(t, msg.HTML, "<script>")
		require.Contains(t, msg.HTML, "Grace &lt;script&gt;")
	})
}

func TestSuggestedMessage(t *testing.T) {
	client := domain.Client{
		ID:            7,
		FullName:      "Grace Hopper",
		Email:         "grace@example.com",
		Location:      "Arlington",
		PreferredRole: "backend engineer",
		Skills:        "go, sql",
	}
	company := domain.Company{ID: 3, Name: "Acme", Email: "talent@example.com"}

	t.Run("subject names the candidate", func(t *testing.T) {
		msg := SuggestedMessage(client, company, "", "")
		require.Equal(t, "talent@example.com", msg.To)
		require.Equal(t, "New client suggested: Grace Hopper", msg.Subject)
	})

	t.Run("empty fields are skipped", func(t *testing.T) {
		msg := SuggestedMessage(client, company, "", "")
		require.NotContains(t, msg.Text, "Phone:")
		require.NotContains(t, msg.Text, "Education:")
		require.Contains(t, msg.Text, "Location: Arlington")
	})

	t.Run("links omitted when empty", func(t *testing.T) {
		msg := SuggestedMessage(client, company, "", "")
		require.NotContains(t, msg.HTML, "View CV")
		require.NotContains(t, msg.HTML, "Candidate details")
	})

	t.Run("links rendered when present", func(t *testing.T) {
		msg := SuggestedMessage(client, company,
			"https://cdn.test/cv.pdf",
			"https://app.test/share/clients/7?token=abc")
		require.Contains(t, msg.HTML, `<a href="https://cdn.test/cv.pdf">View CV</a>`)
		require.Contains(t, msg.HTML, "Candidate details")
		require.Contains(t, msg.Text, "CV: https://cdn.test/cv.pdf")
		require.Contains(t, msg.Text, "token=abc")
	})
}

func TestTruncateSkills(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"whitespace only", " , ,", ""},
		{"short list unchanged", "go, sql", "go, sql"},
		{"exactly the cap", "a, b, c, d, e", "a, b, c, d, e"},
		{"overflow collapses", "a, b, c, d, e, f, g", "a, b, c, d, e +2 more"},
		{"messy spacing normalized", " go ,  sql,", "go, sql"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, truncateSkills(tc.in))
		})
	}
}

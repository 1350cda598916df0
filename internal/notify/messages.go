package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/brightpath-agency/brightpath/internal/domain"
	"github.com/brightpath-agency/brightpath/internal/mail"
)

// maxVisibleSkills caps the skill list rendered in the suggested-candidate
// details table; the remainder collapses into a "+N more" suffix.
const maxVisibleSkills = 5

// transitionLines maps an (old, new) status pair to a human-readable
// sentence for the status-changed mail. Missing pairs fall back to a
// per-status line, then to a generic one; building a message never fails on
// an unknown status.
var transitionLines = map[[2]domain.Status]string{
	{domain.StatusPending, domain.StatusInProgress}:           "A recruiter has started working on your profile.",
	{domain.StatusInProgress, domain.StatusSuggested}:         "Your profile has been suggested to a company.",
	{domain.StatusPending, domain.StatusSuggested}:            "Your profile has been suggested to a company.",
	{domain.StatusSuggested, domain.StatusInterviewPending}:   "A company would like to interview you. Your recruiter will be in touch to arrange a time.",
	{domain.StatusInterviewPending, domain.StatusInterviewed}: "Thanks for attending your interview. We will update you as soon as we hear back.",
	{domain.StatusInterviewed, domain.StatusAssigned}:         "Congratulations! You have been assigned to a position.",
	{domain.StatusInterviewed, domain.StatusRejected}:         "Unfortunately the company decided not to proceed. Your recruiter will keep looking for a better fit.",
}

var statusLines = map[domain.Status]string{
	domain.StatusPending:          "Your profile is pending review by a recruiter.",
	domain.StatusInProgress:       "A recruiter is actively working on your profile.",
	domain.StatusSuggested:        "Your profile has been suggested to a company.",
	domain.StatusInterviewPending: "An interview is being arranged for you.",
	domain.StatusInterviewed:      "Your interview feedback is being collected.",
	domain.StatusAssigned:         "You have been assigned to a position.",
	domain.StatusRejected:         "This opportunity did not work out, but your recruiter keeps searching on your behalf.",
}

const genericStatusLine = "The status of your application has been updated."

// StatusChangedMessage builds the mail sent to a client when a recruiter
// moves them through the pipeline. Pure function; no transport involved.
func StatusChangedMessage(client domain.Client, oldStatus, newStatus domain.Status) mail.Message {
	line, ok := transitionLines[[2]domain.Status{oldStatus, newStatus}]
	if !ok {
		line, ok = statusLines[newStatus]
		if !ok {
			line = genericStatusLine
		}
	}

	subject := fmt.Sprintf("Your application status: %s", newStatus)

	text := fmt.Sprintf("Hi %s,\n\n%s\n\nYour status is now: %s\n\nThe BrightPath team\n",
		client.FullName, line, newStatus)

	var html strings.Builder
	html.WriteString("<html><body>")
	fmt.Fprintf(&html, "<p>Hi %s,</p>", template.HTMLEscapeString(client.FullName))
	fmt.Fprintf(&html, "<p>%s</p>", template.HTMLEscapeString(line))
	fmt.Fprintf(&html, "<p>Your status is now: <strong>%s</strong></p>", template.HTMLEscapeString(string(newStatus)))
	html.WriteString("<p>The BrightPath team</p></body></html>")

	return mail.Message{
		To:      client.Email,
		Subject: subject,
		Text:    text,
		HTML:    html.String(),
	}
}

// SuggestedMessage builds the mail sent to a company when a recruiter
// suggests a candidate. Either link may be empty, in which case its button
// is omitted entirely rather than rendered dead.
func SuggestedMessage(client domain.Client, company domain.Company, cvURL, shareURL string) mail.Message {
	subject := fmt.Sprintf("New client suggested: %s", client.FullName)

	rows := []struct{ label, value string }{
		{"Name", client.FullName},
		{"Email", client.Email},
		{"Phone", client.PhoneNumber},
		{"Location", client.Location},
		{"Preferred role", client.PreferredRole},
		{"Skills", truncateSkills(client.Skills)},
		{"Education", client.Education},
		{"LinkedIn", client.LinkedinURL},
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\n\nWe would like to suggest a candidate for your consideration:\n\n", company.Name)
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&text, "%s: %s\n", r.label, r.value)
	}
	if cvURL != "" {
		fmt.Fprintf(&text, "\nCV: %s\n", cvURL)
	}
	if shareURL != "" {
		fmt.Fprintf(&text, "Candidate details: %s\n", shareURL)
	}
	text.WriteString("\nThe BrightPath team\n")

	var html strings.Builder
	html.WriteString("<html><body>")
	fmt.Fprintf(&html, "<p>Hello %s,</p>", template.HTMLEscapeString(company.Name))
	html.WriteString("<p>We would like to suggest a candidate for your consideration:</p>")
	html.WriteString(`<table cellpadding="6" cellspacing="0" border="0">`)
	for _, r := range rows {
		if r.value == "" {
			continue
		}
		fmt.Fprintf(&html, "<tr><td><strong>%s</strong></td><td>%s</td></tr>",
			template.HTMLEscapeString(r.label), template.HTMLEscapeString(r.value))
	}
	html.WriteString("</table><p>")
	if cvURL != "" {
		fmt.Fprintf(&html, `<a href="%s">View CV</a> `, template.HTMLEscapeString(cvURL))
	}
	if shareURL != "" {
		fmt.Fprintf(&html, `<a href="%s">Candidate details</a>`, template.HTMLEscapeString(shareURL))
	}
	html.WriteString("</p><p>The BrightPath team</p></body></html>")

	return mail.Message{
		To:      company.Email,
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}
}

// truncateSkills renders at most maxVisibleSkills comma-separated skills
// with a "+N more" suffix for the rest.
func truncateSkills(skills string) string {
	parts := strings.Split(skills, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	if len(list) == 0 {
		return ""
	}
	if len(list) <= maxVisibleSkills {
		return strings.Join(list, ", ")
	}
	return fmt.Sprintf("%s +%d more",
		strings.Join(list[:maxVisibleSkills], ", "), len(list)-maxVisibleSkills)
}

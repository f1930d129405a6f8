// Package mailer implements the notification collaborator: job alerts
// delivered to subscribers over SMTP, or logged locally.
package mailer

import (
	"fmt"
	"strings"

	"github.com/OctavioMinteguia/jobhub/internal/model"
)

const descriptionExcerptLen = 300

// renderBody builds the plain-text alert body listing each job.
func renderBody(jobs []model.Job) string {
	var b strings.Builder
	b.WriteString("New Job Alerts\n\n")
	b.WriteString("We found new job opportunities that match your criteria!\n\n")

	for _, j := range jobs {
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Title: %s\n", j.Title)
		fmt.Fprintf(&b, "Company: %s\n", j.Company)
		if j.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", j.Location)
		}
		if j.Salary != "" {
			fmt.Fprintf(&b, "Salary: %s\n", j.Salary)
		}
		fmt.Fprintf(&b, "Type: %s * Level: %s\n", j.Type, j.Level)
		if j.Remote {
			b.WriteString("Remote: Yes\n")
		}
		fmt.Fprintf(&b, "\nDescription:\n%s\n", excerpt(j.Description, descriptionExcerptLen))
		if len(j.Tags) > 0 {
			fmt.Fprintf(&b, "\nTags: %s\n", strings.Join(j.Tags, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("\nThis is an automated email. You can unsubscribe at any time.\n")
	return b.String()
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

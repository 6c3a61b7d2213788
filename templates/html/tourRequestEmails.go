package templates

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/druktrails/bhutan-tourism-api/models"
)

// RenderTourRequestNotification builds the subject, HTML and plain text of the email
// sent to the office when a visitor submits an enquiry. adminURL links to the request.
func RenderTourRequestNotification(tr models.TourRequest, adminURL string) (subject, htmlBody, plainText string) {
	subject = "New tour request from " + tr.FullName()
	if tr.TourName != "" {
		subject += " for " + tr.TourName
	}

	rows := tourRequestRows(tr)
	var b, p strings.Builder
	b.WriteString("<table>")
	for _, r := range rows {
		fmt.Fprintf(&b, `<tr><td class="label">%s</td><td>%s</td></tr>`,
			html.EscapeString(r[0]), strings.ReplaceAll(html.EscapeString(r[1]), "\n", "<br>"))
		fmt.Fprintf(&p, "%s: %s\n", r[0], r[1])
	}
	b.WriteString("</table>")
	if adminURL != "" {
		fmt.Fprintf(&b, `<p style="margin-top:24px"><a class="button" href="%s">Review request</a></p>`, html.EscapeString(adminURL))
		fmt.Fprintf(&p, "\nReview: %s\n", adminURL)
	}

	return subject, renderLayout(subject, b.String()), p.String()
}

func tourRequestRows(tr models.TourRequest) [][2]string {
	rows := [][2]string{
		{"Name", tr.FullName()},
		{"Email", tr.Email},
	}
	optional := [][2]string{
		{"Phone", tr.Phone},
		{"Tour", tr.TourName},
		{"Destination", tr.Destination},
		{"Travel date", tr.TravelDate},
	}
	if tr.Travelers > 0 {
		optional = append(optional, [2]string{"Travelers", strconv.Itoa(tr.Travelers)})
	}
	optional = append(optional, [2]string{"Message", tr.Message})
	for _, r := range optional {
		if r[1] != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

// RenderPendingDigest builds the daily summary of enquiries still awaiting a reply.
// requests is the newest page, total the full pending count.
func RenderPendingDigest(requests []models.TourRequest, total int64, adminURL string) (subject, htmlBody, plainText string) {
	subject = fmt.Sprintf("%d tour requests awaiting reply", total)
	if total == 1 {
		subject = "1 tour request awaiting reply"
	}

	var b, p strings.Builder
	b.WriteString("<table>")
	for _, tr := range requests {
		what := tr.TourName
		if what == "" {
			what = tr.Destination
		}
		received := tr.CreatedAt.Format("2 Jan 2006")
		fmt.Fprintf(&b, `<tr><td class="label">%s</td><td>%s &lt;%s&gt;<br>%s</td></tr>`,
			html.EscapeString(received), html.EscapeString(tr.FullName()), html.EscapeString(tr.Email), html.EscapeString(what))
		fmt.Fprintf(&p, "%s  %s <%s> %s\n", received, tr.FullName(), tr.Email, what)
	}
	b.WriteString("</table>")
	if extra := total - int64(len(requests)); extra > 0 {
		fmt.Fprintf(&b, "<p>and %d more.</p>", extra)
		fmt.Fprintf(&p, "and %d more.\n", extra)
	}
	if adminURL != "" {
		fmt.Fprintf(&b, `<p style="margin-top:24px"><a class="button" href="%s">Open the inbox</a></p>`, html.EscapeString(adminURL))
		fmt.Fprintf(&p, "\n%s\n", adminURL)
	}

	return subject, renderLayout(subject, b.String()), p.String()
}

// RenderTourRequestAcknowledgement builds the confirmation sent back to the visitor
func RenderTourRequestAcknowledgement(tr models.TourRequest) (subject, htmlBody, plainText string) {
	subject = "Kuzuzangpo " + tr.FirstName + ", we received your enquiry"
	var p strings.Builder
	fmt.Fprintf(&p, "Thank you for reaching out to Druk Trails.\n\n")
	if tr.TourName != "" {
		fmt.Fprintf(&p, "Our team is reviewing your request for %s", tr.TourName)
	} else {
		p.WriteString("Our team is reviewing your request")
	}
	p.WriteString(" and will reply within two working days.\n\nTashi Delek,\nThe Druk Trails team")
	return subject, RenderGenericEmail(subject, p.String()), p.String()
}

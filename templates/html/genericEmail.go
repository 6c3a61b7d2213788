package templates

import (
	"fmt"
	"html"
	"strings"
)

// RenderGenericEmail generates branded HTML for a generic email.
// The subject is displayed in the header banner, and bodyContent is plain text
// that gets HTML-escaped and has newlines converted to <br> tags.
func RenderGenericEmail(subject, bodyContent string) string {
	escaped := html.EscapeString(bodyContent)
	return renderLayout(subject, strings.ReplaceAll(escaped, "\n", "<br>"))
}

// renderLayout wraps pre-escaped htmlBody in the branded shell
func renderLayout(subject, htmlBody string) string {
	safeSubject := html.EscapeString(subject)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f6f1e7; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background: linear-gradient(135deg, #f4a300 0%%, #c1440e 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #333333; line-height: 1.6; font-size: 15px; }
    .content table { width: 100%%; border-collapse: collapse; }
    .content td { padding: 6px 0; vertical-align: top; border-bottom: 1px solid #eee; }
    .content td.label { color: #888888; width: 35%%; }
    .button { display: inline-block; padding: 12px 24px; background-color: #c1440e; color: #fff; text-decoration: none; border-radius: 4px; }
    .footer { padding: 30px; text-align: center; color: #888888; font-size: 12px; border-top: 1px solid #eeeeee; }
    .footer a { color: #c1440e; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%s</h1>
    </div>
    <div class="content">
      %s
    </div>
    <div class="footer">
      <p>&copy; Druk Trails | <a href="https://www.druktrails.bt">druktrails.bt</a></p>
    </div>
  </div>
</body>
</html>`, safeSubject, safeSubject, htmlBody)
}

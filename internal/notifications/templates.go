package notifications

import (
	"bytes"
	"fmt"
	"html/template"
)

// OrderEmail carries the fields rendered into order notifications.
type OrderEmail struct {
	OrderID       string
	CourseName    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Amount        string
}

// ContactEmail carries the fields rendered into contact notifications.
type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

var templates = template.Must(template.New("emails").Parse(`
{{define "payment_confirmed"}}<h1>Thank you, {{.CustomerName}}!</h1>
<p>Your enrollment in <strong>{{.CourseName}}</strong> is confirmed.</p>
<p>Amount paid: {{.Amount}}<br>Order reference: {{.OrderID}}</p>
<p>We will contact you shortly with access details.</p>{{end}}

{{define "payment_failed"}}<h1>Hi {{.CustomerName}},</h1>
<p>Unfortunately your payment for <strong>{{.CourseName}}</strong> did not go through.</p>
<p>No charge was made. You can try again at any time from the course page.</p>
<p>Order reference: {{.OrderID}}</p>{{end}}

{{define "admin_sale"}}<h1>New enrollment</h1>
<ul>
<li>Course: {{.CourseName}}</li>
<li>Customer: {{.CustomerName}} &lt;{{.CustomerEmail}}&gt;</li>
<li>Phone: {{.CustomerPhone}}</li>
<li>Amount: {{.Amount}}</li>
<li>Order: {{.OrderID}}</li>
</ul>{{end}}

{{define "admin_contact"}}<h1>New contact form message</h1>
<ul>
<li>Name: {{.Name}}</li>
<li>Email: {{.Email}}</li>
<li>Phone: {{.Phone}}</li>
<li>Subject: {{.Subject}}</li>
</ul>
<p>{{.Message}}</p>{{end}}
`))

func render(name string, data interface{}) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		// Templates are parsed at init; a failure here means a bad field.
		return fmt.Sprintf("<p>%s</p>", template.HTMLEscapeString(err.Error()))
	}
	return buf.String()
}

// PaymentConfirmed is sent to the customer after a successful payment.
func PaymentConfirmed(to string, data OrderEmail) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Enrollment confirmed: %s", data.CourseName),
		HTML:    render("payment_confirmed", data),
	}
}

// PaymentFailed is sent to the customer after a failed payment.
func PaymentFailed(to string, data OrderEmail) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Payment not completed: %s", data.CourseName),
		HTML:    render("payment_failed", data),
	}
}

// AdminSale notifies the academy of a completed sale.
func AdminSale(to string, data OrderEmail) Message {
	return Message{
		To:      to,
		Subject: fmt.Sprintf("New sale: %s (%s)", data.CourseName, data.Amount),
		HTML:    render("admin_sale", data),
	}
}

// AdminContact forwards a contact form submission to the academy.
func AdminContact(to string, data ContactEmail) Message {
	subject := data.Subject
	if subject == "" {
		subject = "New contact form message"
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Contact: %s", subject),
		HTML:    render("admin_contact", data),
	}
}

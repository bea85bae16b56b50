package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"quote-service/internal/config"
	"quote-service/internal/models"

	"gopkg.in/gomail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	dialer sender
	from   string
}

func NewEmailService(cfg config.MailConfig) *EmailService {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &EmailService{dialer: d, from: cfg.Username}
}

// SendQuoteSummary emails the priced breakdown of quote to the client.
func (e *EmailService) SendQuoteSummary(to string, quote models.QuoteResponse) error {
	body, err := QuoteSummaryTemplate(quote)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your %s quote from %s", quote.InsuranceName, quote.CompanyName))
	m.SetBody("text/html", body)
	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send quote email to %s: %w", to, err)
	}
	return nil
}

var quoteSummary = template.Must(template.New("quote").Parse(`
<html>
<body>
    <h2>{{.InsuranceName}} quote</h2>
    <p>Thank you for requesting a quote from {{.CompanyName}}.</p>
    <table>
        <tr><td>Base price</td><td>{{printf "%.2f" .BasePrice}} {{.Currency}}</td></tr>
        {{- range .Adjustments}}
        <tr><td>{{.Name}}</td><td>{{.Percentage}} ({{.Description}})</td></tr>
        {{- end}}
        <tr><td><b>Total</b></td><td><b>{{printf "%.2f" .TotalPrice}} {{.Currency}} / {{.Period}}</b></td></tr>
    </table>
    <p>Quote reference: {{.QuoteID}}</p>
</body>
</html>
`))

func QuoteSummaryTemplate(quote models.QuoteResponse) (string, error) {
	var buf bytes.Buffer
	if err := quoteSummary.Execute(&buf, quote); err != nil {
		return "", fmt.Errorf("failed to render quote email: %w", err)
	}
	return buf.String(), nil
}

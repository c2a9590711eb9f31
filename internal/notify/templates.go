package notify

import (
	"bytes"
	"fmt"
	"text/template"
	"time"
)

type Kind string

const (
	KindConfirmation             Kind = "confirmation"
	KindCancellation             Kind = "cancellation"
	KindProfessionalCancellation Kind = "professional_cancellation"
)

// Reasons a professional can give when cancelling.
const (
	ReasonProfessional = "imprevisto_profissional"
	ReasonHealth       = "problema_saude"
	ReasonFamily       = "emergencia_familiar"
	ReasonEquipment    = "problema_equipamento"
	ReasonWeather      = "clima"
	ReasonOther        = "outro"
)

var reasonLabels = map[string]string{
	ReasonProfessional: "Imprevisto com o profissional",
	ReasonHealth:       "Problema de saúde",
	ReasonFamily:       "Emergência familiar",
	ReasonEquipment:    "Problema com equipamento",
	ReasonWeather:      "Condições climáticas adversas",
	ReasonOther:        "Outro motivo",
}

func ValidReason(reason string) bool {
	_, ok := reasonLabels[reason]
	return ok
}

// ReasonText resolves the label shown to the client. "outro" uses the
// custom text when there is one.
func ReasonText(reason, custom string) string {
	if reason == ReasonOther && custom != "" {
		return custom
	}
	if label, ok := reasonLabels[reason]; ok {
		return label
	}
	return custom
}

type TemplateData struct {
	ClientName       string
	ServiceName      string
	ProfessionalName string
	Date             string
	Time             string
	Reason           string
}

// DisplayDate turns "2006-01-02" into "02/01/2006".
func DisplayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

var templates = map[Kind]*template.Template{
	KindConfirmation: template.Must(template.New("confirmation").Parse(
		`✨ Olá, {{.ClientName}}! Que alegria ter você conosco! ✨

🎉 Seu horário foi confirmado no Reserva Top!

📝 Detalhes do seu agendamento:
🔸 Serviço: {{.ServiceName}}
📅 Data: {{.Date}}
⏰ Horário: {{.Time}}

ℹ️ Chegue com 5 minutinhos de antecedência e, em caso de imprevistos, nos avise.

💝 Agradecemos a preferência!`)),

	KindCancellation: template.Must(template.New("cancellation").Parse(
		`😊 Olá, {{.ClientName}}!

📝 Confirmamos o cancelamento do seu agendamento:
🔸 Serviço: {{.ServiceName}}
📅 Data: {{.Date}}
⏰ Horário: {{.Time}}

✨ Que tal remarcar para outro dia? Será um prazer atender você!

💝 Reserva Top`)),

	KindProfessionalCancellation: template.Must(template.New("professional_cancellation").Parse(
		`😔 Olá, {{.ClientName}}!

❌ Infelizmente precisamos cancelar seu agendamento:
🔸 Serviço: {{.ServiceName}}
📅 Data: {{.Date}}
⏰ Horário: {{.Time}}

📝 Motivo do cancelamento:
{{.Reason}}

💌 {{.ProfessionalName}} lamenta o inconveniente e gostaria de reagendar seu horário.

✨ Acesse nosso sistema para escolher uma nova data.`)),
}

func Render(kind Kind, data TemplateData) (string, error) {
	tpl, ok := templates[kind]
	if !ok {
		return "", fmt.Errorf("notify: unknown template %q", kind)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", kind, err)
	}
	return buf.String(), nil
}

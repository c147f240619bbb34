package mail

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string

	// Buzón del agente que recibe los avisos de nuevos contactos
	AlertRecipient string
}

type leadAlertData struct {
	FullName    string
	Email       string
	Phone       string
	ProjectSlug string
	CapturedAt  string
}

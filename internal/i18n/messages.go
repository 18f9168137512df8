package i18n

// messages holds UI strings. Spanish is the complete set.
var messages = map[Locale]map[string]string{
	Spanish: {
		"nav.home":              "Inicio",
		"nav.services":          "Servicios",
		"nav.team":              "Equipo",
		"nav.cases":             "Casos de éxito",
		"nav.blog":              "Blog",
		"nav.news":              "Noticias",
		"nav.contact":           "Contacto",
		"home.title":            "Abogados especialistas en negligencias médicas",
		"home.lead":             "Defendemos a pacientes y familias afectados por errores médicos. Primera consulta gratuita.",
		"home.cta":              "Consulta gratuita",
		"services.title":        "Nuestros servicios",
		"team.title":            "Nuestro equipo",
		"cases.title":           "Casos de éxito",
		"cases.compensation":    "Indemnización",
		"blog.title":            "Blog",
		"blog.read_more":        "Leer más",
		"blog.reading_time":     "min de lectura",
		"blog.empty":            "Todavía no hay artículos publicados.",
		"news.title":            "Noticias",
		"news.source":           "Fuente",
		"city.title":            "Abogados de negligencias médicas en %s",
		"contact.title":         "Contacto",
		"contact.name":          "Nombre",
		"contact.email":         "Correo electrónico",
		"contact.phone":         "Teléfono",
		"contact.message":       "Mensaje",
		"contact.privacy":       "Acepto la política de privacidad",
		"contact.submit":        "Enviar",
		"contact.success":       "Gracias. Nos pondremos en contacto contigo en menos de 24 horas.",
		"pagination.prev":       "Anterior",
		"pagination.next":       "Siguiente",
		"error.not_found":       "Página no encontrada",
		"footer.rights":         "Todos los derechos reservados.",
		"mail.staff.subject":    "Nueva consulta de %s",
		"mail.confirm.subject":  "Hemos recibido tu consulta",
		"mail.confirm.greeting": "Hola %s,",
		"mail.confirm.body":     "Gracias por contactar con nosotros. Un abogado revisará tu caso y te responderá en menos de 24 horas.",
		"validation.required":   "Este campo es obligatorio",
		"validation.email":      "Introduce un correo electrónico válido",
		"validation.max":        "El texto es demasiado largo",
		"validation.privacy":    "Debes aceptar la política de privacidad",
		"validation.url":        "Introduce una URL válida",
		"validation.invalid":    "Valor no válido",
	},
	English: {
		"nav.home":              "Home",
		"nav.services":          "Services",
		"nav.team":              "Team",
		"nav.cases":             "Success cases",
		"nav.blog":              "Blog",
		"nav.news":              "News",
		"nav.contact":           "Contact",
		"home.title":            "Medical negligence lawyers",
		"home.lead":             "We represent patients and families harmed by medical errors. Free first consultation.",
		"home.cta":              "Free consultation",
		"services.title":        "Our services",
		"team.title":            "Our team",
		"cases.title":           "Success cases",
		"cases.compensation":    "Compensation",
		"blog.read_more":        "Read more",
		"blog.reading_time":     "min read",
		"blog.empty":            "No articles published yet.",
		"news.title":            "News",
		"news.source":           "Source",
		"city.title":            "Medical negligence lawyers in %s",
		"contact.title":         "Contact",
		"contact.name":          "Name",
		"contact.email":         "Email",
		"contact.phone":         "Phone",
		"contact.message":       "Message",
		"contact.privacy":       "I accept the privacy policy",
		"contact.submit":        "Send",
		"contact.success":       "Thank you. We will get back to you within 24 hours.",
		"pagination.prev":       "Previous",
		"pagination.next":       "Next",
		"error.not_found":       "Page not found",
		"footer.rights":         "All rights reserved.",
		"mail.staff.subject":    "New enquiry from %s",
		"mail.confirm.subject":  "We have received your enquiry",
		"mail.confirm.greeting": "Hello %s,",
		"mail.confirm.body":     "Thank you for contacting us. A lawyer will review your case and reply within 24 hours.",
		"validation.required":   "This field is required",
		"validation.email":      "Enter a valid email address",
		"validation.max":        "The text is too long",
		"validation.privacy":    "You must accept the privacy policy",
		"validation.url":        "Enter a valid URL",
		"validation.invalid":    "Invalid value",
	},
}

// T returns the UI string for key, falling back to Spanish and then to the key.
func T(locale Locale, key string) string {
	if s, ok := messages[locale][key]; ok {
		return s
	}
	if s, ok := messages[DefaultLocale][key]; ok {
		return s
	}
	return key
}

package i18n

import "strings"

// Default language for all user-facing messages. The agency operates in
// Spanish; English is kept for the API docs and external integrators.
const DefaultLang = "es"

var translations = map[string]map[string]string{
	"es": {
		"required":                  "Obligatorio",
		"validation_failed":         "Los datos enviados no son válidos",
		"not_found":                 "No se ha encontrado el recurso solicitado",
		"unauthorized":              "Sesión no válida, inicia sesión de nuevo",
		"invalid_credentials":       "Email o contraseña incorrectos",
		"invalid_json":              "El cuerpo de la petición no es JSON válido",
		"invalid_id":                "Identificador no válido",
		"method_not_allowed":        "Método no permitido",
		"internal_error":            "Ha ocurrido un error inesperado",
		"company_not_configured":    "Configura primero los datos de la agencia",
		"failed_to_create_invoice":  "No se ha podido crear la factura",
		"failed_to_update_invoice":  "No se ha podido actualizar la factura",
		"failed_to_delete_invoice":  "No se ha podido eliminar la factura",
		"failed_to_list_invoices":   "No se han podido cargar las facturas",
		"invalid_status_change":     "El cambio de estado no está permitido",
		"pdf_generation_failed":     "No se ha podido generar el PDF",
		"share_link_failed":         "No se ha podido crear el enlace público",
		"share_link_expired":        "Este enlace público ha caducado",
		"proposal_already_invoiced": "La propuesta ya ha sido facturada",
		"ai_content_unavailable":    "El contenido generado no está disponible ahora mismo",
		"upload_failed":             "No se ha podido subir el archivo",
		"import_failed":             "No se ha podido importar el fichero CSV",
	},
	"en": {
		"required":                  "Required",
		"validation_failed":         "The submitted data is not valid",
		"not_found":                 "The requested resource was not found",
		"unauthorized":              "Invalid session, please log in again",
		"invalid_credentials":       "Wrong email or password",
		"invalid_json":              "Request body is not valid JSON",
		"invalid_id":                "Invalid identifier",
		"method_not_allowed":        "Method not allowed",
		"internal_error":            "An unexpected error occurred",
		"company_not_configured":    "Configure the agency settings first",
		"failed_to_create_invoice":  "Could not create the invoice",
		"failed_to_update_invoice":  "Could not update the invoice",
		"failed_to_delete_invoice":  "Could not delete the invoice",
		"failed_to_list_invoices":   "Could not load invoices",
		"invalid_status_change":     "This status change is not allowed",
		"pdf_generation_failed":     "Could not generate the PDF",
		"share_link_failed":         "Could not create the public link",
		"share_link_expired":        "This public link has expired",
		"proposal_already_invoiced": "The proposal has already been invoiced",
		"ai_content_unavailable":    "Generated content is unavailable right now",
		"upload_failed":             "Could not upload the file",
		"import_failed":             "Could not import the CSV file",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header.
// Anything that is not English falls back to Spanish.
func DetectLanguage(acceptLang string) string {
	lower := strings.ToLower(strings.TrimSpace(acceptLang))
	if strings.HasPrefix(lower, "en") {
		return "en"
	}
	return DefaultLang
}

// T resolves a message code for a language. Unknown languages fall back to
// Spanish; unknown codes fall back to the code itself so missing entries are
// visible instead of silent.
func T(lang, code string) string {
	if msgs, ok := translations[lang]; ok {
		if msg, ok := msgs[code]; ok {
			return msg
		}
	}
	if msg, ok := translations[DefaultLang][code]; ok {
		return msg
	}
	return code
}

package apiclient

// Remote API routes
const (
	PathLogin           = "/api/login"
	PathRegister        = "/api/register"
	PathProducts        = "/api/products"
	PathGenerateInvoice = "/api/generate-invoice"
)

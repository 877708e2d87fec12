package email

// PreviewData contains sample template data for local preview/testing.
//
//	PreviewData[TemplateWelcome]["Nombre"] == "María"
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Nombre": "María",
	},
}

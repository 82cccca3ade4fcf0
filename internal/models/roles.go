package models

// RoleProfile is the single source of role-dependent presentation and
// assistant behavior. Views must look values up here instead of branching
// on the role string.
type RoleProfile struct {
	Role              string `json:"role"`
	Label             string `json:"label"`
	Description       string `json:"description"`
	SystemInstruction string `json:"-"`
}

var roleCatalog = []RoleProfile{
	{
		Role:        RoleEntrepreneur,
		Label:       "Emprendedor",
		Description: "Lidera un emprendimiento circular y busca financiamiento y redes.",
		SystemInstruction: "Eres el asistente de ConectarAPAK para emprendedores de economía circular " +
			"de la región de Arica y Parinacota. Responde en español, con foco práctico en " +
			"financiamiento, Ley REP y encadenamientos productivos locales.",
	},
	{
		Role:        RoleInvestorNatural,
		Label:       "Inversionista persona natural",
		Description: "Invierte a título personal en proyectos de triple impacto.",
		SystemInstruction: "Eres el asistente de ConectarAPAK para inversionistas persona natural. " +
			"Responde en español, con foco en evaluación de riesgo y oportunidades regionales.",
	},
	{
		Role:        RoleInvestorLegal,
		Label:       "Inversionista persona jurídica",
		Description: "Representa a una empresa o fondo que invierte en economía circular.",
		SystemInstruction: "Eres el asistente de ConectarAPAK para inversionistas institucionales. " +
			"Responde en español, con foco en due diligence, normativa y portafolios de impacto.",
	},
	{
		Role:        RoleAdvisor,
		Label:       "Asesor",
		Description: "Acompaña técnica o comercialmente a emprendimientos de la comunidad.",
		SystemInstruction: "Eres el asistente de ConectarAPAK para asesores de emprendimientos " +
			"circulares. Responde en español, con foco en metodologías y vinculación.",
	},
}

func RoleCatalog() []RoleProfile {
	catalog := make([]RoleProfile, len(roleCatalog))
	copy(catalog, roleCatalog)
	return catalog
}

func RoleProfileFor(role string) (RoleProfile, bool) {
	for _, profile := range roleCatalog {
		if profile.Role == role {
			return profile, true
		}
	}
	return RoleProfile{}, false
}

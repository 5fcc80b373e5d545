package wizard

type requiredField struct {
	name  string
	value func(*Fields) string
}

// stepRules lists the fields that must be non-blank before leaving a step
var stepRules = map[int][]requiredField{
	1: {
		{"nome_completo", func(f *Fields) string { return f.FullName }},
		{"telefone", func(f *Fields) string { return f.Phone }},
	},
	2: {
		{"endereco", func(f *Fields) string { return f.Street }},
		{"numero", func(f *Fields) string { return f.Number }},
	},
	3: {},
	4: {
		{"cpf_cnpj", func(f *Fields) string { return f.TaxID }},
		{"email", func(f *Fields) string { return f.Email }},
	},
}

func isRequired(step int, name string) bool {
	for _, rule := range stepRules[step] {
		if rule.name == name {
			return true
		}
	}
	return false
}

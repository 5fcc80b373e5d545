package wizard

import "github.com/drhenri-ux/octorlink/internal/models"

var stepTitles = map[int]string{
	1: "Vamos começar!",
	2: "Verificar disponibilidade",
	3: "Serviços adicionais",
	4: "Finalizar cadastro",
}

// BillingDays are the due-date choices offered on step 4
var BillingDays = []string{"5", "10", "15", "20", "25"}

// FieldView describes one input of the active step
type FieldView struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Required bool     `json:"required"`
	Value    string   `json:"value"`
	Options  []string `json:"options,omitempty"`
}

// AppOption is a selectable service on step 3
type AppOption struct {
	Name     string `json:"name"`
	IconURL  string `json:"icon_url"`
	Selected bool   `json:"selected"`
}

// StepView is everything needed to draw the active step
type StepView struct {
	ID         string      `json:"id"`
	Step       int         `json:"step"`
	TotalSteps int         `json:"total_steps"`
	Title      string      `json:"title"`
	PlanLabel  string      `json:"plan_label"`
	Submitted  bool        `json:"submitted"`
	Fields     []FieldView `json:"fields"`
	Apps       []AppOption `json:"apps,omitempty"`
}

// View renders only the active step. apps is used on step 3.
func (w *Wizard) View(apps []models.AppResponse) StepView {
	v := StepView{
		ID:         w.ID.String(),
		Step:       w.Step,
		TotalSteps: LastStep,
		Title:      stepTitles[w.Step],
		PlanLabel:  w.PlanLabel(),
		Submitted:  w.Submitted,
		Fields:     []FieldView{},
	}

	f := &w.Fields
	field := func(name, label, value string) FieldView {
		return FieldView{Name: name, Label: label, Required: isRequired(w.Step, name), Value: value}
	}

	switch w.Step {
	case 1:
		v.Fields = append(v.Fields,
			field("nome_completo", "Nome completo", f.FullName),
			field("telefone", "Telefone / WhatsApp", f.Phone),
		)
	case 2:
		v.Fields = append(v.Fields,
			field("cep", "CEP", f.PostalCode),
			field("endereco", "Endereço", f.Street),
			field("numero", "Número", f.Number),
			field("complemento", "Complemento", f.Complement),
			field("bairro", "Bairro", f.Neighborhood),
			field("cidade", "Cidade", f.City),
			field("estado", "Estado", f.State),
		)
	case 3:
		for _, app := range apps {
			v.Apps = append(v.Apps, AppOption{
				Name:     app.Name,
				IconURL:  app.IconURL,
				Selected: w.HasService(app.Name),
			})
		}
	case 4:
		billing := field("dia_vencimento", "Melhor dia para vencimento", f.BillingDay)
		billing.Options = BillingDays
		v.Fields = append(v.Fields,
			field("cpf_cnpj", "CPF / CNPJ", f.TaxID),
			field("rg", "RG", f.NationalID),
			field("data_nascimento", "Data de nascimento", f.BirthDate),
			field("nome_mae", "Nome da mãe", f.MotherName),
			field("email", "E-mail", f.Email),
			billing,
		)
	}

	return v
}

// Package wizard holds the four-step lead capture form: its field state,
// per-step validation, the step view and the final submission.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drhenri-ux/octorlink/internal/postal"
	"github.com/google/uuid"
)

const (
	FirstStep = 1
	LastStep  = 4

	// minPostalCodeLength is the typed length at which the address lookup fires
	minPostalCodeLength = 8
)

var (
	ErrStepInvalid    = errors.New("required fields missing")
	ErrNotOnFinalStep = errors.New("wizard is not on the final step")
	ErrLastStep       = errors.New("wizard is already on the last step")
)

// StepError lists the required fields that were empty
type StepError struct {
	Step    int
	Missing []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: missing %s", e.Step, strings.Join(e.Missing, ", "))
}

func (e *StepError) Unwrap() error { return ErrStepInvalid }

// Fields is the full bag of values the form collects
type Fields struct {
	// Step 1
	FullName string `json:"nome_completo"`
	Phone    string `json:"telefone"`
	// Step 2
	PostalCode   string `json:"cep"`
	Street       string `json:"endereco"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
	// Step 3
	Services []string `json:"servicos_selecionados"`
	// Step 4
	TaxID      string `json:"cpf_cnpj"`
	NationalID string `json:"rg"`
	BirthDate  string `json:"data_nascimento"`
	MotherName string `json:"nome_mae"`
	Email      string `json:"email"`
	BillingDay string `json:"dia_vencimento"`
}

// FieldPatch carries a partial update of text fields; nil leaves a field alone
type FieldPatch struct {
	FullName     *string `json:"nome_completo,omitempty"`
	Phone        *string `json:"telefone,omitempty"`
	PostalCode   *string `json:"cep,omitempty"`
	Street       *string `json:"endereco,omitempty"`
	Number       *string `json:"numero,omitempty"`
	Complement   *string `json:"complemento,omitempty"`
	Neighborhood *string `json:"bairro,omitempty"`
	City         *string `json:"cidade,omitempty"`
	State        *string `json:"estado,omitempty"`
	TaxID        *string `json:"cpf_cnpj,omitempty"`
	NationalID   *string `json:"rg,omitempty"`
	BirthDate    *string `json:"data_nascimento,omitempty"`
	MotherName   *string `json:"nome_mae,omitempty"`
	Email        *string `json:"email,omitempty"`
	BillingDay   *string `json:"dia_vencimento,omitempty"`
}

// Wizard is one visitor's in-progress form
type Wizard struct {
	ID        uuid.UUID `json:"id"`
	Step      int       `json:"step"`
	Fields    Fields    `json:"fields"`
	PlanName  string    `json:"plan_name,omitempty"`
	Combo     bool      `json:"combo"`
	Submitted bool      `json:"submitted"`
}

// New opens a fresh wizard on step 1
func New(planName string, combo bool) *Wizard {
	return &Wizard{
		ID:       uuid.New(),
		Step:     FirstStep,
		Fields:   Fields{Services: []string{}},
		PlanName: planName,
		Combo:    combo,
	}
}

// ValidateStep checks the required fields of a step
func (w *Wizard) ValidateStep(step int) error {
	var missing []string
	for _, rule := range stepRules[step] {
		if strings.TrimSpace(rule.value(&w.Fields)) == "" {
			missing = append(missing, rule.name)
		}
	}
	if len(missing) > 0 {
		return &StepError{Step: step, Missing: missing}
	}
	return nil
}

// Advance moves to the next step when the active one is valid
func (w *Wizard) Advance() error {
	if err := w.ValidateStep(w.Step); err != nil {
		return err
	}
	if w.Step >= LastStep {
		return ErrLastStep
	}
	w.Step++
	return nil
}

// Retreat moves back one step without validating
func (w *Wizard) Retreat() {
	if w.Step > FirstStep {
		w.Step--
	}
}

// ToggleService adds name to the selection, or removes it when present
func (w *Wizard) ToggleService(name string) {
	for i, s := range w.Fields.Services {
		if s == name {
			w.Fields.Services = append(w.Fields.Services[:i:i], w.Fields.Services[i+1:]...)
			return
		}
	}
	w.Fields.Services = append(w.Fields.Services, name)
}

// HasService reports whether name is selected
func (w *Wizard) HasService(name string) bool {
	for _, s := range w.Fields.Services {
		if s == name {
			return true
		}
	}
	return false
}

// SetFields applies a partial patch; the step never changes
func (w *Wizard) SetFields(p FieldPatch) {
	f := &w.Fields
	apply(&f.FullName, p.FullName)
	apply(&f.Phone, p.Phone)
	apply(&f.PostalCode, p.PostalCode)
	apply(&f.Street, p.Street)
	apply(&f.Number, p.Number)
	apply(&f.Complement, p.Complement)
	apply(&f.Neighborhood, p.Neighborhood)
	apply(&f.City, p.City)
	apply(&f.State, p.State)
	apply(&f.TaxID, p.TaxID)
	apply(&f.NationalID, p.NationalID)
	apply(&f.BirthDate, p.BirthDate)
	apply(&f.MotherName, p.MotherName)
	apply(&f.Email, p.Email)
	apply(&f.BillingDay, p.BillingDay)
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// PostalLookup resolves postal codes to addresses
type PostalLookup interface {
	Lookup(ctx context.Context, code string) (postal.Address, error)
}

// LookupAddress autofills the address from the postal code. It is best
// effort: any failure leaves the fields as typed and is only reported back.
func (w *Wizard) LookupAddress(ctx context.Context, lookup PostalLookup) (bool, error) {
	if len(w.Fields.PostalCode) < minPostalCodeLength {
		return false, nil
	}

	addr, err := lookup.Lookup(ctx, w.Fields.PostalCode)
	if err != nil {
		return false, err
	}

	w.Fields.Street = addr.Street
	w.Fields.Neighborhood = addr.Neighborhood
	w.Fields.City = addr.City
	w.Fields.State = addr.State
	return true, nil
}

// Reset clears every field and returns to step 1
func (w *Wizard) Reset() {
	w.Step = FirstStep
	w.Fields = Fields{Services: []string{}}
	w.Submitted = false
}

package postal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
)

var (
	ErrInvalidCode = errors.New("invalid postal code")
	ErrNotFound    = errors.New("postal code not found")
)

// Address is the part of a lookup result the lead form autofills
type Address struct {
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type viaCEPResponse struct {
	Address
	Erro interface{} `json:"erro,omitempty"` // true or "true" depending on API version
}

// ViaCEP queries the public ViaCEP API
type ViaCEP struct {
	baseURL string
	client  *http.Client
}

func NewViaCEP(baseURL string) *ViaCEP {
	return &ViaCEP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Normalize keeps only the digits of a postal code
func Normalize(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, code)
}

// Lookup resolves a postal code to an address
func (v *ViaCEP) Lookup(ctx context.Context, code string) (Address, error) {
	digits := Normalize(code)
	if len(digits) != 8 {
		return Address{}, ErrInvalidCode
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/json/", v.baseURL, digits), nil)
	if err != nil {
		return Address{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return Address{}, fmt.Errorf("postal lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("postal lookup decode: %w", err)
	}

	if isErro(body.Erro) {
		return Address{}, ErrNotFound
	}

	return body.Address, nil
}

func isErro(v interface{}) bool {
	switch e := v.(type) {
	case bool:
		return e
	case string:
		return e == "true"
	}
	return false
}

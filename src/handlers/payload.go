package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/username/networth/src/model"
	"github.com/username/networth/src/security/validation"
)

const (
	maxBodyBytes = 1 << 20
	maxAge       = 150
)

var errInvalidPayload = errors.New("invalid request payload")

type addUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       *int   `json:"age"`
	Email     string `json:"email"`
}

func (req *addUserRequest) validate() error {
	req.FirstName = validation.CleanName(req.FirstName)
	req.LastName = validation.CleanName(req.LastName)
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.FirstName == "":
		return fmt.Errorf("%w: firstName is required", errInvalidPayload)
	case req.LastName == "":
		return fmt.Errorf("%w: lastName is required", errInvalidPayload)
	case req.Age == nil:
		return fmt.Errorf("%w: age is required", errInvalidPayload)
	case *req.Age < 0 || *req.Age > maxAge:
		return fmt.Errorf("%w: age must be between 0 and %d", errInvalidPayload, maxAge)
	}
	return validateEmail(req.Email)
}

type updatePortfolioRequest struct {
	Email               string                    `json:"email"`
	Currency            string                    `json:"currency"`
	Cash                model.CashAssets          `json:"cash"`
	Invested            model.InvestedAssets      `json:"invested"`
	Use                 model.UseAssets           `json:"use"`
	CurrentLiabilities  model.CurrentLiabilities  `json:"currentLiabilities"`
	LongTermLiabilities model.LongTermLiabilities `json:"longTermLiabilities"`
}

// portfolio validates the request and builds the domain value. An unknown
// currency yields model.ErrInvalidCurrency.
func (req *updatePortfolioRequest) portfolio() (model.Portfolio, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateEmail(req.Email); err != nil {
		return model.Portfolio{}, err
	}
	currency, err := model.ParseCurrency(req.Currency)
	if err != nil {
		return model.Portfolio{}, err
	}
	return model.NewPortfolio(currency, req.Cash, req.Invested, req.Use,
		req.CurrentLiabilities, req.LongTermLiabilities)
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", errInvalidPayload)
	}
	if !strings.Contains(email, "@") || strings.ContainsAny(email, " \t") || email != validation.StripUnprintable(email) {
		return fmt.Errorf("%w: email is not valid", errInvalidPayload)
	}
	return nil
}

// decodeJSONBody reads exactly one JSON value into dst, rejecting unknown
// fields and bodies over maxBodyBytes.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			return fmt.Errorf("%w: body exceeds %d bytes", errInvalidPayload, maxBodyBytes)
		case errors.Is(err, model.ErrInvalidCurrency):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: body is empty", errInvalidPayload)
		default:
			return fmt.Errorf("%w: malformed JSON body", errInvalidPayload)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: body must contain a single JSON object", errInvalidPayload)
	}
	return nil
}

// emailQuery returns the required ?email= parameter.
func emailQuery(r *http.Request) (string, error) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		return "", fmt.Errorf("%w: email query parameter is required", errInvalidPayload)
	}
	return email, nil
}
